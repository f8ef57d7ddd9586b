package goal

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/calendar"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	goalDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/goal"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
)

const (
	msgGoalTarget  = "هدف باید دقیقا به یک کاربر یا یک کارگروه تعلق داشته باشد"
	msgInvalidDate = "تاریخ نامعتبر است"
	msgGoalMissing = "هدف انتخاب شده یافت نشد"
)

// RepositoryAPI returns (nil, nil) from single-row getters when nothing matches.
type RepositoryAPI interface {
	CreateGoal(ctx context.Context, g *goalDatamodel.Goal) error
	GetGoal(ctx context.Context, id int64) (*goalDatamodel.Goal, error)
	// ListGoals with a zero userID lists every goal.
	ListGoals(ctx context.Context, userID int64, workgroupIDs []int64) ([]*goalDatamodel.Goal, error)

	CreateTask(ctx context.Context, t *goalDatamodel.Task) error
	GetTask(ctx context.Context, id int64) (*goalDatamodel.Task, error)
	// ListTasks with a zero assigneeID lists every task.
	ListTasks(ctx context.Context, assigneeID int64) ([]*goalDatamodel.Task, error)
	UpdateTaskStatus(ctx context.Context, t *goalDatamodel.Task) error
}

type Authorizer interface {
	Authorize(ctx context.Context, principal *internal.User, action auth.Action, target auth.Target) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
}

type Workgroups interface {
	WorkgroupsForUser(ctx context.Context, userID int64, roles ...string) ([]*workgroup.Workgroup, error)
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo       RepositoryAPI
	gate       Authorizer
	users      UserLookup
	workgroups Workgroups
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, gate Authorizer, users UserLookup, workgroups Workgroups, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		gate:       gate,
		users:      users,
		workgroups: workgroups,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) CreateGoal(ctx context.Context, principal *internal.User, dto CreateGoalDTO) (*Goal, error) {
	if err := s.gate.Authorize(ctx, principal, auth.ActionCreateGoal, auth.Target{}); err != nil {
		return nil, err
	}
	if dto.Year == 0 && dto.Month == 0 {
		p, err := calendar.CurrentPeriod(s.now())
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		dto.Year, dto.Month = p.Year, p.Month
	}
	dto.Title = strings.TrimSpace(dto.Title)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if (dto.UserID == nil) == (dto.WorkgroupID == nil) {
		return nil, internal.NewValidationFieldError("userId", msgGoalTarget, internal.ErrCodeValidationFailed)
	}

	var workgroupName string
	if dto.UserID != nil {
		u, err := s.users.GetByID(ctx, *dto.UserID)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		if u == nil {
			return nil, internal.ErrUserNotFound
		}
	} else {
		names, err := s.workgroups.NamesByIDs(ctx, []int64{*dto.WorkgroupID})
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		name, ok := names[*dto.WorkgroupID]
		if !ok {
			return nil, internal.ErrWorkgroupNotFound
		}
		workgroupName = name
	}

	row := &goalDatamodel.Goal{
		Title:        dto.Title,
		Description:  strings.TrimSpace(dto.Description),
		TargetValue:  dto.TargetValue,
		CurrentValue: dto.CurrentValue,
		UserID:       dto.UserID,
		WorkgroupID:  dto.WorkgroupID,
		Year:         dto.Year,
		Month:        dto.Month,
		Status:       goalDatamodel.GoalStatusActive,
		CreatedBy:    principal.ID,
	}
	if dto.CurrentValue >= dto.TargetValue {
		now := s.now()
		row.Status = goalDatamodel.GoalStatusCompleted
		row.CompletedAt = &now
	}
	if err := s.repo.CreateGoal(ctx, row); err != nil {
		s.logger.Error("failed to create goal", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("goal created", "goal_id", row.ID, "created_by", principal.ID)
	g := GoalFromDataModel(row)
	g.WorkgroupName = workgroupName
	return g, nil
}

// ListGoals returns the goals assigned to the principal or to any workgroup
// they belong to. Admins see every goal.
func (s *Service) ListGoals(ctx context.Context, principal *internal.User) ([]*Goal, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}

	var (
		rows []*goalDatamodel.Goal
		err  error
	)
	if principal.IsAdmin {
		rows, err = s.repo.ListGoals(ctx, 0, nil)
	} else {
		groups, gerr := s.workgroups.WorkgroupsForUser(ctx, principal.ID)
		if gerr != nil {
			return nil, gerr
		}
		ids := make([]int64, 0, len(groups))
		for _, g := range groups {
			ids = append(ids, g.ID)
		}
		rows, err = s.repo.ListGoals(ctx, principal.ID, ids)
	}
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	out := make([]*Goal, 0, len(rows))
	groupIDs := make([]int64, 0)
	for _, row := range rows {
		out = append(out, GoalFromDataModel(row))
		if row.WorkgroupID != nil {
			groupIDs = append(groupIDs, *row.WorkgroupID)
		}
	}
	if len(groupIDs) > 0 {
		names, err := s.workgroups.NamesByIDs(ctx, groupIDs)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		for _, g := range out {
			if g.WorkgroupID != nil {
				g.WorkgroupName = names[*g.WorkgroupID]
			}
		}
	}
	return out, nil
}

func (s *Service) CreateTask(ctx context.Context, principal *internal.User, dto CreateTaskDTO) (*Task, error) {
	if err := s.gate.Authorize(ctx, principal, auth.ActionCreateTask, auth.Target{}); err != nil {
		return nil, err
	}
	dto.Title = strings.TrimSpace(dto.Title)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	var due *time.Time
	if strings.TrimSpace(dto.DueDate) != "" {
		t, err := calendar.ParseDate(dto.DueDate, time.Local)
		if err != nil {
			return nil, internal.NewValidationError(msgInvalidDate, internal.ErrCodeInvalidDate)
		}
		due = &t
	}

	assignee, err := s.users.GetByID(ctx, dto.AssigneeID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if assignee == nil {
		return nil, internal.ErrUserNotFound
	}
	if dto.GoalID != nil {
		g, err := s.repo.GetGoal(ctx, *dto.GoalID)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		if g == nil {
			return nil, internal.NewValidationFieldError("goalId", msgGoalMissing, internal.ErrCodeValidationFailed)
		}
	}

	row := &goalDatamodel.Task{
		Title:       dto.Title,
		Description: strings.TrimSpace(dto.Description),
		AssigneeID:  dto.AssigneeID,
		GoalID:      dto.GoalID,
		Status:      goalDatamodel.TaskStatusTodo,
		DueDate:     due,
		CreatedBy:   principal.ID,
	}
	if err := s.repo.CreateTask(ctx, row); err != nil {
		s.logger.Error("failed to create task", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("task created", "task_id", row.ID, "assignee_id", row.AssigneeID)
	return TaskFromDataModel(row, s.now()), nil
}

// ListTasks returns the principal's own tasks, or every task for admins.
func (s *Service) ListTasks(ctx context.Context, principal *internal.User) ([]*Task, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	assignee := principal.ID
	if principal.IsAdmin {
		assignee = 0
	}
	rows, err := s.repo.ListTasks(ctx, assignee)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	now := s.now()
	out := make([]*Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, TaskFromDataModel(row, now))
	}
	return out, nil
}

func (s *Service) UpdateTaskStatus(ctx context.Context, principal *internal.User, dto UpdateTaskStatusDTO) (*Task, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	row, err := s.repo.GetTask(ctx, dto.TaskID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return nil, internal.ErrTaskNotFound
	}
	if err := s.gate.Authorize(ctx, principal, auth.ActionUpdateTaskStatus, auth.Target{UserID: row.AssigneeID}); err != nil {
		return nil, err
	}

	now := s.now()
	ApplyStatus(row, dto.Status, now)
	if err := s.repo.UpdateTaskStatus(ctx, row); err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("task status updated", "task_id", row.ID, "status", row.Status, "user_id", principal.ID)
	return TaskFromDataModel(row, now), nil
}
