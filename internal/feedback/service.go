package feedback

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/calendar"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	feedbackDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/feedback"
	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
)

const msgDuplicateFeedback = "بازخورد شما برای این کارگروه در این دوره قبلا ثبت شده است"

type RepositoryAPI interface {
	Create(ctx context.Context, f *feedbackDatamodel.WriterFeedback) error
	ListAll(ctx context.Context) ([]*feedbackDatamodel.WriterFeedback, error)
	// ListVisible returns rows written by userID or addressed to any of
	// workgroupIDs.
	ListVisible(ctx context.Context, userID int64, workgroupIDs []int64) ([]*feedbackDatamodel.WriterFeedback, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, principal *internal.User, action auth.Action, target auth.Target) error
}

type Workgroups interface {
	WorkgroupsForUser(ctx context.Context, userID int64, roles ...string) ([]*workgroup.Workgroup, error)
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type NameDirectory interface {
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo       RepositoryAPI
	gate       Authorizer
	workgroups Workgroups
	users      NameDirectory
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, gate Authorizer, workgroups Workgroups, users NameDirectory, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		gate:       gate,
		workgroups: workgroups,
		users:      users,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit records the principal's feedback about one of their workgroups.
func (s *Service) Submit(ctx context.Context, principal *internal.User, dto SubmitFeedbackDTO) (*Feedback, error) {
	if dto.Year == 0 && dto.Month == 0 {
		p, err := calendar.CurrentPeriod(s.now())
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		dto.Year, dto.Month = p.Year, p.Month
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, principal, auth.ActionSubmitFeedback, auth.Target{WorkgroupID: dto.WorkgroupID}); err != nil {
		return nil, err
	}

	row := &feedbackDatamodel.WriterFeedback{
		WriterID:        principal.ID,
		WorkgroupID:     dto.WorkgroupID,
		Year:            dto.Year,
		Month:           dto.Month,
		Communication:   dto.Communication,
		Support:         dto.Support,
		Clarity:         dto.Clarity,
		FeedbackQuality: dto.FeedbackQuality,
		Comment:         strings.TrimSpace(dto.Comment),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateFeedback, internal.ErrCodeDuplicateFeedback)
		}
		s.logger.Error("failed to create feedback", "error", err, "user_id", principal.ID)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("feedback submitted", "feedback_id", row.ID, "user_id", row.WriterID, "workgroup_id", row.WorkgroupID)
	_ = s.publisher.Publish(ctx, events.NewFeedbackSubmittedEvent(row.ID, row.WriterID, row.WorkgroupID))

	out := []*Feedback{FromDataModel(row)}
	if err := s.decorate(ctx, out); err != nil {
		return nil, err
	}
	return out[0], nil
}

// List returns everything to admins. Others see their own submissions and the
// feedback addressed to workgroups they lead.
func (s *Service) List(ctx context.Context, principal *internal.User) ([]*Feedback, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}

	var (
		rows []*feedbackDatamodel.WriterFeedback
		err  error
	)
	if principal.IsAdmin {
		rows, err = s.repo.ListAll(ctx)
	} else {
		led, lerr := s.workgroups.WorkgroupsForUser(ctx, principal.ID, workgroupDatamodel.RoleStrategist)
		if lerr != nil {
			return nil, lerr
		}
		ids := make([]int64, 0, len(led))
		for _, w := range led {
			ids = append(ids, w.ID)
		}
		rows, err = s.repo.ListVisible(ctx, principal.ID, ids)
	}
	if err != nil {
		s.logger.Error("failed to list feedback", "error", err, "user_id", principal.ID)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	out := make([]*Feedback, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	if err := s.decorate(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EligibleWorkgroups lists the workgroups the principal may give feedback
// about: every workgroup where they are a writer or a strategist.
func (s *Service) EligibleWorkgroups(ctx context.Context, principal *internal.User) ([]*workgroup.Workgroup, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	return s.workgroups.WorkgroupsForUser(ctx, principal.ID, workgroupDatamodel.RoleWriter, workgroupDatamodel.RoleStrategist)
}

func (s *Service) decorate(ctx context.Context, list []*Feedback) error {
	if len(list) == 0 {
		return nil
	}
	userIDs := make([]int64, 0, len(list))
	groupIDs := make([]int64, 0, len(list))
	for _, f := range list {
		userIDs = append(userIDs, f.WriterID)
		groupIDs = append(groupIDs, f.WorkgroupID)
	}
	names, err := s.users.NamesByIDs(ctx, userIDs)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	groups, err := s.workgroups.NamesByIDs(ctx, groupIDs)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	for _, f := range list {
		f.WriterName = names[f.WriterID]
		f.WorkgroupName = groups[f.WorkgroupID]
	}
	return nil
}
