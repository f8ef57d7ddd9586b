package evaluation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/calendar"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	evaluationDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
)

const (
	msgDuplicateStrategist = "ارزیابی این استراتژیست برای این دوره قبلا ثبت شده است"
	msgDuplicateWriter     = "ارزیابی این نویسنده برای این دوره قبلا ثبت شده است"
	msgSelfEvaluation      = "نمی‌توانید خودتان را ارزیابی کنید"
	msgInactiveSubject     = "کاربر انتخاب شده غیرفعال است"
	msgNotStrategist       = "کاربر انتخاب شده استراتژیست هیچ کارگروهی نیست"
	msgNotWriter           = "کاربر انتخاب شده نویسنده این کارگروه نیست"
)

// RepositoryAPI returns (nil, nil) from single-row getters when nothing matches.
type RepositoryAPI interface {
	CreateStrategist(ctx context.Context, e *evaluationDatamodel.StrategistEvaluation) error
	CreateWriter(ctx context.Context, e *evaluationDatamodel.WriterEvaluation) error
	GetStrategist(ctx context.Context, id int64) (*evaluationDatamodel.StrategistEvaluation, error)
	GetWriter(ctx context.Context, id int64) (*evaluationDatamodel.WriterEvaluation, error)
	ListStrategist(ctx context.Context, filter ListFilter) ([]*evaluationDatamodel.StrategistEvaluation, error)
	ListWriter(ctx context.Context, filter ListFilter) ([]*evaluationDatamodel.WriterEvaluation, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, principal *internal.User, action auth.Action, target auth.Target) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo       RepositoryAPI
	gate       Authorizer
	users      UserLookup
	members    auth.MembershipReader
	workgroups NameDirectory
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	repo RepositoryAPI,
	gate Authorizer,
	users UserLookup,
	members auth.MembershipReader,
	workgroups NameDirectory,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		gate:       gate,
		users:      users,
		members:    members,
		workgroups: workgroups,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) currentPeriod() (calendar.Period, error) {
	p, err := calendar.CurrentPeriod(s.now())
	if err != nil {
		return calendar.Period{}, internal.NewInternalError(internal.MsgInternal, err)
	}
	return p, nil
}

func (s *Service) SubmitStrategistEvaluation(ctx context.Context, principal *internal.User, dto SubmitStrategistEvaluationDTO) (*StrategistEvaluation, error) {
	if dto.Year == 0 && dto.Month == 0 {
		p, err := s.currentPeriod()
		if err != nil {
			return nil, err
		}
		dto.Year, dto.Month = p.Year, p.Month
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, principal, auth.ActionCreateStrategistEvaluation, auth.Target{UserID: dto.StrategistID}); err != nil {
		return nil, err
	}
	if dto.StrategistID == principal.ID {
		return nil, internal.NewValidationError(msgSelfEvaluation, internal.ErrCodeSelfEvaluation)
	}

	subject, err := s.users.GetByID(ctx, dto.StrategistID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if subject == nil {
		return nil, internal.ErrUserNotFound
	}
	if !subject.IsActive {
		return nil, internal.NewValidationError(msgInactiveSubject, internal.ErrCodeInvalidSubject)
	}
	isStrategist, err := s.members.HasRoleAnywhere(ctx, subject.ID, workgroupDatamodel.RoleStrategist)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if !isStrategist {
		return nil, internal.NewValidationError(msgNotStrategist, internal.ErrCodeInvalidSubject)
	}

	status := dto.Status
	if status == "" {
		status = evaluationDatamodel.StatusCompleted
	}
	row := &evaluationDatamodel.StrategistEvaluation{
		StrategistID:      dto.StrategistID,
		EvaluatorID:       principal.ID,
		Year:              dto.Year,
		Month:             dto.Month,
		Planning:          dto.Planning,
		ContentQuality:    dto.ContentQuality,
		TeamLeadership:    dto.TeamLeadership,
		Communication:     dto.Communication,
		Innovation:        dto.Innovation,
		DeadlineAdherence: dto.DeadlineAdherence,
		Reporting:         dto.Reporting,
		Strengths:         strings.TrimSpace(dto.Strengths),
		Improvements:      strings.TrimSpace(dto.Improvements),
		Notes:             strings.TrimSpace(dto.Notes),
		Status:            status,
	}
	if err := s.repo.CreateStrategist(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateStrategist, internal.ErrCodeDuplicateEvaluation)
		}
		s.logger.Error("failed to create strategist evaluation", "error", err, "strategist_id", dto.StrategistID)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("strategist evaluation submitted",
		"evaluation_id", row.ID,
		"strategist_id", row.StrategistID,
		"evaluator_id", row.EvaluatorID,
		"period", calendar.Period{Year: row.Year, Month: row.Month}.String())
	_ = s.publisher.Publish(ctx, events.NewEvaluationSubmittedEvent(KindStrategist, row.ID, row.StrategistID, row.EvaluatorID, row.Year, row.Month))

	view := StrategistFromDataModel(row)
	if err := s.decorateStrategist(ctx, []*StrategistEvaluation{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) SubmitWriterEvaluation(ctx context.Context, principal *internal.User, dto SubmitWriterEvaluationDTO) (*WriterEvaluation, error) {
	if dto.Year == 0 && dto.Month == 0 {
		p, err := s.currentPeriod()
		if err != nil {
			return nil, err
		}
		dto.Year, dto.Month = p.Year, p.Month
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, principal, auth.ActionCreateWriterEvaluation, auth.Target{WorkgroupID: dto.WorkgroupID, UserID: dto.WriterID}); err != nil {
		return nil, err
	}
	if dto.WriterID == principal.ID {
		return nil, internal.NewValidationError(msgSelfEvaluation, internal.ErrCodeSelfEvaluation)
	}

	subject, err := s.users.GetByID(ctx, dto.WriterID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if subject == nil {
		return nil, internal.ErrUserNotFound
	}
	isWriter, err := s.members.HasRole(ctx, dto.WriterID, dto.WorkgroupID, workgroupDatamodel.RoleWriter)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if !isWriter {
		return nil, internal.NewValidationError(msgNotWriter, internal.ErrCodeInvalidSubject)
	}

	row := &evaluationDatamodel.WriterEvaluation{
		WriterID:          dto.WriterID,
		StrategistID:      principal.ID,
		WorkgroupID:       dto.WorkgroupID,
		Year:              dto.Year,
		Month:             dto.Month,
		WritingQuality:    dto.WritingQuality,
		Creativity:        dto.Creativity,
		Research:          dto.Research,
		DeadlineAdherence: dto.DeadlineAdherence,
		SEOCompliance:     dto.SEOCompliance,
		Teamwork:          dto.Teamwork,
		Strengths:         strings.TrimSpace(dto.Strengths),
		Improvements:      strings.TrimSpace(dto.Improvements),
		Notes:             strings.TrimSpace(dto.Notes),
	}
	if err := s.repo.CreateWriter(ctx, row); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, internal.NewDuplicateError(msgDuplicateWriter, internal.ErrCodeDuplicateEvaluation)
		}
		s.logger.Error("failed to create writer evaluation", "error", err, "writer_id", dto.WriterID)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("writer evaluation submitted",
		"evaluation_id", row.ID,
		"writer_id", row.WriterID,
		"strategist_id", row.StrategistID,
		"workgroup_id", row.WorkgroupID,
		"period", calendar.Period{Year: row.Year, Month: row.Month}.String())
	_ = s.publisher.Publish(ctx, events.NewEvaluationSubmittedEvent(KindWriter, row.ID, row.WriterID, row.StrategistID, row.Year, row.Month))

	view := WriterFromDataModel(row)
	if err := s.decorateWriter(ctx, []*WriterEvaluation{view}); err != nil {
		return nil, err
	}
	return view, nil
}

// ListStrategistEvaluations returns every record to admins and otherwise the
// records the principal submitted.
func (s *Service) ListStrategistEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*StrategistEvaluation, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	filter.SubjectID = 0
	filter.EvaluatorID = 0
	if !principal.IsAdmin {
		filter.EvaluatorID = principal.ID
	}
	return s.listStrategist(ctx, filter)
}

// ListOwnStrategistEvaluations returns the records about the principal.
func (s *Service) ListOwnStrategistEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*StrategistEvaluation, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	filter.EvaluatorID = 0
	filter.SubjectID = principal.ID
	return s.listStrategist(ctx, filter)
}

func (s *Service) ListWriterEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*WriterEvaluation, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	filter.SubjectID = 0
	filter.EvaluatorID = 0
	if !principal.IsAdmin {
		filter.EvaluatorID = principal.ID
	}
	return s.listWriter(ctx, filter)
}

func (s *Service) ListOwnWriterEvaluations(ctx context.Context, principal *internal.User, filter ListFilter) ([]*WriterEvaluation, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	filter.EvaluatorID = 0
	filter.SubjectID = principal.ID
	return s.listWriter(ctx, filter)
}

func (s *Service) listStrategist(ctx context.Context, filter ListFilter) ([]*StrategistEvaluation, error) {
	rows, err := s.repo.ListStrategist(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list strategist evaluations", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	out := make([]*StrategistEvaluation, 0, len(rows))
	for _, row := range rows {
		out = append(out, StrategistFromDataModel(row))
	}
	if err := s.decorateStrategist(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) listWriter(ctx context.Context, filter ListFilter) ([]*WriterEvaluation, error) {
	rows, err := s.repo.ListWriter(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list writer evaluations", "error", err)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	out := make([]*WriterEvaluation, 0, len(rows))
	for _, row := range rows {
		out = append(out, WriterFromDataModel(row))
	}
	if err := s.decorateWriter(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Parties returns the evaluator and the evaluated user of one record.
func (s *Service) Parties(ctx context.Context, kind string, id int64) ([]int64, error) {
	switch kind {
	case KindStrategist:
		row, err := s.repo.GetStrategist(ctx, id)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		if row == nil {
			return nil, internal.ErrEvaluationNotFound
		}
		return []int64{row.EvaluatorID, row.StrategistID}, nil
	case KindWriter:
		row, err := s.repo.GetWriter(ctx, id)
		if err != nil {
			return nil, internal.NewInternalError(internal.MsgInternal, err)
		}
		if row == nil {
			return nil, internal.ErrEvaluationNotFound
		}
		return []int64{row.StrategistID, row.WriterID}, nil
	}
	return nil, internal.ErrEvaluationNotFound
}
