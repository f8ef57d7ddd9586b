package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	commentDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/comment"
)

type RepositoryAPI interface {
	Create(ctx context.Context, c *commentDatamodel.Comment) error
	ListForEvaluation(ctx context.Context, evaluationType string, evaluationID int64) ([]*commentDatamodel.Comment, error)
}

// EvaluationParties returns the evaluator and the subject of an evaluation,
// or a not-found error.
type EvaluationParties interface {
	Parties(ctx context.Context, kind string, id int64) ([]int64, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, principal *internal.User, action auth.Action, target auth.Target) error
}

type NameDirectory interface {
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo        RepositoryAPI
	evaluations EvaluationParties
	gate        Authorizer
	users       NameDirectory
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, evaluations EvaluationParties, gate Authorizer, users NameDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		evaluations: evaluations,
		gate:        gate,
		users:       users,
		logger:      logger,
	}
}

func (s *Service) Create(ctx context.Context, principal *internal.User, dto CreateCommentDTO) (*Comment, error) {
	dto.Content = strings.TrimSpace(dto.Content)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, principal, dto.EvaluationType, dto.EvaluationID); err != nil {
		return nil, err
	}

	commentType := dto.CommentType
	if commentType == "" {
		commentType = commentDatamodel.TypeGeneral
	}
	row := &commentDatamodel.Comment{
		EvaluationType: dto.EvaluationType,
		EvaluationID:   dto.EvaluationID,
		AuthorID:       principal.ID,
		CommentType:    commentType,
		Content:        dto.Content,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create comment", "error", err, "evaluation_id", dto.EvaluationID)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	c := FromDataModel(row)
	c.AuthorName = principal.Name
	return c, nil
}

// List returns the comments of one evaluation, oldest first. The caller must
// be a party to the evaluation or an admin.
func (s *Service) List(ctx context.Context, principal *internal.User, dto ListCommentsDTO) ([]*Comment, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, principal, dto.EvaluationType, dto.EvaluationID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListForEvaluation(ctx, dto.EvaluationType, dto.EvaluationID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	out := make([]*Comment, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
		ids = append(ids, row.AuthorID)
	}
	if len(out) == 0 {
		return out, nil
	}
	names, err := s.users.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	for _, c := range out {
		c.AuthorName = names[c.AuthorID]
	}
	return out, nil
}

func (s *Service) authorize(ctx context.Context, principal *internal.User, kind string, id int64) error {
	if principal == nil {
		return internal.ErrUnauthenticated
	}
	parties, err := s.evaluations.Parties(ctx, kind, id)
	if err != nil {
		return err
	}
	return s.gate.Authorize(ctx, principal, auth.ActionCommentOnEvaluation, auth.Target{UserIDs: parties})
}
