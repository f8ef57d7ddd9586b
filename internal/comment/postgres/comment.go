package postgres

import (
	"context"

	"github.com/frahmantamala/kpi-portal/internal/comment"
	commentDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/comment"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

var _ comment.RepositoryAPI = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *commentDatamodel.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) ListForEvaluation(ctx context.Context, evaluationType string, evaluationID int64) ([]*commentDatamodel.Comment, error) {
	var rows []*commentDatamodel.Comment
	err := r.db.WithContext(ctx).
		Where("evaluation_type = ? AND evaluation_id = ?", evaluationType, evaluationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
