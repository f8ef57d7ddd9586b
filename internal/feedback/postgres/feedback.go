package postgres

import (
	"context"

	feedbackDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/feedback"
	"github.com/frahmantamala/kpi-portal/internal/feedback"
	"gorm.io/gorm"
)

const listOrder = "year DESC, month DESC, created_at DESC, id DESC"

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

var _ feedback.RepositoryAPI = (*FeedbackRepository)(nil)

func (r *FeedbackRepository) Create(ctx context.Context, f *feedbackDatamodel.WriterFeedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FeedbackRepository) ListAll(ctx context.Context) ([]*feedbackDatamodel.WriterFeedback, error) {
	var rows []*feedbackDatamodel.WriterFeedback
	err := r.db.WithContext(ctx).Order(listOrder).Find(&rows).Error
	return rows, err
}

func (r *FeedbackRepository) ListVisible(ctx context.Context, userID int64, workgroupIDs []int64) ([]*feedbackDatamodel.WriterFeedback, error) {
	var rows []*feedbackDatamodel.WriterFeedback
	q := r.db.WithContext(ctx).Where("writer_id = ?", userID)
	if len(workgroupIDs) > 0 {
		q = r.db.WithContext(ctx).Where("writer_id = ? OR workgroup_id IN ?", userID, workgroupIDs)
	}
	err := q.Order(listOrder).Find(&rows).Error
	return rows, err
}
