package postgres

import (
	"context"

	evaluationDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/evaluation"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/evaluation"
	"gorm.io/gorm"
)

const listOrder = "year DESC, month DESC, created_at DESC, id DESC"

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

var _ evaluation.RepositoryAPI = (*EvaluationRepository)(nil)

func (r *EvaluationRepository) CreateStrategist(ctx context.Context, e *evaluationDatamodel.StrategistEvaluation) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EvaluationRepository) CreateWriter(ctx context.Context, e *evaluationDatamodel.WriterEvaluation) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EvaluationRepository) GetStrategist(ctx context.Context, id int64) (*evaluationDatamodel.StrategistEvaluation, error) {
	var row evaluationDatamodel.StrategistEvaluation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *EvaluationRepository) GetWriter(ctx context.Context, id int64) (*evaluationDatamodel.WriterEvaluation, error) {
	var row evaluationDatamodel.WriterEvaluation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *EvaluationRepository) ListStrategist(ctx context.Context, filter evaluation.ListFilter) ([]*evaluationDatamodel.StrategistEvaluation, error) {
	var rows []*evaluationDatamodel.StrategistEvaluation
	q := periodScope(r.db.WithContext(ctx), filter)
	if filter.EvaluatorID > 0 {
		q = q.Where("evaluator_id = ?", filter.EvaluatorID)
	}
	if filter.SubjectID > 0 {
		q = q.Where("strategist_id = ?", filter.SubjectID)
	}
	err := q.Order(listOrder).Find(&rows).Error
	return rows, err
}

func (r *EvaluationRepository) ListWriter(ctx context.Context, filter evaluation.ListFilter) ([]*evaluationDatamodel.WriterEvaluation, error) {
	var rows []*evaluationDatamodel.WriterEvaluation
	q := periodScope(r.db.WithContext(ctx), filter)
	if filter.EvaluatorID > 0 {
		q = q.Where("strategist_id = ?", filter.EvaluatorID)
	}
	if filter.SubjectID > 0 {
		q = q.Where("writer_id = ?", filter.SubjectID)
	}
	err := q.Order(listOrder).Find(&rows).Error
	return rows, err
}

func periodScope(q *gorm.DB, filter evaluation.ListFilter) *gorm.DB {
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	return q
}
