package postgres

import (
	"context"

	goalDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/goal"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/goal"
	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

var _ goal.RepositoryAPI = (*GoalRepository)(nil)

func (r *GoalRepository) CreateGoal(ctx context.Context, g *goalDatamodel.Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GoalRepository) GetGoal(ctx context.Context, id int64) (*goalDatamodel.Goal, error) {
	var row goalDatamodel.Goal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *GoalRepository) ListGoals(ctx context.Context, userID int64, workgroupIDs []int64) ([]*goalDatamodel.Goal, error) {
	var rows []*goalDatamodel.Goal
	q := r.db.WithContext(ctx)
	switch {
	case userID > 0 && len(workgroupIDs) > 0:
		q = q.Where("user_id = ? OR workgroup_id IN ?", userID, workgroupIDs)
	case userID > 0:
		q = q.Where("user_id = ?", userID)
	}
	err := q.Order("year DESC, month DESC, created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

func (r *GoalRepository) CreateTask(ctx context.Context, t *goalDatamodel.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GoalRepository) GetTask(ctx context.Context, id int64) (*goalDatamodel.Task, error) {
	var row goalDatamodel.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListTasks orders open work by due date, undated tasks last.
func (r *GoalRepository) ListTasks(ctx context.Context, assigneeID int64) ([]*goalDatamodel.Task, error) {
	var rows []*goalDatamodel.Task
	q := r.db.WithContext(ctx)
	if assigneeID > 0 {
		q = q.Where("assignee_id = ?", assigneeID)
	}
	err := q.Order("due_date IS NULL, due_date ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *GoalRepository) UpdateTaskStatus(ctx context.Context, t *goalDatamodel.Task) error {
	return r.db.WithContext(ctx).
		Model(&goalDatamodel.Task{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"status":       t.Status,
			"completed_at": t.CompletedAt,
		}).Error
}
