package postgres

import (
	"context"

	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/workgroup"
	"gorm.io/gorm"
)

type WorkgroupRepository struct {
	db *gorm.DB
}

func NewWorkgroupRepository(db *gorm.DB) *WorkgroupRepository {
	return &WorkgroupRepository{db: db}
}

var _ workgroup.RepositoryAPI = (*WorkgroupRepository)(nil)

func (r *WorkgroupRepository) List(ctx context.Context) ([]*workgroupDatamodel.Workgroup, error) {
	var rows []*workgroupDatamodel.Workgroup
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *WorkgroupRepository) GetByID(ctx context.Context, id int64) (*workgroupDatamodel.Workgroup, error) {
	var row workgroupDatamodel.Workgroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *WorkgroupRepository) GetByIDs(ctx context.Context, ids []int64) ([]*workgroupDatamodel.Workgroup, error) {
	var rows []*workgroupDatamodel.Workgroup
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *WorkgroupRepository) Create(ctx context.Context, w *workgroupDatamodel.Workgroup) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkgroupRepository) Update(ctx context.Context, w *workgroupDatamodel.Workgroup) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete removes the workgroup and its members in one transaction.
func (r *WorkgroupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workgroup_id = ?", id).Delete(&workgroupDatamodel.WorkgroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&workgroupDatamodel.Workgroup{}, id).Error
	})
}

func (r *WorkgroupRepository) MembersOf(ctx context.Context, workgroupIDs []int64) ([]*workgroupDatamodel.WorkgroupMember, error) {
	var rows []*workgroupDatamodel.WorkgroupMember
	if len(workgroupIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Where("workgroup_id IN ?", workgroupIDs).
		Order("role ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *WorkgroupRepository) GetMember(ctx context.Context, id int64) (*workgroupDatamodel.WorkgroupMember, error) {
	var row workgroupDatamodel.WorkgroupMember
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *WorkgroupRepository) AddMember(ctx context.Context, m *workgroupDatamodel.WorkgroupMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *WorkgroupRepository) UpdateMemberRole(ctx context.Context, id int64, role string) error {
	return r.db.WithContext(ctx).
		Model(&workgroupDatamodel.WorkgroupMember{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *WorkgroupRepository) RemoveMember(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&workgroupDatamodel.WorkgroupMember{}, id).Error
}

func (r *WorkgroupRepository) HasRole(ctx context.Context, userID, workgroupID int64, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&workgroupDatamodel.WorkgroupMember{}).
		Where("user_id = ? AND workgroup_id = ? AND role = ?", userID, workgroupID, role).
		Count(&count).Error
	return count > 0, err
}

func (r *WorkgroupRepository) HasRoleAnywhere(ctx context.Context, userID int64, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&workgroupDatamodel.WorkgroupMember{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

func (r *WorkgroupRepository) WorkgroupIDsForUser(ctx context.Context, userID int64, roles ...string) ([]int64, error) {
	var ids []int64
	q := r.db.WithContext(ctx).
		Model(&workgroupDatamodel.WorkgroupMember{}).
		Where("user_id = ?", userID)
	if len(roles) > 0 {
		q = q.Where("role IN ?", roles)
	}
	err := q.Distinct("workgroup_id").Order("workgroup_id ASC").Pluck("workgroup_id", &ids).Error
	return ids, err
}
