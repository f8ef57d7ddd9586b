package workgroup

import "time"

const (
	RoleStrategist = "STRATEGIST"
	RoleWriter     = "WRITER"
)

type Workgroup struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Workgroup) TableName() string {
	return "workgroups"
}

// WorkgroupMember is unique per (workgroup, user, role): a user may be both
// strategist and writer of one workgroup, but never hold a role twice.
type WorkgroupMember struct {
	ID          int64     `gorm:"primaryKey"`
	WorkgroupID int64     `gorm:"column:workgroup_id;not null;uniqueIndex:idx_workgroup_members_unique"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_workgroup_members_unique;index"`
	Role        string    `gorm:"column:role;size:16;not null;uniqueIndex:idx_workgroup_members_unique"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (WorkgroupMember) TableName() string {
	return "workgroup_members"
}
