package goal

import "time"

const (
	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"
	GoalStatusCancelled = "CANCELLED"

	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// Goal targets exactly one of a user or a workgroup.
type Goal struct {
	ID           int64      `gorm:"primaryKey"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description"`
	TargetValue  float64    `gorm:"column:target_value;not null"`
	CurrentValue float64    `gorm:"column:current_value;not null"`
	UserID       *int64     `gorm:"column:user_id;index"`
	WorkgroupID  *int64     `gorm:"column:workgroup_id;index"`
	Year         int        `gorm:"column:year;not null"`
	Month        int        `gorm:"column:month;not null"`
	Status       string     `gorm:"column:status;size:16;not null"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
	CreatedBy    int64      `gorm:"column:created_by;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Goal) TableName() string {
	return "goals"
}

type Task struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	AssigneeID  int64      `gorm:"column:assignee_id;not null;index"`
	GoalID      *int64     `gorm:"column:goal_id;index"`
	Status      string     `gorm:"column:status;size:16;not null"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedBy   int64      `gorm:"column:created_by;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
