package goal

// CreateGoalDTO targets exactly one of a user or a workgroup. Year and month
// may both be zero to mean the current period.
type CreateGoalDTO struct {
	Title        string  `json:"title" validate:"notblank,max=200"`
	Description  string  `json:"description" validate:"max=2000"`
	TargetValue  float64 `json:"targetValue" validate:"gt=0"`
	CurrentValue float64 `json:"currentValue" validate:"gte=0"`
	UserID       *int64  `json:"userId" validate:"omitempty,gt=0"`
	WorkgroupID  *int64  `json:"workgroupId" validate:"omitempty,gt=0"`
	Year         int     `json:"year" validate:"pyear"`
	Month        int     `json:"month" validate:"pmonth"`
}

// CreateTaskDTO.DueDate is a Persian date, e.g. 1403/07/15.
type CreateTaskDTO struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
	AssigneeID  int64  `json:"assigneeId" validate:"required,gt=0"`
	GoalID      *int64 `json:"goalId" validate:"omitempty,gt=0"`
	DueDate     string `json:"dueDate"`
}

type UpdateTaskStatusDTO struct {
	TaskID int64  `json:"taskId" validate:"required,gt=0"`
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}
