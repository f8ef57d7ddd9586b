package goal

import (
	"time"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
	goalDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/goal"
)

type Goal struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	TargetValue   float64    `json:"targetValue"`
	CurrentValue  float64    `json:"currentValue"`
	Progress      int        `json:"progress"`
	UserID        *int64     `json:"userId"`
	WorkgroupID   *int64     `json:"workgroupId"`
	WorkgroupName string     `json:"workgroupName,omitempty"`
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	PeriodLabel   string     `json:"periodLabel"`
	Status        string     `json:"status"`
	CompletedAt   *time.Time `json:"completedAt"`
	CreatedBy     int64      `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Progress is current/target as a whole percentage capped at 100.
func Progress(current, target float64) int {
	if target <= 0 || current <= 0 {
		return 0
	}
	p := int(current / target * 100)
	if p > 100 {
		return 100
	}
	return p
}

func GoalFromDataModel(g *goalDatamodel.Goal) *Goal {
	return &Goal{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Progress:     Progress(g.CurrentValue, g.TargetValue),
		UserID:       g.UserID,
		WorkgroupID:  g.WorkgroupID,
		Year:         g.Year,
		Month:        g.Month,
		PeriodLabel:  calendar.Period{Year: g.Year, Month: g.Month}.Label(),
		Status:       g.Status,
		CompletedAt:  g.CompletedAt,
		CreatedBy:    g.CreatedBy,
		CreatedAt:    g.CreatedAt,
	}
}

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  int64      `json:"assigneeId"`
	GoalID      *int64     `json:"goalId"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	DueDateFa   string     `json:"dueDateFa,omitempty"`
	Overdue     bool       `json:"overdue"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedBy   int64      `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func TaskFromDataModel(t *goalDatamodel.Task, now time.Time) *Task {
	out := &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
		GoalID:      t.GoalID,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
	if t.DueDate != nil {
		out.DueDateFa = calendar.FormatDate(*t.DueDate)
		out.Overdue = t.Status != goalDatamodel.TaskStatusDone && now.After(t.DueDate.AddDate(0, 0, 1))
	}
	return out
}

// ApplyStatus moves a task to status. completed_at is stamped on entering DONE
// and cleared on leaving it.
func ApplyStatus(t *goalDatamodel.Task, status string, now time.Time) {
	switch {
	case status == goalDatamodel.TaskStatusDone && t.Status != goalDatamodel.TaskStatusDone:
		t.CompletedAt = &now
	case status != goalDatamodel.TaskStatusDone:
		t.CompletedAt = nil
	}
	t.Status = status
}
