package evaluation

import "time"

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// StrategistEvaluation is unique per (strategist, year, month).
type StrategistEvaluation struct {
	ID                int64     `gorm:"primaryKey"`
	StrategistID      int64     `gorm:"column:strategist_id;not null;uniqueIndex:idx_strategist_evaluations_period"`
	EvaluatorID       int64     `gorm:"column:evaluator_id;not null;index"`
	Year              int       `gorm:"column:year;not null;uniqueIndex:idx_strategist_evaluations_period"`
	Month             int       `gorm:"column:month;not null;uniqueIndex:idx_strategist_evaluations_period"`
	Planning          int       `gorm:"column:planning;not null"`
	ContentQuality    int       `gorm:"column:content_quality;not null"`
	TeamLeadership    int       `gorm:"column:team_leadership;not null"`
	Communication     int       `gorm:"column:communication;not null"`
	Innovation        int       `gorm:"column:innovation;not null"`
	DeadlineAdherence int       `gorm:"column:deadline_adherence;not null"`
	Reporting         int       `gorm:"column:reporting;not null"`
	Strengths         string    `gorm:"column:strengths"`
	Improvements      string    `gorm:"column:improvements"`
	Notes             string    `gorm:"column:notes"`
	Status            string    `gorm:"column:status;size:16;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StrategistEvaluation) TableName() string {
	return "strategist_evaluations"
}

// WriterEvaluation is unique per (writer, year, month); the workgroup is not
// part of the key.
type WriterEvaluation struct {
	ID                int64     `gorm:"primaryKey"`
	WriterID          int64     `gorm:"column:writer_id;not null;uniqueIndex:idx_writer_evaluations_period"`
	StrategistID      int64     `gorm:"column:strategist_id;not null;index"`
	WorkgroupID       int64     `gorm:"column:workgroup_id;not null;index"`
	Year              int       `gorm:"column:year;not null;uniqueIndex:idx_writer_evaluations_period"`
	Month             int       `gorm:"column:month;not null;uniqueIndex:idx_writer_evaluations_period"`
	WritingQuality    int       `gorm:"column:writing_quality;not null"`
	Creativity        int       `gorm:"column:creativity;not null"`
	Research          int       `gorm:"column:research;not null"`
	DeadlineAdherence int       `gorm:"column:deadline_adherence;not null"`
	SEOCompliance     int       `gorm:"column:seo_compliance;not null"`
	Teamwork          int       `gorm:"column:teamwork;not null"`
	Strengths         string    `gorm:"column:strengths"`
	Improvements      string    `gorm:"column:improvements"`
	Notes             string    `gorm:"column:notes"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (WriterEvaluation) TableName() string {
	return "writer_evaluations"
}
