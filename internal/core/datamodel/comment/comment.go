package comment

import "time"

const (
	EvaluationTypeStrategist = "STRATEGIST"
	EvaluationTypeWriter     = "WRITER"

	TypeStrength    = "STRENGTH"
	TypeImprovement = "IMPROVEMENT"
	TypeGeneral     = "GENERAL"
)

type Comment struct {
	ID             int64     `gorm:"primaryKey"`
	EvaluationType string    `gorm:"column:evaluation_type;size:16;not null;index:idx_comments_evaluation"`
	EvaluationID   int64     `gorm:"column:evaluation_id;not null;index:idx_comments_evaluation"`
	AuthorID       int64     `gorm:"column:author_id;not null"`
	CommentType    string    `gorm:"column:comment_type;size:16;not null"`
	Content        string    `gorm:"column:content;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Comment) TableName() string {
	return "comments"
}
