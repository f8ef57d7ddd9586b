package comment

import (
	"time"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
	commentDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/comment"
)

type Comment struct {
	ID             int64     `json:"id"`
	EvaluationType string    `json:"evaluationType"`
	EvaluationID   int64     `json:"evaluationId"`
	AuthorID       int64     `json:"authorId"`
	AuthorName     string    `json:"authorName"`
	CommentType    string    `json:"commentType"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedAtFa    string    `json:"createdAtFa"`
}

func FromDataModel(c *commentDatamodel.Comment) *Comment {
	return &Comment{
		ID:             c.ID,
		EvaluationType: c.EvaluationType,
		EvaluationID:   c.EvaluationID,
		AuthorID:       c.AuthorID,
		CommentType:    c.CommentType,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
		CreatedAtFa:    calendar.FormatDate(c.CreatedAt),
	}
}
