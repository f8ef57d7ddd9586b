package comment

type CreateCommentDTO struct {
	EvaluationType string `json:"evaluationType" validate:"required,oneof=STRATEGIST WRITER"`
	EvaluationID   int64  `json:"evaluationId" validate:"required,gt=0"`
	CommentType    string `json:"commentType" validate:"omitempty,oneof=STRENGTH IMPROVEMENT GENERAL"`
	Content        string `json:"content" validate:"notblank,max=2000"`
}

type ListCommentsDTO struct {
	EvaluationType string `json:"evaluationType" validate:"required,oneof=STRATEGIST WRITER"`
	EvaluationID   int64  `json:"evaluationId" validate:"required,gt=0"`
}
