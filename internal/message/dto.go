package message

type SendMessageDTO struct {
	ReceiverID int64  `json:"receiverId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"notblank,max=2000"`
}

type MarkReadDTO struct {
	MessageID int64 `json:"messageId" validate:"required,gt=0"`
}
