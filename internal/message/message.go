package message

import (
	"time"

	"github.com/frahmantamala/kpi-portal/internal/calendar"
	messageDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/message"
)

type Message struct {
	ID           int64      `json:"id"`
	SenderID     int64      `json:"senderId"`
	SenderName   string     `json:"senderName"`
	ReceiverID   int64      `json:"receiverId"`
	ReceiverName string     `json:"receiverName"`
	Content      string     `json:"content"`
	IsRead       bool       `json:"isRead"`
	ReadAt       *time.Time `json:"readAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedAtFa  string     `json:"createdAtFa"`
}

func FromDataModel(m *messageDatamodel.Message) *Message {
	return &Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		ReceiverID:  m.ReceiverID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
		CreatedAtFa: calendar.Format(m.CreatedAt, "yyyy/MM/dd HH:mm"),
	}
}
