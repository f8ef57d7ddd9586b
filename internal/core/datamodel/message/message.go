package message

import "time"

type Message struct {
	ID         int64      `gorm:"primaryKey"`
	SenderID   int64      `gorm:"column:sender_id;not null;index"`
	ReceiverID int64      `gorm:"column:receiver_id;not null;index"`
	Content    string     `gorm:"column:content;not null"`
	IsRead     bool       `gorm:"column:is_read;not null"`
	ReadAt     *time.Time `gorm:"column:read_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
