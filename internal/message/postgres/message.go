package postgres

import (
	"context"
	"time"

	messageDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/message"
	"github.com/frahmantamala/kpi-portal/internal/core/dberr"
	"github.com/frahmantamala/kpi-portal/internal/message"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ message.RepositoryAPI = (*MessageRepository)(nil)

func (r *MessageRepository) Create(ctx context.Context, m *messageDatamodel.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*messageDatamodel.Message, error) {
	var row messageDatamodel.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// MarkRead only touches unread rows so read_at keeps the first read time.
func (r *MessageRepository) MarkRead(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&messageDatamodel.Message{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

func (r *MessageRepository) Inbox(ctx context.Context, receiverID int64) ([]*messageDatamodel.Message, error) {
	var rows []*messageDatamodel.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *MessageRepository) Sent(ctx context.Context, senderID int64) ([]*messageDatamodel.Message, error) {
	var rows []*messageDatamodel.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&messageDatamodel.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&n).Error
	return n, err
}
