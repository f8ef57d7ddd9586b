package message

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/kpi-portal/internal"
	"github.com/frahmantamala/kpi-portal/internal/core/common/validation"
	messageDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/message"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
)

const msgSelfMessage = "نمی‌توانید به خودتان پیام بدهید"

// RepositoryAPI returns (nil, nil) from single-row getters when nothing matches.
type RepositoryAPI interface {
	Create(ctx context.Context, m *messageDatamodel.Message) error
	GetByID(ctx context.Context, id int64) (*messageDatamodel.Message, error)
	MarkRead(ctx context.Context, id int64, at time.Time) error
	Inbox(ctx context.Context, receiverID int64) ([]*messageDatamodel.Message, error)
	Sent(ctx context.Context, senderID int64) ([]*messageDatamodel.Message, error)
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	repo      RepositoryAPI
	users     UserLookup
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, users UserLookup, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Send(ctx context.Context, principal *internal.User, dto SendMessageDTO) (*Message, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	dto.Content = strings.TrimSpace(dto.Content)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if dto.ReceiverID == principal.ID {
		return nil, internal.NewValidationFieldError("receiverId", msgSelfMessage, internal.ErrCodeValidationFailed)
	}

	receiver, err := s.users.GetByID(ctx, dto.ReceiverID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if receiver == nil {
		return nil, internal.ErrUserNotFound
	}

	row := &messageDatamodel.Message{
		SenderID:   principal.ID,
		ReceiverID: receiver.ID,
		Content:    dto.Content,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to send message", "error", err, "sender_id", principal.ID)
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	s.logger.Info("message sent", "message_id", row.ID, "sender_id", row.SenderID, "receiver_id", row.ReceiverID)
	_ = s.publisher.Publish(ctx, events.NewMessageSentEvent(row.ID, row.SenderID, row.ReceiverID))

	m := FromDataModel(row)
	m.SenderName = principal.Name
	m.ReceiverName = receiver.Name
	return m, nil
}

// MarkRead flags a message as read. Only its receiver may do so; marking an
// already read message changes nothing.
func (s *Service) MarkRead(ctx context.Context, principal *internal.User, dto MarkReadDTO) error {
	if principal == nil {
		return internal.ErrUnauthenticated
	}
	if err := validation.Struct(dto); err != nil {
		return err
	}

	row, err := s.repo.GetByID(ctx, dto.MessageID)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if row == nil {
		return internal.ErrMessageNotFound
	}
	if row.ReceiverID != principal.ID {
		return internal.ErrForbidden
	}
	if row.IsRead {
		return nil
	}
	if err := s.repo.MarkRead(ctx, row.ID, s.now()); err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	return nil
}

func (s *Service) Inbox(ctx context.Context, principal *internal.User) ([]*Message, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	rows, err := s.repo.Inbox(ctx, principal.ID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	return s.views(ctx, rows)
}

func (s *Service) Sent(ctx context.Context, principal *internal.User) ([]*Message, error) {
	if principal == nil {
		return nil, internal.ErrUnauthenticated
	}
	rows, err := s.repo.Sent(ctx, principal.ID)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	return s.views(ctx, rows)
}

func (s *Service) UnreadCount(ctx context.Context, principal *internal.User) (int64, error) {
	if principal == nil {
		return 0, internal.ErrUnauthenticated
	}
	n, err := s.repo.CountUnread(ctx, principal.ID)
	if err != nil {
		return 0, internal.NewInternalError(internal.MsgInternal, err)
	}
	return n, nil
}

func (s *Service) views(ctx context.Context, rows []*messageDatamodel.Message) ([]*Message, error) {
	out := make([]*Message, 0, len(rows))
	ids := make([]int64, 0, len(rows)*2)
	for _, row := range rows {
		out = append(out, FromDataModel(row))
		ids = append(ids, row.SenderID, row.ReceiverID)
	}
	if len(out) == 0 {
		return out, nil
	}
	names, err := s.users.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	for _, m := range out {
		m.SenderName = names[m.SenderID]
		m.ReceiverName = names[m.ReceiverID]
	}
	return out, nil
}
