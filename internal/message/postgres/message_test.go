package postgres_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/kpi-portal/internal"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/kpi-portal/internal/core/events"
	"github.com/frahmantamala/kpi-portal/internal/core/testdb"
	"github.com/frahmantamala/kpi-portal/internal/message"
	"github.com/frahmantamala/kpi-portal/internal/message/postgres"
	"github.com/frahmantamala/kpi-portal/internal/transport"
	userPostgres "github.com/frahmantamala/kpi-portal/internal/user/postgres"
)

func TestMessage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Message Suite")
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Messages", func() {
	var (
		ctx     = context.Background()
		repo    *postgres.MessageRepository
		service *message.Service
		handler *message.Handler
		ali     *internal.User
		sara    *internal.User
	)

	BeforeEach(func() {
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		users := userPostgres.NewUserRepository(db)
		mk := func(name string) *internal.User {
			u := &userDatamodel.User{Name: name, Email: name + "@example.com", PasswordHash: "x", IsActive: true}
			Expect(users.Create(ctx, u)).To(Succeed())
			return &internal.User{ID: u.ID, Name: u.Name}
		}
		ali, sara = mk("ali"), mk("sara")

		repo = postgres.NewMessageRepository(db)
		service = message.NewService(repo, users, events.NewEventBus(discardLogger), discardLogger)
		handler = message.NewHandler(transport.NewBaseHandler(discardLogger), service)
	})

	It("delivers a message to the receiver's inbox", func() {
		m, err := service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: " سلام "})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Content).To(Equal("سلام"))
		Expect(m.ReceiverName).To(Equal("sara"))

		inbox, err := service.Inbox(ctx, sara)
		Expect(err).NotTo(HaveOccurred())
		Expect(inbox).To(HaveLen(1))
		Expect(inbox[0].SenderName).To(Equal("ali"))

		sent, err := service.Sent(ctx, ali)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(HaveLen(1))

		n, err := service.UnreadCount(ctx, sara)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
	})

	It("rejects messages to oneself, to unknown users and blank content", func() {
		_, err := service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: ali.ID, Content: "x"})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))

		_, err = service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: 999, Content: "x"})
		Expect(err).To(MatchError(internal.ErrUserNotFound))

		_, err = service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: "   "})
		appErr, ok = internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("limits content to 2000 characters", func() {
		_, err := service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: strings.Repeat("س", 2000)})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: strings.Repeat("س", 2001)})
		Expect(err).To(HaveOccurred())
	})

	It("lets only the receiver mark a message read, idempotently", func() {
		m, err := service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: "x"})
		Expect(err).NotTo(HaveOccurred())

		Expect(service.MarkRead(ctx, ali, message.MarkReadDTO{MessageID: m.ID})).To(MatchError(internal.ErrForbidden))

		Expect(service.MarkRead(ctx, sara, message.MarkReadDTO{MessageID: m.ID})).To(Succeed())
		first, err := repo.GetByID(ctx, m.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.IsRead).To(BeTrue())
		Expect(first.ReadAt).NotTo(BeNil())

		Expect(service.MarkRead(ctx, sara, message.MarkReadDTO{MessageID: m.ID})).To(Succeed())
		second, _ := repo.GetByID(ctx, m.ID)
		Expect(second.ReadAt.Equal(*first.ReadAt)).To(BeTrue())

		n, _ := service.UnreadCount(ctx, sara)
		Expect(n).To(BeZero())

		Expect(service.MarkRead(ctx, sara, message.MarkReadDTO{MessageID: 404})).To(MatchError(internal.ErrMessageNotFound))
	})

	It("returns the unread count through the handler", func() {
		_, err := service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: "x"})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/messages/unread-count", nil)
		req = req.WithContext(internal.ContextWithUser(req.Context(), sara))
		rec := httptest.NewRecorder()
		handler.UnreadCount(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"count":1`))
	})

	It("answers 403 when someone else marks the message", func() {
		m, err := service.Send(ctx, ali, message.SendMessageDTO{ReceiverID: sara.ID, Content: "x"})
		Expect(err).NotTo(HaveOccurred())

		body := bytes.NewBufferString(`{"messageId":` + strconv.FormatInt(m.ID, 10) + `}`)
		req := httptest.NewRequest(http.MethodPost, "/api/messages/mark-read", body)
		req = req.WithContext(internal.ContextWithUser(req.Context(), ali))
		rec := httptest.NewRecorder()
		handler.MarkRead(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})
})
