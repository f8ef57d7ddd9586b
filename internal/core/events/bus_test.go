package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/kpi-portal/internal/core/events"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var _ = Describe("EventBus", func() {
	var (
		bus *events.EventBus
		out *syncBuffer
	)

	BeforeEach(func() {
		out = &syncBuffer{}
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	})

	It("delivers published events to subscribers asynchronously", func() {
		received := make(chan events.Event, 1)
		bus.Subscribe(events.EventTypeMessageSent, func(ctx context.Context, e events.Event) error {
			received <- e
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		Expect(bus.Publish(ctx, events.NewMessageSentEvent(1, 2, 3))).To(Succeed())
		cancel()

		var got events.Event
		Eventually(received).Should(Receive(&got))
		Expect(got.EventType()).To(Equal(events.EventTypeMessageSent))
		Expect(got.(*events.MessageSentEvent).ReceiverID).To(Equal(int64(3)))
	})

	It("ignores event types without subscribers", func() {
		Expect(bus.Publish(context.Background(), events.NewFeedbackSubmittedEvent(1, 2, 3))).To(Succeed())
	})

	It("returns handler failures from PublishSync", func() {
		bus.Subscribe(events.EventTypeRolesUpdated, func(ctx context.Context, e events.Event) error {
			return errors.New("boom")
		})
		err := bus.PublishSync(context.Background(), events.NewRolesUpdatedEvent(5, 1, true, false))
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("writes audit entries for domain events", func() {
		events.RegisterAuditLog(bus, slog.New(slog.NewTextHandler(out, nil)))
		e := events.NewEvaluationSubmittedEvent("writer", 10, 4, 2, 1403, 7)
		Expect(bus.PublishSync(context.Background(), e)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("evaluation.submitted"))
		Expect(out.String()).To(ContainSubstring(e.EventID()))
	})

	It("drains in-flight deliveries", func() {
		release := make(chan struct{})
		var delivered sync.WaitGroup
		delivered.Add(1)
		bus.Subscribe(events.EventTypeMessageSent, func(ctx context.Context, e events.Event) error {
			<-release
			delivered.Done()
			return nil
		})
		Expect(bus.Subscribers(events.EventTypeMessageSent)).To(Equal(1))
		Expect(bus.Publish(context.Background(), events.NewMessageSentEvent(1, 2, 3))).To(Succeed())

		expired, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(bus.Drain(expired)).To(MatchError(context.Canceled))

		close(release)
		Expect(bus.Drain(context.Background())).To(Succeed())
		delivered.Wait()
	})

	It("refuses publishes once draining has started", func() {
		var calls int32
		bus.Subscribe(events.EventTypeMessageSent, func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		Expect(bus.Drain(context.Background())).To(Succeed())

		err := bus.Publish(context.Background(), events.NewMessageSentEvent(1, 2, 3))
		Expect(err).To(MatchError(events.ErrBusClosed))
		Expect(bus.Drain(context.Background())).To(Succeed())
		Expect(atomic.LoadInt32(&calls)).To(BeZero())
	})

	It("waits for every delivery it accepted while publishers race the drain", func() {
		var delivered int32
		bus.Subscribe(events.EventTypeMessageSent, func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&delivered, 1)
			return nil
		})

		var (
			publishers sync.WaitGroup
			accepted   int32
			start      = make(chan struct{})
		)
		for i := 0; i < 50; i++ {
			publishers.Add(1)
			go func(i int) {
				defer publishers.Done()
				<-start
				if bus.Publish(context.Background(), events.NewMessageSentEvent(int64(i), 1, 2)) == nil {
					atomic.AddInt32(&accepted, 1)
				}
			}(i)
		}
		close(start)
		Expect(bus.Drain(context.Background())).To(Succeed())
		drained := atomic.LoadInt32(&delivered)
		publishers.Wait()

		Expect(drained).To(Equal(atomic.LoadInt32(&accepted)))
	})
})
