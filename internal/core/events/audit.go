package events

import (
	"context"
	"log/slog"
)

// RegisterAuditLog subscribes a handler that writes every domain event to the
// structured log. It never fails.
func RegisterAuditLog(bus *EventBus, logger *slog.Logger) {
	handler := func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	for _, eventType := range AllEventTypes {
		bus.Subscribe(eventType, handler)
	}
}
