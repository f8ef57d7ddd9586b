package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/frahmantamala/kpi-portal/internal/core/events"
	"github.com/frahmantamala/kpi-portal/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the domain event bus: list event types, publish sample events through the audit log`,
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the domain event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.AllEventTypes {
			fmt.Println(t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample event",
	Long:  `Publish a sample domain event to the event bus with the audit subscriber attached`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(context.Background(), args[0])
	},
}

var eventSubjectID int64

func sampleEvent(eventType string, subjectID int64) (events.Event, error) {
	switch eventType {
	case events.EventTypeEvaluationSubmitted:
		return events.NewEvaluationSubmittedEvent("STRATEGIST", 0, subjectID, 0, 0, 0), nil
	case events.EventTypeFeedbackSubmitted:
		return events.NewFeedbackSubmittedEvent(0, subjectID, 0), nil
	case events.EventTypeMessageSent:
		return events.NewMessageSentEvent(0, 0, subjectID), nil
	case events.EventTypeRolesUpdated:
		return events.NewRolesUpdatedEvent(subjectID, 0, false, false), nil
	}
	return nil, fmt.Errorf("unknown event type %q, expected one of: %s", eventType, strings.Join(events.AllEventTypes, ", "))
}

func publishSampleEvent(ctx context.Context, eventType string) error {
	log := logger.LoggerWrapper()

	event, err := sampleEvent(eventType, eventSubjectID)
	if err != nil {
		return err
	}

	bus := events.NewEventBus(log)
	events.RegisterAuditLog(bus, log)

	log.Info("publishing sample event", "event_type", event.EventType(), "event_id", event.EventID())
	if err := bus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventSubjectID, "subject", 1, "user id the sample event is about")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
