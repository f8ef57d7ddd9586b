package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEvaluationSubmitted = "evaluation.submitted"
	EventTypeFeedbackSubmitted   = "feedback.submitted"
	EventTypeMessageSent         = "message.sent"
	EventTypeRolesUpdated        = "user.roles_updated"
)

// AllEventTypes is the set the audit subscriber listens to.
var AllEventTypes = []string{
	EventTypeEvaluationSubmitted,
	EventTypeFeedbackSubmitted,
	EventTypeMessageSent,
	EventTypeRolesUpdated,
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type EvaluationSubmittedEvent struct {
	BaseEvent
	Kind         string `json:"kind"`
	EvaluationID int64  `json:"evaluation_id"`
	SubjectID    int64  `json:"subject_id"`
	EvaluatorID  int64  `json:"evaluator_id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
}

func NewEvaluationSubmittedEvent(kind string, evaluationID, subjectID, evaluatorID int64, year, month int) *EvaluationSubmittedEvent {
	return &EvaluationSubmittedEvent{
		BaseEvent: newBase(EventTypeEvaluationSubmitted, map[string]interface{}{
			"kind":          kind,
			"evaluation_id": evaluationID,
			"subject_id":    subjectID,
			"evaluator_id":  evaluatorID,
			"year":          year,
			"month":         month,
		}),
		Kind:         kind,
		EvaluationID: evaluationID,
		SubjectID:    subjectID,
		EvaluatorID:  evaluatorID,
		Year:         year,
		Month:        month,
	}
}

type FeedbackSubmittedEvent struct {
	BaseEvent
	FeedbackID  int64 `json:"feedback_id"`
	WriterID    int64 `json:"writer_id"`
	WorkgroupID int64 `json:"workgroup_id"`
}

func NewFeedbackSubmittedEvent(feedbackID, writerID, workgroupID int64) *FeedbackSubmittedEvent {
	return &FeedbackSubmittedEvent{
		BaseEvent: newBase(EventTypeFeedbackSubmitted, map[string]interface{}{
			"feedback_id":  feedbackID,
			"writer_id":    writerID,
			"workgroup_id": workgroupID,
		}),
		FeedbackID:  feedbackID,
		WriterID:    writerID,
		WorkgroupID: workgroupID,
	}
}

type MessageSentEvent struct {
	BaseEvent
	MessageID  int64 `json:"message_id"`
	SenderID   int64 `json:"sender_id"`
	ReceiverID int64 `json:"receiver_id"`
}

func NewMessageSentEvent(messageID, senderID, receiverID int64) *MessageSentEvent {
	return &MessageSentEvent{
		BaseEvent: newBase(EventTypeMessageSent, map[string]interface{}{
			"message_id":  messageID,
			"sender_id":   senderID,
			"receiver_id": receiverID,
		}),
		MessageID:  messageID,
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
}

type RolesUpdatedEvent struct {
	BaseEvent
	UserID    int64 `json:"user_id"`
	ChangedBy int64 `json:"changed_by"`
}

func NewRolesUpdatedEvent(userID, changedBy int64, isAdmin, isTechnicalDeputy bool) *RolesUpdatedEvent {
	return &RolesUpdatedEvent{
		BaseEvent: newBase(EventTypeRolesUpdated, map[string]interface{}{
			"user_id":             userID,
			"changed_by":          changedBy,
			"is_admin":            isAdmin,
			"is_technical_deputy": isTechnicalDeputy,
		}),
		UserID:    userID,
		ChangedBy: changedBy,
	}
}

// Publisher is what services depend on; *EventBus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
