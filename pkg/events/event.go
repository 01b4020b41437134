package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "GUARDRAIL_ESCALATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common concrete implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by this service.
const (
	TypeGuardrailEscalated = "GUARDRAIL_ESCALATED"
	TypeFaqCreated         = "FAQ_CREATED"
	TypeFaqUpdated         = "FAQ_UPDATED"
	TypeFaqDeleted         = "FAQ_DELETED"
	TypeConfigUpdated      = "CONFIG_UPDATED"
)

// NewGuardrailEscalated marks a session crossing the escalation threshold.
func NewGuardrailEscalated(sessionId string, count int) Event {
	return BaseEvent{
		Type: TypeGuardrailEscalated,
		Data: map[string]interface{}{
			"sessionId": sessionId,
			"count":     count,
		},
		OccurredAt: time.Now(),
	}
}

// NewAdminAudit records one admin mutation for the audit trail.
func NewAdminAudit(eventType string, details map[string]interface{}) Event {
	if details == nil {
		details = map[string]interface{}{}
	}
	return BaseEvent{
		Type:       eventType,
		Data:       details,
		OccurredAt: time.Now(),
	}
}
