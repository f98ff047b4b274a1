package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the delivery status of an event.
type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusProcessing EventStatus = "processing"
	EventStatusDelivered  EventStatus = "delivered"
	EventStatusFailed     EventStatus = "failed"
)

// DefaultMaxAttempts bounds redelivery so a permanently failing handler
// cannot spin forever. Exhausted events land in the dead letter store.
const DefaultMaxAttempts int8 = 5

// retryBackoffBase is the linear backoff step between delivery attempts.
const retryBackoffBase = 30 * time.Second

// Event is a persisted domain event awaiting at-least-once delivery.
// An event is appended once, claimed by a consumer under a lock, and either
// marked delivered or rescheduled for redelivery until MaxAttempts is
// exhausted.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Status      EventStatus     `json:"status"`
	Attempts    int8            `json:"attempts"`
	MaxAttempts int8            `json:"max_attempts"`
	LastError   *string         `json:"last_error,omitempty"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	LockedUntil *time.Time      `json:"locked_until,omitempty"`
	LockedBy    *uuid.UUID      `json:"locked_by,omitempty"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DeadEvent is an event that exhausted all delivery attempts, kept for
// manual inspection and recovery.
type DeadEvent struct {
	ID       uuid.UUID       `json:"id"`
	EventID  uuid.UUID       `json:"event_id"`
	Name     string          `json:"name"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Error    string          `json:"error"`
	Attempts int8            `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}
