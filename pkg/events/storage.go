package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PublisherRepository defines the storage interface for appending events.
type PublisherRepository interface {
	Append(ctx context.Context, event *Event) error
}

// ConsumerRepository defines the storage interface for delivering events.
type ConsumerRepository interface {
	// Claim atomically claims the next deliverable event: pending events
	// whose scheduled time has passed, plus processing events whose lock
	// expired (crashed consumer recovery). Returns ErrNoEventToClaim when
	// nothing is ready.
	Claim(ctx context.Context, consumerID uuid.UUID, lockFor time.Duration) (*Event, error)

	// MarkDelivered marks the event as delivered and releases its lock.
	MarkDelivered(ctx context.Context, eventID uuid.UUID) error

	// MarkFailed records the delivery error, increments the attempt count,
	// releases the lock, and reschedules the event with linear backoff
	// while attempts remain. Once attempts are exhausted the event status
	// becomes failed.
	MarkFailed(ctx context.Context, eventID uuid.UUID, errorMsg string) error

	// MoveToDeadLetter moves a failed event to the dead letter store.
	MoveToDeadLetter(ctx context.Context, eventID uuid.UUID) error
}

// Storage combines both repository roles; concrete implementations
// (MemoryStorage, MongoStorage) satisfy it.
type Storage interface {
	PublisherRepository
	ConsumerRepository
}
