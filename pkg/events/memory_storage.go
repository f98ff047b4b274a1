package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage implements Storage in memory, for tests and local
// development. Expired locks are recovered at claim time, so events from a
// crashed delivery become claimable again without a background sweeper.
type MemoryStorage struct {
	mu     sync.Mutex
	events map[uuid.UUID]*Event
	dead   map[uuid.UUID]*DeadEvent
}

// NewMemoryStorage creates a new in-memory storage implementation.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		events: make(map[uuid.UUID]*Event),
		dead:   make(map[uuid.UUID]*DeadEvent),
	}
}

// Append implements PublisherRepository.
func (ms *MemoryStorage) Append(ctx context.Context, event *Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.events[event.ID]; exists {
		return fmt.Errorf("event with ID %s already exists", event.ID)
	}

	// Clone to prevent external modifications.
	cp := *event
	ms.events[event.ID] = &cp
	return nil
}

// Claim implements ConsumerRepository. Deliverable events are selected
// oldest-scheduled first.
func (ms *MemoryStorage) Claim(ctx context.Context, consumerID uuid.UUID, lockFor time.Duration) (*Event, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	var best *Event
	for _, ev := range ms.events {
		if !claimable(ev, now) {
			continue
		}
		if best == nil || ev.ScheduledAt.Before(best.ScheduledAt) {
			best = ev
		}
	}
	if best == nil {
		return nil, ErrNoEventToClaim
	}

	until := now.Add(lockFor)
	best.Status = EventStatusProcessing
	best.LockedUntil = &until
	best.LockedBy = &consumerID

	cp := *best
	return &cp, nil
}

// claimable reports whether an event is ready for delivery: pending and due,
// or processing with an expired lock.
func claimable(ev *Event, now time.Time) bool {
	switch ev.Status {
	case EventStatusPending:
		return !ev.ScheduledAt.After(now)
	case EventStatusProcessing:
		return ev.LockedUntil != nil && ev.LockedUntil.Before(now)
	default:
		return false
	}
}

// MarkDelivered implements ConsumerRepository.
func (ms *MemoryStorage) MarkDelivered(ctx context.Context, eventID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ev, exists := ms.events[eventID]
	if !exists {
		return ErrEventNotFound
	}

	now := time.Now()
	ev.Status = EventStatusDelivered
	ev.DeliveredAt = &now
	ev.LockedUntil = nil
	ev.LockedBy = nil
	return nil
}

// MarkFailed implements ConsumerRepository.
func (ms *MemoryStorage) MarkFailed(ctx context.Context, eventID uuid.UUID, errorMsg string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ev, exists := ms.events[eventID]
	if !exists {
		return ErrEventNotFound
	}

	ev.Attempts++
	ev.LastError = &errorMsg
	ev.LockedUntil = nil
	ev.LockedBy = nil

	if ev.Attempts >= ev.MaxAttempts {
		ev.Status = EventStatusFailed
	} else {
		// Linear backoff keeps retries prompt without hammering a
		// persistently failing downstream.
		ev.Status = EventStatusPending
		ev.ScheduledAt = time.Now().Add(time.Duration(ev.Attempts) * retryBackoffBase)
	}
	return nil
}

// MoveToDeadLetter implements ConsumerRepository.
func (ms *MemoryStorage) MoveToDeadLetter(ctx context.Context, eventID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ev, exists := ms.events[eventID]
	if !exists {
		return ErrEventNotFound
	}

	dead := &DeadEvent{
		ID:       uuid.New(),
		EventID:  ev.ID,
		Name:     ev.Name,
		Payload:  ev.Payload,
		Attempts: ev.Attempts,
		FailedAt: time.Now(),
	}
	if ev.LastError != nil {
		dead.Error = *ev.LastError
	}

	ms.dead[dead.ID] = dead
	delete(ms.events, eventID)
	return nil
}

// Events returns a snapshot of all stored events, for tests.
func (ms *MemoryStorage) Events() []Event {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]Event, 0, len(ms.events))
	for _, ev := range ms.events {
		out = append(out, *ev)
	}
	return out
}

// DeadEvents returns a snapshot of the dead letter store, for tests.
func (ms *MemoryStorage) DeadEvents() []DeadEvent {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]DeadEvent, 0, len(ms.dead))
	for _, d := range ms.dead {
		out = append(out, *d)
	}
	return out
}
