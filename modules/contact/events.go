package contact

import (
	"context"
	"errors"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/events"
)

// EventRecordCreated is emitted once for every persisted contact record.
const EventRecordCreated = "contact.record.created"

// RecordCreated is the payload of EventRecordCreated. It carries the full
// record so the notification path never reads the store.
type RecordCreated struct {
	ID     string `json:"id"`
	Record Record `json:"record"`
}

// Events is the capability the intake handler needs from the event layer.
type Events interface {
	RecordCreated(ctx context.Context, id string, rec Record) error
}

type eventPublisher struct {
	pub *events.Publisher
}

// NewEventPublisher adapts an events.Publisher to the Events interface.
func NewEventPublisher(pub *events.Publisher) Events {
	return &eventPublisher{pub: pub}
}

func (p *eventPublisher) RecordCreated(ctx context.Context, id string, rec Record) error {
	if err := p.pub.Publish(ctx, EventRecordCreated, RecordCreated{ID: id, Record: rec}); err != nil {
		return errors.Join(ErrFailedToPublishEvent, err)
	}
	return nil
}
