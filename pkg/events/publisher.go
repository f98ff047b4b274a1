package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Publisher appends events to storage for later delivery.
type Publisher struct {
	repo               PublisherRepository
	defaultMaxAttempts int8
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithDefaultMaxAttempts sets the default delivery attempt budget for
// published events. Values outside 1-10 are ignored.
func WithDefaultMaxAttempts(n int8) PublisherOption {
	return func(p *Publisher) {
		if n >= 1 && n <= 10 {
			p.defaultMaxAttempts = n
		}
	}
}

// NewPublisher creates a Publisher backed by the given repository.
func NewPublisher(repo PublisherRepository, opts ...PublisherOption) (*Publisher, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	p := &Publisher{
		repo:               repo,
		defaultMaxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PublishOption configures a single Publish call.
type PublishOption func(*publishOptions)

type publishOptions struct {
	maxAttempts int8
	delay       time.Duration
}

// WithMaxAttempts overrides the attempt budget for this event (1-10).
func WithMaxAttempts(n int8) PublishOption {
	return func(o *publishOptions) {
		if n >= 1 && n <= 10 {
			o.maxAttempts = n
		}
	}
}

// WithDelay delays the first delivery attempt.
func WithDelay(d time.Duration) PublishOption {
	return func(o *publishOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}

// Publish marshals the payload and appends a pending event under the given
// name. Delivery happens asynchronously through a Consumer.
func (p *Publisher) Publish(ctx context.Context, name string, payload any, opts ...PublishOption) error {
	if name == "" {
		return ErrEventNameEmpty
	}
	if payload == nil {
		return ErrPayloadNil
	}

	options := &publishOptions{maxAttempts: p.defaultMaxAttempts}
	for _, opt := range opts {
		opt(options)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload of type %T: %w", payload, err)
	}

	now := time.Now()
	event := &Event{
		ID:          uuid.New(),
		Name:        name,
		Payload:     raw,
		Status:      EventStatusPending,
		Attempts:    0,
		MaxAttempts: options.maxAttempts,
		ScheduledAt: now.Add(options.delay),
		CreatedAt:   now,
	}

	if err := p.repo.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to append event %q: %w", name, err)
	}
	return nil
}
