package events

import (
	"context"
	"encoding/json"
)

// Handler processes a single named event.
type Handler interface {
	Name() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// HandlerFunc is the typed processing function wrapped by NewHandler.
type HandlerFunc[T any] func(ctx context.Context, payload T) error

// NewHandler wraps a typed function as a Handler for the given event name.
// The raw payload is unmarshaled into T before the function is invoked;
// unmarshal failures count as delivery failures and trigger redelivery.
func NewHandler[T any](name string, fn HandlerFunc[T]) Handler {
	return &typedHandler[T]{name: name, fn: fn}
}

type typedHandler[T any] struct {
	name string
	fn   HandlerFunc[T]
}

func (h *typedHandler[T]) Name() string {
	return h.name
}

func (h *typedHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return err
	}
	return h.fn(ctx, t)
}
