package events

import "errors"

var (
	// ErrRepositoryNil is returned when a nil repository is provided
	ErrRepositoryNil = errors.New("repository cannot be nil")

	// ErrPayloadNil is returned when attempting to publish a nil payload
	ErrPayloadNil = errors.New("payload cannot be nil")

	// ErrEventNameEmpty is returned when publishing without an event name
	ErrEventNameEmpty = errors.New("event name cannot be empty")

	// ErrNoEventToClaim is returned by storage when no event is ready for delivery
	ErrNoEventToClaim = errors.New("no event available to claim")

	// ErrEventNotFound is returned when the referenced event does not exist
	ErrEventNotFound = errors.New("event not found")

	// ErrHandlerNotFound is returned when no handler is registered for an event name
	ErrHandlerNotFound = errors.New("no handler registered for event")

	// ErrNoHandlers is returned when a consumer is started without handlers
	ErrNoHandlers = errors.New("no event handlers registered")
)
