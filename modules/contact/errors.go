package contact

import "errors"

var (
	// ErrFailedToStoreRecord is returned when the persistence layer rejects a record.
	ErrFailedToStoreRecord = errors.New("failed to store contact record")
	// ErrFailedToPublishEvent is returned when the creation event cannot be enqueued.
	ErrFailedToPublishEvent = errors.New("failed to publish record created event")
	// ErrFailedToSendAlert is returned when the notification email cannot be delivered.
	ErrFailedToSendAlert = errors.New("failed to send contact alert email")
)
