package ratelimit

import "errors"

var (
	// ErrInvalidLimit is returned when a limiter is created with a non-positive limit
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrInvalidWindow is returned when a limiter is created with a non-positive window
	ErrInvalidWindow = errors.New("window must be positive")

	// ErrStoreNil is returned when a nil store is provided
	ErrStoreNil = errors.New("store cannot be nil")
)
