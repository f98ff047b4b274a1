package ratelimit

import (
	"context"
	"time"
)

// FixedWindow is a fixed-window rate limiter: up to limit requests per key
// per window, counters reset at window boundaries.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
}

// NewFixedWindow creates a fixed-window limiter over the given store.
func NewFixedWindow(store Store, limit int, window time.Duration) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &FixedWindow{store: store, limit: limit, window: window}, nil
}

// Allow implements Limiter.
func (l *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	current, ttl, err := l.store.IncrementAndGet(ctx, key, l.window)
	if err != nil {
		return nil, err
	}

	remaining := l.limit - int(current)
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   current <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
