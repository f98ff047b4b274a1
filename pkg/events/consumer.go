package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Consumer delivers claimed events to registered handlers.
// Delivery is at-least-once: a handler error releases the event back to the
// pending state for redelivery until its attempt budget is exhausted, after
// which the event moves to the dead letter store.
type Consumer struct {
	repo     ConsumerRepository
	handlers map[string]Handler
	id       uuid.UUID
	sem      chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopMu   sync.Mutex

	pollInterval time.Duration
	lockTimeout  time.Duration
	logger       *slog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	stopping atomic.Bool
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*consumerOptions)

type consumerOptions struct {
	pollInterval  time.Duration
	lockTimeout   time.Duration
	maxConcurrent int
	logger        *slog.Logger
}

// WithPollInterval sets how often the consumer checks for deliverable events.
func WithPollInterval(d time.Duration) ConsumerOption {
	return func(o *consumerOptions) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithLockTimeout sets how long a claimed event stays locked before a
// crashed consumer's claim is recovered.
func WithLockTimeout(d time.Duration) ConsumerOption {
	return func(o *consumerOptions) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// WithMaxConcurrent sets the maximum number of events delivered in parallel.
func WithMaxConcurrent(n int) ConsumerOption {
	return func(o *consumerOptions) {
		if n > 0 {
			o.maxConcurrent = n
		}
	}
}

// WithConsumerLogger sets the logger for the consumer.
func WithConsumerLogger(l *slog.Logger) ConsumerOption {
	return func(o *consumerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewConsumer creates an event consumer.
func NewConsumer(repo ConsumerRepository, opts ...ConsumerOption) (*Consumer, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	options := &consumerOptions{
		pollInterval:  5 * time.Second,
		lockTimeout:   time.Minute,
		maxConcurrent: 1,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Consumer{
		repo:         repo,
		handlers:     make(map[string]Handler),
		id:           uuid.New(),
		sem:          make(chan struct{}, options.maxConcurrent),
		pollInterval: options.pollInterval,
		lockTimeout:  options.lockTimeout,
		logger:       options.logger,
	}, nil
}

// RegisterHandler registers a handler for its event name.
func (c *Consumer) RegisterHandler(handler Handler) {
	if handler == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[handler.Name()] = handler
}

// RegisterHandlers registers multiple handlers.
func (c *Consumer) RegisterHandlers(handlers ...Handler) {
	for _, h := range handlers {
		c.RegisterHandler(h)
	}
}

// Start begins delivering events in the background.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return fmt.Errorf("consumer already started")
	}
	if len(c.handlers) == 0 {
		c.mu.Unlock()
		return ErrNoHandlers
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.stopping.Store(false)

	go c.run()

	c.logger.Info("event consumer started",
		slog.String("consumer_id", c.id.String()),
		slog.Int("max_concurrent", cap(c.sem)))

	return nil
}

// Stop gracefully shuts down the consumer, waiting for in-flight deliveries.
func (c *Consumer) Stop() error {
	c.mu.Lock()
	if c.cancel == nil {
		c.mu.Unlock()
		return fmt.Errorf("consumer not started")
	}

	c.stopMu.Lock()
	c.stopping.Store(true)
	c.stopMu.Unlock()

	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	cancel()
	c.wg.Wait()

	c.logger.Info("event consumer stopped", slog.String("consumer_id", c.id.String()))
	return nil
}

// Run returns a function suitable for errgroup: it starts the consumer,
// blocks until the context is cancelled, then stops it.
func (c *Consumer) Run(ctx context.Context) func() error {
	return func() error {
		if err := c.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return c.Stop()
	}
}

func (c *Consumer) run() {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			select {
			case c.sem <- struct{}{}:
				// stopMu guards against adding to the WaitGroup after Stop
				// started waiting on it.
				c.stopMu.Lock()
				if c.stopping.Load() {
					c.stopMu.Unlock()
					<-c.sem
					return
				}
				c.wg.Add(1)
				c.stopMu.Unlock()

				go func() {
					defer c.wg.Done()
					defer func() { <-c.sem }()

					if err := c.claimAndDeliver(); err != nil && !errors.Is(err, ErrHandlerNotFound) {
						c.logger.Error("failed to deliver event",
							slog.String("consumer_id", c.id.String()),
							slog.String("error", err.Error()))
					}
				}()
			default:
				// All delivery slots busy, skip this tick.
			}
		}
	}
}

func (c *Consumer) claimAndDeliver() error {
	event, err := c.repo.Claim(c.ctx, c.id, c.lockTimeout)
	if err != nil {
		if errors.Is(err, ErrNoEventToClaim) {
			return nil
		}
		return fmt.Errorf("failed to claim event: %w", err)
	}
	if event == nil {
		return nil
	}

	return c.deliver(event)
}

func (c *Consumer) deliver(event *Event) (retErr error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("panic in handler: %v", r)
			c.logger.Error("event handler panicked",
				slog.String("event_id", event.ID.String()),
				slog.String("event", event.Name),
				slog.Any("panic", r))
			ctx, cancel := c.bookkeepingContext()
			defer cancel()
			_ = c.handleFailure(ctx, event, retErr, time.Since(start))
		}
	}()

	c.mu.RLock()
	handler, ok := c.handlers[event.Name]
	c.mu.RUnlock()

	if !ok {
		ctx, cancel := c.bookkeepingContext()
		defer cancel()
		return c.handleMissingHandler(ctx, event)
	}

	// The delivery context is detached from the consumer lifecycle so
	// graceful shutdown lets in-flight deliveries finish.
	ctx, cancel := context.WithTimeout(context.Background(), c.lockTimeout)
	defer cancel()

	err := handler.Handle(ctx, event.Payload)
	duration := time.Since(start)

	// Outcome recording is detached from the consumer lifecycle too: Stop
	// may have cancelled the consumer context while this delivery was in
	// flight, and an unrecorded success would be redelivered after restart.
	mctx, mcancel := c.bookkeepingContext()
	defer mcancel()

	if err != nil {
		return c.handleFailure(mctx, event, err, duration)
	}
	return c.handleSuccess(mctx, event, duration)
}

// bookkeepingContext returns a context for recording a delivery outcome.
// It must not derive from c.ctx: outcomes of in-flight deliveries have to
// land even when the consumer is already shutting down.
func (c *Consumer) bookkeepingContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.lockTimeout)
}

// handleMissingHandler dead-letters events that have no registered handler:
// redelivery cannot help until the handler code exists, and the dead letter
// store keeps the event recoverable once it does.
func (c *Consumer) handleMissingHandler(ctx context.Context, event *Event) error {
	c.logger.Error("no handler registered for event",
		slog.String("event_id", event.ID.String()),
		slog.String("event", event.Name))

	msg := "no handler registered for event: " + event.Name
	if err := c.repo.MarkFailed(ctx, event.ID, msg); err != nil {
		return fmt.Errorf("failed to mark event %s as failed: %w", event.ID, err)
	}
	if err := c.repo.MoveToDeadLetter(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to dead-letter event %s: %w", event.ID, err)
	}
	return ErrHandlerNotFound
}

func (c *Consumer) handleFailure(ctx context.Context, event *Event, execErr error, duration time.Duration) error {
	c.logger.Error("event delivery failed",
		slog.String("event_id", event.ID.String()),
		slog.String("event", event.Name),
		slog.Int("attempts", int(event.Attempts)+1),
		slog.Int("max_attempts", int(event.MaxAttempts)),
		slog.Duration("duration", duration),
		slog.String("error", execErr.Error()))

	if err := c.repo.MarkFailed(ctx, event.ID, execErr.Error()); err != nil {
		return fmt.Errorf("failed to mark event %s as failed: %w", event.ID, err)
	}

	// The claimed snapshot predates MarkFailed's increment.
	if event.Attempts+1 >= event.MaxAttempts {
		if err := c.repo.MoveToDeadLetter(ctx, event.ID); err != nil {
			return fmt.Errorf("failed to dead-letter event %s after max attempts: %w", event.ID, err)
		}
		c.logger.Warn("event moved to dead letter store",
			slog.String("event_id", event.ID.String()),
			slog.String("event", event.Name))
	}
	return nil
}

func (c *Consumer) handleSuccess(ctx context.Context, event *Event, duration time.Duration) error {
	if err := c.repo.MarkDelivered(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to mark event %s as delivered: %w", event.ID, err)
	}

	c.logger.Info("event delivered",
		slog.String("event_id", event.ID.String()),
		slog.String("event", event.Name),
		slog.Duration("duration", duration))
	return nil
}
