package events

import "time"

// Config holds consumer tuning loaded from the environment.
type Config struct {
	PollInterval  time.Duration `env:"EVENTS_POLL_INTERVAL" envDefault:"5s"` // PollInterval is how often the consumer checks for deliverable events.
	LockTimeout   time.Duration `env:"EVENTS_LOCK_TIMEOUT" envDefault:"1m"`  // LockTimeout is how long a claimed event stays locked.
	MaxConcurrent int           `env:"EVENTS_MAX_CONCURRENT" envDefault:"4"` // MaxConcurrent is the number of events delivered in parallel.
	MaxAttempts   int8          `env:"EVENTS_MAX_ATTEMPTS" envDefault:"5"`   // MaxAttempts is the delivery attempt budget per event.
}

// ConsumerOptions converts the config into consumer options.
func (c Config) ConsumerOptions(opts ...ConsumerOption) []ConsumerOption {
	out := make([]ConsumerOption, 0, 3+len(opts))
	if c.PollInterval > 0 {
		out = append(out, WithPollInterval(c.PollInterval))
	}
	if c.LockTimeout > 0 {
		out = append(out, WithLockTimeout(c.LockTimeout))
	}
	if c.MaxConcurrent > 0 {
		out = append(out, WithMaxConcurrent(c.MaxConcurrent))
	}
	return append(out, opts...)
}
