package resilience

import (
	"context"
	"errors"
	"time"
)

// TimeoutConfig configures the timeout guard.
type TimeoutConfig struct {
	// Timeout is the maximum wall-clock duration for the operation.
	// Default: 30 seconds
	Timeout time.Duration

	// Message is the text of the timeout error.
	// Default: "operation timed out"
	Message string
}

// Timeout bounds the wall-clock duration of a single operation.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout guard.
func NewTimeout(config TimeoutConfig) *Timeout {
	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Message == "" {
		config.Message = "operation timed out"
	}

	return &Timeout{config: config}
}

// Execute races the operation against the deadline. When the deadline fires
// first it returns a *TimeoutError and abandons the wait; the operation's
// goroutine is not killed, it merely observes the cancelled context. The
// timer is released on every exit path.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	// Buffered so the operation goroutine never leaks blocked on send
	done := make(chan error, 1)

	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{Message: t.config.Message}
		}
		return ctx.Err()
	}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// ExecuteWithTimeout is a convenience function to run an operation with the
// given deadline and the default timeout message.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	t := NewTimeout(TimeoutConfig{Timeout: timeout})
	return t.Execute(ctx, op)
}
