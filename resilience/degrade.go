package resilience

import (
	"context"
	"errors"
	"fmt"
)

// Source identifies which path produced a degradation result.
type Source int

const (
	// SourcePrimary means the primary operation produced the value.
	SourcePrimary Source = iota
	// SourceFallback means the fallback produced the value.
	SourceFallback
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Operation is a value-producing call guarded by a Degrader.
type Operation[T any] func(ctx context.Context) (T, error)

// Result carries the outcome of a degraded execution.
type Result[T any] struct {
	// Value is the value produced by whichever path succeeded.
	Value T

	// Degraded is true when the fallback path was used.
	Degraded bool

	// Source names the path that produced the value.
	Source Source

	// Err is the primary path's failure. Set only when Degraded is true.
	Err error
}

// DegraderConfig configures a Degrader.
type DegraderConfig struct {
	// Name identifies the protected dependency in errors and observer calls.
	Name string

	// Breaker guards the primary path. Optional. The breaker wraps the
	// retry loop, so a full retry sequence counts as one call against it.
	Breaker *CircuitBreaker

	// Retry absorbs transient primary failures. Optional.
	Retry *Retry

	// OnFallback is called with the primary's failure just before the
	// fallback runs. Useful for logging and metrics; may be nil.
	OnFallback func(name string, err error)
}

// Degrader runs a primary operation behind the configured guards and
// substitutes a fallback source of the same data on irrecoverable failure.
// It only returns an error when both paths fail.
type Degrader[T any] struct {
	config DegraderConfig
}

// NewDegrader creates a new degrader.
func NewDegrader[T any](config DegraderConfig) *Degrader[T] {
	return &Degrader[T]{config: config}
}

// Execute invokes the primary through retry and breaker (when configured)
// and falls back on failure.
//
// On primary success the result is {Value, Degraded: false, SourcePrimary}.
// On primary failure the fallback runs; on fallback success the result is
// {Value, Degraded: true, SourceFallback, Err: primary error}. When both
// fail, the returned error surfaces the fallback failure with the primary
// failure preserved on the chain, so errors.Is sees both.
func (d *Degrader[T]) Execute(ctx context.Context, primary, fallback Operation[T]) (Result[T], error) {
	var value T
	run := func(ctx context.Context) error {
		v, err := primary(ctx)
		if err != nil {
			return err
		}
		value = v
		return nil
	}

	// Build the chain inside out: retry around the operation, breaker
	// around the whole retry sequence.
	execute := run
	if d.config.Retry != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return d.config.Retry.Execute(ctx, inner)
		}
	}
	if d.config.Breaker != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return d.config.Breaker.Execute(ctx, inner)
		}
	}

	primaryErr := execute(ctx)
	if primaryErr == nil {
		return Result[T]{Value: value, Source: SourcePrimary}, nil
	}

	if d.config.OnFallback != nil {
		d.config.OnFallback(d.config.Name, primaryErr)
	}

	fallbackValue, fallbackErr := fallback(ctx)
	if fallbackErr != nil {
		name := d.config.Name
		if name == "" {
			name = "primary"
		}
		return Result[T]{}, fmt.Errorf("resilience: fallback for %s failed: %w",
			name, errors.Join(fallbackErr, primaryErr))
	}

	return Result[T]{
		Value:    fallbackValue,
		Degraded: true,
		Source:   SourceFallback,
		Err:      primaryErr,
	}, nil
}

// WithDegradation is a convenience function running a single degraded call.
func WithDegradation[T any](ctx context.Context, config DegraderConfig, primary, fallback Operation[T]) (Result[T], error) {
	return NewDegrader[T](config).Execute(ctx, primary, fallback)
}
