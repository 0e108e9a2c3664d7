package observe

import (
	"context"
	"time"

	"github.com/pharmetrics/guardrail/resilience"
)

// CallFunc is the signature for dependency call functions. It matches the
// operation signature the resilience patterns execute, so a wrapped call can
// be handed directly to a CircuitBreaker, Retry, or Executor.
type CallFunc func(ctx context.Context) error

// Middleware wraps dependency calls with observability (tracing, metrics,
// logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CallFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated
//     unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a dependency call with tracing, metrics, and logging.
func (m *Middleware) Wrap(meta DepMeta, fn CallFunc) CallFunc {
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		err := fn(ctx)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordCall(ctx, meta, duration, err)

		depLogger := m.logger.WithDep(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			depLogger.Error(ctx, "dependency call failed", fields...)
		} else {
			depLogger.Info(ctx, "dependency call completed", fields...)
		}

		return err
	}
}

// FallbackHook returns a callback suitable for DegraderConfig.OnFallback.
// It counts the degraded call and logs the primary failure.
func (m *Middleware) FallbackHook(meta DepMeta) func(name string, err error) {
	return func(name string, err error) {
		ctx := context.Background()
		m.metrics.RecordFallback(ctx, meta)
		m.logger.WithDep(meta).Warn(ctx, "primary failed, serving fallback",
			Field{Key: "degrader", Value: name},
			Field{Key: "error", Value: err.Error()},
		)
	}
}

// StateChangeHook returns a callback suitable for
// CircuitBreakerConfig.OnStateChange. Transitions into the open state log at
// error level, recoveries at info.
func (m *Middleware) StateChangeHook(meta DepMeta) func(name string, from, to resilience.State) {
	return func(name string, from, to resilience.State) {
		ctx := context.Background()
		depLogger := m.logger.WithDep(meta)
		fields := []Field{
			{Key: "breaker", Value: name},
			{Key: "from", Value: from.String()},
			{Key: "to", Value: to.String()},
		}

		if to == resilience.StateOpen {
			depLogger.Error(ctx, "circuit opened", fields...)
		} else {
			depLogger.Info(ctx, "circuit state changed", fields...)
		}
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
