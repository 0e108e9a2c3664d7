package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records dependency-call metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records a dependency call with duration and error status.
	RecordCall(ctx context.Context, meta DepMeta, duration time.Duration, err error)

	// RecordFallback records that a call was served by its fallback path.
	RecordFallback(ctx context.Context, meta DepMeta)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter         metric.Meter
	totalCount    metric.Int64Counter
	errorCount    metric.Int64Counter
	fallbackCount metric.Int64Counter
	durationHist  metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"dep.call.total",
		metric.WithDescription("Total number of dependency calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"dep.call.errors",
		metric.WithDescription("Total number of failed dependency calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fallbackCount, err := meter.Int64Counter(
		"dep.call.fallbacks",
		metric.WithDescription("Total number of calls served by a fallback path"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"dep.call.duration_ms",
		metric.WithDescription("Dependency call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:         meter,
		totalCount:    totalCount,
		errorCount:    errorCount,
		fallbackCount: fallbackCount,
		durationHist:  durationHist,
	}, nil
}

func (m *metricsImpl) attrs(meta DepMeta) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("dep.call_id", meta.CallID()),
		attribute.String("dep.name", meta.Dependency),
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("dep.operation", meta.Operation))
	}
	return metric.WithAttributes(attrs...)
}

// RecordCall records metrics for a dependency call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta DepMeta, duration time.Duration, err error) {
	opt := m.attrs(meta)

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	durationMs := float64(duration.Milliseconds())
	m.durationHist.Record(ctx, durationMs, opt)
}

// RecordFallback records a degraded call.
func (m *metricsImpl) RecordFallback(ctx context.Context, meta DepMeta) {
	m.fallbackCount.Add(ctx, 1, m.attrs(meta))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, meta DepMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordFallback(ctx context.Context, meta DepMeta) {}
