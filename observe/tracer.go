package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// DepMeta identifies a downstream dependency call for telemetry purposes.
type DepMeta struct {
	Dependency string // Dependency name, e.g. "semantic-search" (required)
	Operation  string // Operation on the dependency, e.g. "query" (optional)
	Tier       string // Service tier, e.g. "critical" or "best-effort" (optional)
}

// SpanName returns the deterministic span name for this call.
// Format: dep.call.<dependency>.<operation> or dep.call.<dependency>
func (m DepMeta) SpanName() string {
	if m.Operation != "" {
		return "dep.call." + m.Dependency + "." + m.Operation
	}
	return "dep.call." + m.Dependency
}

// CallID returns the fully qualified call identifier.
func (m DepMeta) CallID() string {
	if m.Operation != "" {
		return m.Dependency + "." + m.Operation
	}
	return m.Dependency
}

// Tracer wraps OpenTelemetry tracing with dependency-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a dependency call.
	StartSpan(ctx context.Context, meta DepMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with call metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta DepMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("dep.call_id", meta.CallID()),
		attribute.String("dep.name", meta.Dependency),
		attribute.Bool("dep.error", false), // Updated in EndSpan on error
	}

	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("dep.operation", meta.Operation))
	}
	if meta.Tier != "" {
		attrs = append(attrs, attribute.String("dep.tier", meta.Tier))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("dep.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta DepMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
