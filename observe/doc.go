// Package observe provides structured logging, tracing, and metrics for
// calls to downstream dependencies, built on OpenTelemetry. It is the
// observability companion to package resilience: the middleware wraps the
// same func(context.Context) error operations the resilience patterns run.
package observe
