// Package health reports the readiness of protected downstream dependencies.
//
// A Checker is any component that can report its health status. The Status
// type represents the health state: Healthy, Degraded, or Unhealthy. The
// checkers in this package read resilience pattern state, so a dependency
// whose circuit breaker is open shows up as unhealthy without sending it
// any probe traffic.
//
// # Basic Usage
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Name: "search"})
//	check := health.NewBreakerChecker(cb)
//
//	result := check.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("search unavailable: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine multiple health checks into a single composite check:
//
//	agg := health.NewAggregator()
//	agg.Register("search", health.NewBreakerChecker(searchBreaker))
//	agg.Register("validation", health.NewBreakerChecker(validationBreaker))
//	agg.Register("ratelimit", health.NewLimiterChecker(limiter))
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for common probe patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with component checks
//	http.Handle("/readyz", health.ReadinessHandler(aggregator))
//
//	// Detailed health status
//	http.Handle("/health", health.DetailedHandler(aggregator))
package health
