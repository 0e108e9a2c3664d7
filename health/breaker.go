package health

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmetrics/guardrail/resilience"
)

// BreakerChecker reports the health of a dependency from its circuit breaker
// state. No probe traffic is sent; an open circuit already means the
// dependency is failing.
type BreakerChecker struct {
	breaker *resilience.CircuitBreaker
}

// NewBreakerChecker creates a checker backed by the given circuit breaker.
func NewBreakerChecker(cb *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{breaker: cb}
}

// Name returns the breaker's configured name, or "breaker" when unnamed.
func (c *BreakerChecker) Name() string {
	if name := c.breaker.Name(); name != "" {
		return name
	}
	return "breaker"
}

// Check maps breaker state to health status: closed is healthy, half-open is
// degraded (the dependency is being probed), open is unhealthy.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	stats := c.breaker.Stats()
	details := map[string]any{
		"state":     stats.State.String(),
		"failures":  stats.Failures,
		"successes": stats.Successes,
	}
	if !stats.LastFailure.IsZero() {
		details["last_failure"] = stats.LastFailure.UTC().Format(time.RFC3339)
	}

	switch stats.State {
	case resilience.StateOpen:
		return Unhealthy(
			fmt.Sprintf("circuit open after %d failures", stats.Failures),
			ErrCheckFailed,
		).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit half-open, probing recovery").WithDetails(details)
	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}

// LimiterChecker reports token starvation on a rate limiter. An empty bucket
// means callers are being throttled, which surfaces as degraded.
type LimiterChecker struct {
	name    string
	limiter *resilience.RateLimiter
}

// NewLimiterChecker creates a checker backed by the given rate limiter.
func NewLimiterChecker(name string, rl *resilience.RateLimiter) *LimiterChecker {
	if name == "" {
		name = "ratelimit"
	}
	return &LimiterChecker{name: name, limiter: rl}
}

// Name returns the name of this checker.
func (c *LimiterChecker) Name() string {
	return c.name
}

// Check reports degraded when no whole token is available.
func (c *LimiterChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	available := c.limiter.AvailableTokens()
	details := map[string]any{
		"available_tokens": available,
	}

	if available == 0 {
		return Degraded("token bucket empty, requests are throttled").WithDetails(details)
	}
	return Healthy(fmt.Sprintf("%d tokens available", available)).WithDetails(details)
}

// BulkheadChecker reports concurrency saturation on a bulkhead.
type BulkheadChecker struct {
	name     string
	bulkhead *resilience.Bulkhead
}

// NewBulkheadChecker creates a checker backed by the given bulkhead.
func NewBulkheadChecker(name string, b *resilience.Bulkhead) *BulkheadChecker {
	if name == "" {
		name = "bulkhead"
	}
	return &BulkheadChecker{name: name, bulkhead: b}
}

// Name returns the name of this checker.
func (c *BulkheadChecker) Name() string {
	return c.name
}

// Check reports degraded when all concurrency slots are in use.
func (c *BulkheadChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	stats := c.bulkhead.Stats()
	details := map[string]any{
		"active":         stats.Active,
		"available":      stats.Available,
		"max_concurrent": stats.MaxConcurrent,
		"rejected":       stats.Rejected,
	}

	if stats.Available == 0 {
		return Degraded(
			fmt.Sprintf("all %d slots in use", stats.MaxConcurrent),
		).WithDetails(details)
	}
	return Healthy(
		fmt.Sprintf("%d of %d slots available", stats.Available, stats.MaxConcurrent),
	).WithDetails(details)
}
