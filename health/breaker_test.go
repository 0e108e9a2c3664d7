package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pharmetrics/guardrail/resilience"
)

func TestBreakerChecker_ClosedIsHealthy(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name: "semantic-search",
	})
	checker := NewBreakerChecker(cb)

	if checker.Name() != "semantic-search" {
		t.Errorf("Name() = %q, want 'semantic-search'", checker.Name())
	}

	r := checker.Check(context.Background())
	if r.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
	if r.Details["state"] != "closed" {
		t.Errorf("Details[state] = %v, want 'closed'", r.Details["state"])
	}
}

func TestBreakerChecker_UnnamedBreaker(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})
	checker := NewBreakerChecker(cb)

	if checker.Name() != "breaker" {
		t.Errorf("Name() = %q, want 'breaker'", checker.Name())
	}
}

func TestBreakerChecker_OpenIsUnhealthy(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "search",
		FailureThreshold: 2,
		ResetTimeout:     time.Minute,
	})

	down := errors.New("service down")
	for i := 0; i < 2; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error {
			return down
		})
	}

	r := NewBreakerChecker(cb).Check(context.Background())
	if r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", r.Status)
	}
	if !errors.Is(r.Error, ErrCheckFailed) {
		t.Errorf("Error = %v, want ErrCheckFailed", r.Error)
	}
	if r.Details["state"] != "open" {
		t.Errorf("Details[state] = %v, want 'open'", r.Details["state"])
	}
	if _, ok := r.Details["last_failure"]; !ok {
		t.Error("expected last_failure detail after failures")
	}
}

func TestBreakerChecker_HalfOpenIsDegraded(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "search",
		FailureThreshold: 1,
		ResetTimeout:     20 * time.Millisecond,
	})

	_ = cb.Execute(context.Background(), func(ctx context.Context) error {
		return errors.New("down")
	})

	time.Sleep(30 * time.Millisecond)

	r := NewBreakerChecker(cb).Check(context.Background())
	if r.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", r.Status)
	}
	if r.Details["state"] != "half-open" {
		t.Errorf("Details[state] = %v, want 'half-open'", r.Details["state"])
	}
}

func TestBreakerChecker_CancelledContext(t *testing.T) {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewBreakerChecker(cb).Check(ctx)
	if r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", r.Status)
	}
}

func TestLimiterChecker_TokensAvailable(t *testing.T) {
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		MaxTokens:  5,
		RefillRate: 1,
	})
	checker := NewLimiterChecker("search-limiter", rl)

	if checker.Name() != "search-limiter" {
		t.Errorf("Name() = %q, want 'search-limiter'", checker.Name())
	}

	r := checker.Check(context.Background())
	if r.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
	if r.Details["available_tokens"] != 5 {
		t.Errorf("Details[available_tokens] = %v, want 5", r.Details["available_tokens"])
	}
}

func TestLimiterChecker_EmptyBucketIsDegraded(t *testing.T) {
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{
		MaxTokens:  2,
		RefillRate: 0.001, // effectively no refill during the test
	})
	rl.Consume()
	rl.Consume()

	r := NewLimiterChecker("", rl).Check(context.Background())
	if r.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", r.Status)
	}
}

func TestLimiterChecker_DefaultName(t *testing.T) {
	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{})
	if got := NewLimiterChecker("", rl).Name(); got != "ratelimit" {
		t.Errorf("Name() = %q, want 'ratelimit'", got)
	}
}

func TestBulkheadChecker_SlotsAvailable(t *testing.T) {
	b := resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 2})

	r := NewBulkheadChecker("workers", b).Check(context.Background())
	if r.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
}

func TestBulkheadChecker_SaturatedIsDegraded(t *testing.T) {
	b := resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 1})

	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer b.Release()

	r := NewBulkheadChecker("", b).Check(context.Background())
	if r.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", r.Status)
	}
	if r.Details["active"] != 1 {
		t.Errorf("Details[active] = %v, want 1", r.Details["active"])
	}
}
