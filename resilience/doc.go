// Package resilience protects calls to unreliable downstream dependencies
// from cascading failure, transient errors, and overload.
//
// The package was extracted from an analytics-dashboard backend whose
// service layer talks to network-bound dependencies (a semantic-search
// service, a content-validation service) that fail, stall, or throttle.
// Every pattern wraps an arbitrary caller-supplied operation and makes no
// assumption about its protocol.
//
// # Patterns
//
//   - Circuit Breaker: fails fast against a dependency that is persistently
//     failing, then probes cautiously for recovery.
//
//   - Retry: repeats a failing operation with bounded, jittered exponential
//     backoff.
//
//   - Rate Limiter: token-bucket admission control for outbound call volume.
//
//   - Bulkhead: caps concurrent in-flight calls per dependency.
//
//   - Timeout: bounds the wall-clock duration of a single operation.
//
//   - Degrader: composes retry and circuit breaking around a primary
//     operation and substitutes a fallback value when the primary is
//     irrecoverable, returning a tagged Result instead of an error.
//
// # Usage
//
// Patterns can be used independently, composed through an Executor, or,
// for primary/fallback pairs, through a Degrader:
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:             "semantic-search",
//	    FailureThreshold: 5,
//	    ResetTimeout:     30 * time.Second,
//	})
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts: 3,
//	    BaseDelay:   100 * time.Millisecond,
//	    MaxDelay:    5 * time.Second,
//	    Jitter:      true,
//	})
//
//	result, err := resilience.WithDegradation(ctx,
//	    resilience.DegraderConfig{Name: "semantic-search", Breaker: cb, Retry: retry},
//	    searchByEmbedding, // primary
//	    searchByKeyword,   // fallback
//	)
//	if err == nil && result.Degraded {
//	    // served from the fallback path; result.Err holds the primary failure
//	}
//
// Failure kinds are classified structurally: errors.Is against
// ErrCircuitOpen, ErrRetriesExhausted, ErrRateLimitExceeded, ErrBulkheadFull
// and ErrTimeout, or errors.As against the typed *OpenError,
// *ExhaustedError and *TimeoutError.
//
// All state (breaker counters, token balances, bulkhead slots) is guarded
// by per-instance mutexes; a single instance is safe for concurrent use by
// any number of goroutines.
package resilience
