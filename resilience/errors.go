package resilience

import (
	"errors"
	"fmt"
)

// Sentinel errors for resilience operations. Callers classify failures with
// errors.Is against these, never by inspecting error text.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRetriesExhausted is returned when the retry attempt budget is used up.
	ErrRetriesExhausted = errors.New("resilience: retry attempts exhausted")

	// ErrRateLimitExceeded is returned when the rate limit is exceeded.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("resilience: operation timed out")
)

// OpenError reports a call rejected by a circuit breaker without being
// attempted. It carries the breaker name and the state at rejection time.
type OpenError struct {
	Name  string
	State State
}

func (e *OpenError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("resilience: circuit breaker is %s", e.State)
	}
	return fmt.Sprintf("resilience: circuit breaker %q is %s", e.Name, e.State)
}

// Unwrap makes errors.Is(err, ErrCircuitOpen) match.
func (e *OpenError) Unwrap() error {
	return ErrCircuitOpen
}

// ExhaustedError reports a retry loop that used its whole attempt budget.
// It wraps the last underlying error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("resilience: %d retry attempts exhausted: %v", e.Attempts, e.Err)
}

// Unwrap exposes the last underlying error for errors.Is/As.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRetriesExhausted) match without hiding the
// underlying error from the Unwrap chain.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}

// TimeoutError reports an operation that did not settle before its deadline.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrTimeout) match.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}
