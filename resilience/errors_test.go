package resilience

import (
	"errors"
	"strings"
	"testing"
)

func TestOpenError(t *testing.T) {
	err := &OpenError{Name: "search", State: StateOpen}

	if !errors.Is(err, ErrCircuitOpen) {
		t.Error("OpenError must match ErrCircuitOpen")
	}
	if !strings.Contains(err.Error(), "search") {
		t.Errorf("Error() = %q, want it to name the breaker", err.Error())
	}
	if !strings.Contains(err.Error(), "open") {
		t.Errorf("Error() = %q, want it to carry the state", err.Error())
	}

	anon := &OpenError{State: StateOpen}
	if strings.Contains(anon.Error(), `""`) {
		t.Errorf("Error() = %q, unnamed breaker should not render an empty name", anon.Error())
	}
}

func TestExhaustedError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &ExhaustedError{Attempts: 4, Err: underlying}

	if !errors.Is(err, ErrRetriesExhausted) {
		t.Error("ExhaustedError must match ErrRetriesExhausted")
	}
	if !errors.Is(err, underlying) {
		t.Error("ExhaustedError must keep the underlying error on the chain")
	}
	if errors.Unwrap(err) != underlying {
		t.Error("Unwrap() must return the underlying error")
	}
	if !strings.Contains(err.Error(), "4") {
		t.Errorf("Error() = %q, want it to carry the attempt count", err.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{Message: "validation timed out"}

	if !errors.Is(err, ErrTimeout) {
		t.Error("TimeoutError must match ErrTimeout")
	}
	if err.Error() != "validation timed out" {
		t.Errorf("Error() = %q, want the configured message", err.Error())
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrCircuitOpen,
		ErrRetriesExhausted,
		ErrRateLimitExceeded,
		ErrBulkheadFull,
		ErrTimeout,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v must not match %v", a, b)
			}
		}
	}
}
