package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestHealthy(t *testing.T) {
	r := Healthy("all good")

	if r.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
	if r.Message != "all good" {
		t.Errorf("Message = %q, want 'all good'", r.Message)
	}
	if r.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if r.Error != nil {
		t.Errorf("Error = %v, want nil", r.Error)
	}
}

func TestDegraded(t *testing.T) {
	r := Degraded("running slow")

	if r.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", r.Status)
	}
	if r.Message != "running slow" {
		t.Errorf("Message = %q, want 'running slow'", r.Message)
	}
}

func TestUnhealthy(t *testing.T) {
	cause := errors.New("connection refused")
	r := Unhealthy("down", cause)

	if r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", r.Status)
	}
	if !errors.Is(r.Error, cause) {
		t.Errorf("Error = %v, want %v", r.Error, cause)
	}
}

func TestResult_WithDetails(t *testing.T) {
	r := Healthy("ok").WithDetails(map[string]any{"tokens": 5})

	if r.Details["tokens"] != 5 {
		t.Errorf("Details[tokens] = %v, want 5", r.Details["tokens"])
	}
	// Status unchanged
	if r.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
}

func TestResult_WithDuration(t *testing.T) {
	r := Healthy("ok").WithDuration(25 * time.Millisecond)

	if r.Duration != 25*time.Millisecond {
		t.Errorf("Duration = %v, want 25ms", r.Duration)
	}
}

func TestCheckerFunc(t *testing.T) {
	called := false
	checker := NewCheckerFunc("custom", func(ctx context.Context) Result {
		called = true
		return Healthy("from func")
	})

	if checker.Name() != "custom" {
		t.Errorf("Name() = %q, want 'custom'", checker.Name())
	}

	r := checker.Check(context.Background())
	if !called {
		t.Fatal("check function was not called")
	}
	if r.Message != "from func" {
		t.Errorf("Message = %q, want 'from func'", r.Message)
	}
}
