package resilience

import (
	"context"
	"math"
	"sync"
	"time"
)

// RateLimiterConfig configures the token bucket rate limiter.
type RateLimiterConfig struct {
	// MaxTokens is the bucket capacity. The bucket starts full.
	// Default: 10
	MaxTokens float64

	// RefillRate is how many tokens accrue per second. Tokens accrue
	// continuously with elapsed wall-clock time, not in discrete ticks.
	// Default: 100
	RefillRate float64
}

// RateLimiter bounds the rate of some action with a continuous-refill token
// bucket. It is used for admission control, independent of call outcomes.
type RateLimiter struct {
	config RateLimiterConfig

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	// Apply defaults
	if config.MaxTokens <= 0 {
		config.MaxTokens = 10
	}
	if config.RefillRate <= 0 {
		config.RefillRate = 100
	}

	return &RateLimiter{
		config:     config,
		tokens:     config.MaxTokens,
		lastRefill: time.Now(),
	}
}

// CanProceed reports whether at least one whole token is available,
// without consuming it.
func (rl *RateLimiter) CanProceed() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	return rl.tokens >= 1
}

// Consume deducts exactly one token and returns true, or returns false
// leaving the balance unchanged when less than one token is available.
func (rl *RateLimiter) Consume() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}

	return false
}

// WaitForToken blocks until a token is consumed or the context is
// cancelled. Between attempts it sleeps one token's accrual interval, so
// callers never poll faster than tokens accrue.
func (rl *RateLimiter) WaitForToken(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / rl.config.RefillRate)

	for {
		if rl.Consume() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// AvailableTokens returns the current balance in whole tokens.
func (rl *RateLimiter) AvailableTokens() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	return int(math.Floor(rl.tokens))
}

// Execute runs the operation if a token is available, otherwise returns
// ErrRateLimitExceeded without invoking it.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if !rl.Consume() {
		return ErrRateLimitExceeded
	}

	return op(ctx)
}

// refillLocked credits tokens for the time elapsed since the last refill
// and advances lastRefill. Accounting happens on every read, including
// non-consuming ones.
func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	rl.lastRefill = now

	rl.tokens += elapsed.Seconds() * rl.config.RefillRate

	if rl.tokens > rl.config.MaxTokens {
		rl.tokens = rl.config.MaxTokens
	}
}

// Reset refills the bucket to capacity.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.tokens = rl.config.MaxTokens
	rl.lastRefill = time.Now()
}
