package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pharmetrics/guardrail/resilience"
)

// LastGoodConfig configures a LastGood store.
type LastGoodConfig struct {
	// MaxStale bounds how old a stored value may be before Fallback refuses
	// to serve it. Zero means values never expire.
	MaxStale time.Duration
}

// LastGood stores the most recent successful value per key. It is the data
// source for fallback operations: when the primary path is down, the last
// good value is better than nothing for read-mostly dashboard data.
type LastGood[T any] struct {
	config LastGoodConfig

	mu      sync.RWMutex
	entries map[string]lastGoodEntry[T]
	group   singleflight.Group
}

type lastGoodEntry[T any] struct {
	value    T
	storedAt time.Time
}

// NewLastGood creates an empty store.
func NewLastGood[T any](config LastGoodConfig) *LastGood[T] {
	return &LastGood[T]{
		config:  config,
		entries: make(map[string]lastGoodEntry[T]),
	}
}

// Put records a successful value for the key.
func (s *LastGood[T]) Put(key string, value T) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = lastGoodEntry[T]{
		value:    value,
		storedAt: time.Now(),
	}
	s.mu.Unlock()
	return nil
}

// Get returns the stored value and whether a usable one exists. A value
// older than MaxStale is treated as a miss and removed.
func (s *LastGood[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}

	if s.config.MaxStale > 0 && time.Since(entry.storedAt) > s.config.MaxStale {
		// Expired, clean up lazily
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	return entry.value, true
}

// StoredAt returns when the value for the key was recorded.
func (s *LastGood[T]) StoredAt(key string) (time.Time, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return time.Time{}, false
	}
	return entry.storedAt, true
}

// Delete removes a stored value. Idempotent.
func (s *LastGood[T]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of stored values.
func (s *LastGood[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Wrap returns an operation that runs primary and records its result on
// success. Concurrent calls with the same key are coalesced into a single
// upstream call; all callers receive the shared result.
func (s *LastGood[T]) Wrap(key string, primary resilience.Operation[T]) resilience.Operation[T] {
	return func(ctx context.Context) (T, error) {
		v, err, _ := s.group.Do(key, func() (any, error) {
			value, err := primary(ctx)
			if err != nil {
				return nil, err
			}
			if putErr := s.Put(key, value); putErr != nil {
				return nil, putErr
			}
			return value, nil
		})

		var zero T
		if err != nil {
			return zero, err
		}
		return v.(T), nil
	}
}

// Fallback returns an operation that serves the last good value for the
// key. It fails with ErrNoFallbackValue when nothing was recorded and
// ErrStaleValue when the recorded value exceeds MaxStale.
func (s *LastGood[T]) Fallback(key string) resilience.Operation[T] {
	return func(ctx context.Context) (T, error) {
		var zero T

		s.mu.RLock()
		entry, ok := s.entries[key]
		s.mu.RUnlock()

		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrNoFallbackValue, key)
		}

		if s.config.MaxStale > 0 {
			age := time.Since(entry.storedAt)
			if age > s.config.MaxStale {
				return zero, fmt.Errorf("%w: %s (age %s)", ErrStaleValue, key, age.Round(time.Second))
			}
		}

		return entry.value, nil
	}
}
