package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CounterStore is the injectable counter backend of the rate limiter. Incr
// must be atomic per key: concurrent calls for the same fingerprint may never
// observe an inconsistent count.
type CounterStore interface {
	Incr(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, err error)
}

// RateLimitService gates public submissions per client fingerprint. The
// fingerprint is a one-way hash of the client address; raw IPs never reach
// this service.
type RateLimitService struct {
	store  CounterStore
	limit  int
	window time.Duration
	logger *logrus.Logger
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(store CounterStore, limit int, window time.Duration, logger *logrus.Logger) *RateLimitService {
	return &RateLimitService{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow reports whether a submission from the given fingerprint may proceed.
// A store failure fails open: losing a lead to a broken counter backend is
// worse than letting one request through.
func (s *RateLimitService) Allow(ctx context.Context, fingerprint string) bool {
	allowed, err := s.store.Incr(ctx, fingerprint, s.limit, s.window)
	if err != nil {
		s.logger.WithError(err).Error("rate limit store failure, allowing request")
		return true
	}

	if !allowed {
		s.logger.WithField("fingerprint", fingerprint).Warn("rate limit exceeded")
	}

	return allowed
}

// counterEntry tracks one fingerprint within the current fixed window
type counterEntry struct {
	count       int
	windowStart time.Time
}

// MemoryCounterStore is the single-process CounterStore: a mutex-guarded
// fixed-window counter map. A deployment with multiple instances should use
// RedisCounterStore instead; the limiter contract is identical.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*counterEntry
}

// NewMemoryCounterStore creates a new in-memory counter store
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		entries: make(map[string]*counterEntry),
	}
}

// Incr applies fixed-window counting: the first call of a window sets the
// count to 1; calls within the window increment while under the limit; a call
// at or over the limit is denied without mutating state.
func (s *MemoryCounterStore) Incr(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.Sub(entry.windowStart) >= window {
		s.entries[key] = &counterEntry{count: 1, windowStart: now}
		return true, nil
	}

	if entry.count >= limit {
		return false, nil
	}

	entry.count++
	return true, nil
}

// Sweep removes entries whose window started before now-maxAge and returns
// how many were removed. Memory hygiene only; the Incr contract does not
// depend on it.
func (s *MemoryCounterStore) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if entry.windowStart.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}

	return removed
}
