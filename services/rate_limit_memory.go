package services

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is an in-process sliding-window limiter keyed by client
// identity. Counters are shared mutable state across concurrent requests and
// updated under a single mutex, so a burst from one identity cannot slip past
// the limit through interleaving.
type MemoryRateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

var _ RateLimiter = (*MemoryRateLimiter)(nil)

// NewMemoryRateLimiter creates a limiter admitting at most limit submissions
// per identity per window.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return NewMemoryRateLimiterWithClock(limit, window, time.Now)
}

// NewMemoryRateLimiterWithClock creates a limiter driven by the supplied
// clock. Tests use this to advance simulated time.
func NewMemoryRateLimiterWithClock(limit int, window time.Duration, now func() time.Time) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    now,
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		retryAfter := recent[0].Add(l.window).Sub(now)
		return false, retryAfter, nil
	}

	l.hits[key] = append(recent, now)
	if len(recent) == 0 {
		// First admission in a fresh window; opportunistically drop identities
		// whose windows have fully elapsed so the map does not grow unbounded.
		l.pruneLocked(cutoff)
	}

	return true, 0, nil
}

// pruneLocked removes identities with no hits inside the window. Caller holds mu.
func (l *MemoryRateLimiter) pruneLocked(cutoff time.Time) {
	for key, hits := range l.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(l.hits, key)
		}
	}
}
