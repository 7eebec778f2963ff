// Package ratelimit limits how often one client may create matches or open
// scoreboard connections.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a request identified by key may proceed. When it
// may not, retryAfterSec is the suggested Retry-After in seconds (0 = omit).
type Limiter interface {
	Allow(key string) (allowed bool, retryAfterSec int)
}

// Noop allows everything.
type Noop struct{}

func (Noop) Allow(string) (bool, int) { return true, 0 }

// New returns a sliding-window limiter, or Noop when limit is not positive.
func New(limit int, window time.Duration) Limiter {
	if limit <= 0 || window <= 0 {
		return Noop{}
	}
	return NewInMemory(limit, window)
}

// InMemory is a per-key sliding window held in process memory.
type InMemory struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewInMemory allows up to limit requests per key within window.
func NewInMemory(limit int, window time.Duration) *InMemory {
	return &InMemory{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *InMemory) Allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.recent(key, now)
	if len(recent) >= l.limit {
		l.hits[key] = recent
		wait := recent[0].Add(l.window).Sub(now)
		secs := int(wait / time.Second)
		if wait%time.Second != 0 {
			secs++
		}
		return false, secs
	}
	l.hits[key] = append(recent, now)
	return true, 0
}

// Prune drops expired hits and keys with no hits inside the window.
func (l *InMemory) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key := range l.hits {
		if r := l.recent(key, now); len(r) == 0 {
			delete(l.hits, key)
		} else {
			l.hits[key] = r
		}
	}
}

// recent filters key's hits to the window in place, reusing the stored
// backing array; callers must store the result back. Callers hold l.mu.
func (l *InMemory) recent(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
