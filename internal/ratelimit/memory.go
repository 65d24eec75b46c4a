package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a fixed-window rate limiter held in process memory.
// Windows are tracked per key and reset lazily on the first event after
// expiry.
type MemoryStore struct {
	Now func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window)}
}

// Allow registers an event for the given key and returns whether it is within the limit.
func (s *MemoryStore) Allow(_ context.Context, key string, windowSize time.Duration, max int) (bool, int, time.Time, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	current := now()
	if max <= 0 || windowSize <= 0 {
		return true, max, current.Add(windowSize), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !current.Before(w.resetAt) {
		w = &window{resetAt: current.Add(windowSize)}
		s.windows[key] = w
	}
	w.count++

	remaining := max - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= max, remaining, w.resetAt, nil
}
