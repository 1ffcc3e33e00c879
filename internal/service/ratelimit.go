package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateCounter counts messages per chat within a fixed window.
type RateCounter interface {
	Increment(ctx context.Context, chatID int64, window time.Time) (int, error)
}

// RateLimiter allows at most limit messages per chat per window.
type RateLimiter struct {
	counter RateCounter
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewRateLimiter(counter RateCounter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: limit, window: window, now: time.Now}
}

func (l *RateLimiter) Allow(ctx context.Context, chatID int64) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	count, err := l.counter.Increment(ctx, chatID, l.now().Truncate(l.window))
	if err != nil {
		return false, fmt.Errorf("increment rate counter: %w", err)
	}
	return count <= l.limit, nil
}

type rateBucket struct {
	count  int
	window time.Time
}

// MemoryCounter is a process-local RateCounter.
type MemoryCounter struct {
	mu      sync.Mutex
	buckets map[int64]*rateBucket
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{buckets: make(map[int64]*rateBucket)}
}

func (m *MemoryCounter) Increment(_ context.Context, chatID int64, window time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[chatID]
	if !ok || !b.window.Equal(window) {
		m.buckets[chatID] = &rateBucket{count: 1, window: window}
		return 1, nil
	}
	b.count++
	return b.count, nil
}

// Prune drops buckets whose window started before the cutoff.
func (m *MemoryCounter) Prune(_ context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.buckets {
		if b.window.Before(before) {
			delete(m.buckets, id)
		}
	}
	return nil
}
