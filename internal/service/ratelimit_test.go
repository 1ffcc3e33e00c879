package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_WindowAndLimit(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 5, 0, time.UTC)
	l := NewRateLimiter(NewMemoryCounter(), 2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "call %d", i)
	}

	// other chats are independent
	ok, err := l.Allow(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, err = l.Allow(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(nil, 0, time.Minute)
	ok, err := l.Allow(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingCounter struct{}

func (failingCounter) Increment(context.Context, int64, time.Time) (int, error) {
	return 0, errors.New("db down")
}

func TestRateLimiter_CounterError(t *testing.T) {
	l := NewRateLimiter(failingCounter{}, 5, time.Minute)
	_, err := l.Allow(context.Background(), 1)
	assert.Error(t, err)
}

func TestMemoryCounter_Prune(t *testing.T) {
	m := NewMemoryCounter()
	ctx := context.Background()
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _ = m.Increment(ctx, 1, old)
	_, _ = m.Increment(ctx, 2, old.Add(time.Hour))

	require.NoError(t, m.Prune(ctx, old.Add(time.Minute)))
	assert.Len(t, m.buckets, 1)
	assert.Contains(t, m.buckets, int64(2))
}
