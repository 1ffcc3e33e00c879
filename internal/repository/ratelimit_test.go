package repository

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	endoally "github.com/set-night/endoally"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a real database: TEST_DATABASE_URL=postgres://...
func TestRateLimitStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	migrations, err := fs.Sub(endoally.MigrationsFS, "migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(url, migrations))

	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	store := NewRateLimitStore(pool)
	window := time.Now().UTC().Truncate(time.Minute)
	chatID := time.Now().UnixNano()

	first, err := store.Increment(ctx, chatID, window)
	require.NoError(t, err)
	second, err := store.Increment(ctx, chatID, window)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	require.NoError(t, store.Prune(ctx, window.Add(time.Minute)))
	again, err := store.Increment(ctx, chatID, window)
	require.NoError(t, err)
	assert.Equal(t, 1, again)
}
