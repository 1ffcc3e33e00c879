package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RateLimitStore keeps per-chat message counters in Postgres so limits hold
// across bot replicas.
type RateLimitStore struct {
	db *pgxpool.Pool
}

func NewRateLimitStore(db *pgxpool.Pool) *RateLimitStore {
	return &RateLimitStore{db: db}
}

const incrementRateLimit = `
INSERT INTO rate_limits (chat_id, window_start, count)
VALUES ($1, $2, 1)
ON CONFLICT (chat_id, window_start)
DO UPDATE SET count = rate_limits.count + 1
RETURNING count`

func (s *RateLimitStore) Increment(ctx context.Context, chatID int64, window time.Time) (int, error) {
	var count int32
	if err := s.db.QueryRow(ctx, incrementRateLimit, chatID, window).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment rate limit: %w", err)
	}
	return int(count), nil
}

// Prune deletes counters whose window started before the cutoff.
func (s *RateLimitStore) Prune(ctx context.Context, before time.Time) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM rate_limits WHERE window_start < $1`, before); err != nil {
		return fmt.Errorf("prune rate limits: %w", err)
	}
	return nil
}
