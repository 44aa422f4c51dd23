package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 30 * 24 * time.Hour

// HistoryRepository keeps the per-user list of recently recommended genera,
// newest first, trimmed to the diversity window.
type HistoryRepository struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

func historyKey(userID uint) string {
	return fmt.Sprintf("reco:history:%d", userID)
}

func (r *HistoryRepository) RecentGenera(ctx context.Context, userID uint, window int) ([]string, error) {
	if window <= 0 {
		return nil, nil
	}

	genera, err := r.client.LRange(ctx, historyKey(userID), 0, int64(window-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendation history: %w", err)
	}

	return genera, nil
}

func (r *HistoryRepository) PushGenus(ctx context.Context, userID uint, genus string, window int) error {
	if genus == "" || window <= 0 {
		return nil
	}

	key := historyKey(userID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, genus)
	pipe.LTrim(ctx, key, 0, int64(window-1))
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record recommendation history: %w", err)
	}

	return nil
}
