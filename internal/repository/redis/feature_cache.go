package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orchidMatch/business/reco"

	"github.com/redis/go-redis/v9"
)

// FeatureCache is the Redis-backed feature-vector cache. Keys embed the
// catalog version, so a catalog change orphans every stale entry; the TTL
// reclaims them.
type FeatureCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeatureCache(client *redis.Client, ttl time.Duration) *FeatureCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &FeatureCache{
		client: client,
		ttl:    ttl,
	}
}

func featureKey(orchidID uint64, version string) string {
	return fmt.Sprintf("reco:fv:%s:%d", version, orchidID)
}

func (c *FeatureCache) Get(ctx context.Context, orchidID uint64, version string) (reco.FeatureVector, bool, error) {
	val, err := c.client.Get(ctx, featureKey(orchidID, version)).Result()
	if errors.Is(err, redis.Nil) {
		return reco.FeatureVector{}, false, nil
	}
	if err != nil {
		return reco.FeatureVector{}, false, fmt.Errorf("failed to read feature cache: %w", err)
	}

	var fv reco.FeatureVector
	if err := json.Unmarshal([]byte(val), &fv); err != nil {
		return reco.FeatureVector{}, false, fmt.Errorf("failed to unmarshal cached feature vector: %w", err)
	}

	return fv, true, nil
}

func (c *FeatureCache) Set(ctx context.Context, orchidID uint64, version string, fv reco.FeatureVector) error {
	raw, err := json.Marshal(fv)
	if err != nil {
		return fmt.Errorf("failed to marshal feature vector: %w", err)
	}

	if err := c.client.Set(ctx, featureKey(orchidID, version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write feature cache: %w", err)
	}

	return nil
}
