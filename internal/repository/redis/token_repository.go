package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository stores issued JWTs so logout takes effect before expiry.
// Forward key: token per user; reverse key: token → user ID for validation.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

func userTokenKey(userID string) string {
	return "token:user:" + userID
}

func lookupKey(token string) string {
	return "token:lookup:" + token
}

func (r *TokenRepository) StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userTokenKey(userID), token, ttl)
	pipe.Set(ctx, lookupKey(token), userID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.New("token not found or expired")
	}
	if err != nil {
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, userTokenKey(userID))
	pipe.Del(ctx, lookupKey(token))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
