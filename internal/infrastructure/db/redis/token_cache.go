package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache maps API token values to user ids.
// Key format: token:<value>
type TokenCache struct {
	client *redis.Client
}

// NewTokenCache creates a TokenCache wrapping the given Redis client.
func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

// Get returns the user id cached for token. found is false on a miss.
func (c *TokenCache) Get(ctx context.Context, token string) (uint, bool, error) {
	v, err := c.client.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("token cache get: %w", err)
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("token cache value %q: %w", v, err)
	}
	return uint(id), true, nil
}

// Set caches token for ttl. A non-positive ttl is a no-op since the token
// has already expired.
func (c *TokenCache) Set(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Delete drops every given token from the cache.
func (c *TokenCache) Delete(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}
	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = key(t)
	}
	return c.client.Del(ctx, keys...).Err()
}

func key(token string) string {
	return "token:" + token
}
