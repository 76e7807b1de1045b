package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the initial ping. Defaults to 5s.
	Timeout time.Duration
}

// Open returns a TokenCache on a fresh client once the server answers a
// ping. The cache owns the client; release it with Close.
func Open(ctx context.Context, cfg Config) (*TokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cache := NewTokenCache(client)
	if err := cache.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return cache, nil
}

func (c *TokenCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *TokenCache) Close() error {
	return c.client.Close()
}
