package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachable returns a client whose every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
}

func TestTokenCache_Key(t *testing.T) {
	if got := key("abc"); got != "token:abc" {
		t.Fatalf("expected token:abc, got %s", got)
	}
}

func TestTokenCache_NoOps(t *testing.T) {
	c := NewTokenCache(unreachable())
	defer c.Close()

	if err := c.Set(context.Background(), "abc", 1, 0); err != nil {
		t.Fatalf("Set with expired ttl must not reach redis: %v", err)
	}
	if err := c.Delete(context.Background()); err != nil {
		t.Fatalf("Delete without tokens must not reach redis: %v", err)
	}
}

func TestTokenCache_GetPropagatesErrors(t *testing.T) {
	c := NewTokenCache(unreachable())
	defer c.Close()

	_, found, err := c.Get(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if found {
		t.Fatal("found must be false on error")
	}
}

func TestOpen_FailsWhenServerIsDown(t *testing.T) {
	cache, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		_ = cache.Close()
		t.Fatal("expected ping error")
	}
}
