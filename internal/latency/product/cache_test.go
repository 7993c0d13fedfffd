package product

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	cache := NewRedisCache(client, time.Minute)

	p := Product{ID: "cache-test-1", Name: "widget", Price: 9.99, StockQuantity: 3, Category: "gadgets"}
	defer client.Del(ctx, cacheKeyPrefix+p.ID)

	if err := cache.Set(ctx, p); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != p {
		t.Errorf("expected %+v, got %+v", p, got)
	}

	if err := cache.Invalidate(ctx, p.ID); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, err := cache.Get(ctx, p.ID); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after invalidate, got: %v", err)
	}
}

func TestRedisCache_MissingKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	cache := NewRedisCache(client, time.Minute)
	if _, err := cache.Get(context.Background(), "never-set"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got: %v", err)
	}
}
