package product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports a key not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the read-through cache port. Implementations must return
// ErrCacheMiss for absent keys.
type Cache interface {
	Get(ctx context.Context, id string) (Product, error)
	Set(ctx context.Context, p Product) error
	Invalidate(ctx context.Context, id string) error
}

const cacheKeyPrefix = "product:"

// RedisCache stores JSON-encoded products with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, id string) (Product, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Product{}, ErrCacheMiss
	}
	if err != nil {
		return Product{}, err
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *RedisCache) Set(ctx context.Context, p Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+p.ID, data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, cacheKeyPrefix+id).Err()
}
