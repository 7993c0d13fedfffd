// Product service for the latency samples: CRUD over an in-memory
// store with Redis cache-aside reads.
package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/latency/product"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer client.Close()

	store := product.NewMemoryStore()
	cache := product.NewRedisCache(client, cfg.CacheTTL)
	if err := httpx.Serve(cfg.HTTPAddr, product.NewRouter(store, cache), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
