// Order service for the latency samples: CRUD with response-time
// headers and slow-request logging.
package main

import (
	"log"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/latency/order"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store := order.NewMemoryStore()
	router := order.NewRouter(store, cfg.SlowThreshold, cfg.SlowSleep)
	if err := httpx.Serve(cfg.HTTPAddr, router, cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
