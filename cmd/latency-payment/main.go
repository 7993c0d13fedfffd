// Payment service for the latency samples: CRUD with gzip response
// compression for large bodies.
package main

import (
	"log"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/latency/payment"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store := payment.NewMemoryStore()
	if err := httpx.Serve(cfg.HTTPAddr, payment.NewRouter(store, cfg.GzipMinSize), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
