// Layered Orders CRUD: domain, use cases, storage, and HTTP adapters
// wired together here, with dependencies pointing inward.
package main

import (
	"log"

	"github.com/vasanth32/order-patterns/internal/cleanarch/app"
	"github.com/vasanth32/order-patterns/internal/cleanarch/httpapi"
	"github.com/vasanth32/order-patterns/internal/cleanarch/storage"
	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	repo := storage.NewMemoryRepository()
	svc := app.NewOrderService(repo)
	router := httpapi.NewRouter(svc)

	if err := httpx.Serve(cfg.HTTPAddr, router, cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
