// Orders CRUD with explicit service lifetimes and pluggable
// discount/payment strategies. main is the composition root: every
// dependency is constructed here and injected down.
package main

import (
	"log"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/di"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	strategies := di.NewStrategyRegistry(
		di.NoDiscount{},
		di.PercentageDiscount{Percent: 10},
		di.BulkDiscount{Threshold: 10, Percent: 25},
	)
	processors := di.NewProcessorRegistry(
		di.CardProcessor{Limit: 5000},
		di.CashProcessor{},
	)

	singleton := di.NewSingleton()
	svc := di.NewOrderService(di.NewMemoryRepository(), strategies, processors)

	if err := httpx.Serve(cfg.HTTPAddr, di.NewRouter(svc, singleton), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
