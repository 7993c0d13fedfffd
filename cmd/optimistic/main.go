// Optimistic-concurrency demo: version-checked updates with a bounded
// reload-and-retry loop, 409 once the budget runs out.
package main

import (
	"context"
	"database/sql"
	"log"

	_ "modernc.org/sqlite"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
	"github.com/vasanth32/order-patterns/internal/optimistic"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	store, err := optimistic.NewSQLiteStore(context.Background(), db)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	svc := optimistic.NewService(store, cfg.MaxAttempts, cfg.RetryBackoff)
	if err := httpx.Serve(cfg.HTTPAddr, optimistic.NewRouter(svc), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
