// Orders CRUD split into a command side (domain entity + write
// repository) and a query side (direct SQL-to-DTO projections).
package main

import (
	"context"
	"database/sql"
	"log"

	_ "modernc.org/sqlite"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/cqrs"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
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

	if err := cqrs.InitSchema(context.Background(), db); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	commands := cqrs.NewCommandHandler(cqrs.NewSQLiteWriteRepository(db))
	queries := cqrs.NewQueryHandler(db)

	if err := httpx.Serve(cfg.HTTPAddr, cqrs.NewRouter(commands, queries), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
