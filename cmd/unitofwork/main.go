// Orders and payments committed atomically through a shared unit of
// work over one SQLite database.
package main

import (
	"context"
	"database/sql"
	"log"

	_ "modernc.org/sqlite"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
	"github.com/vasanth32/order-patterns/internal/unitofwork"
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

	if err := unitofwork.InitSchema(context.Background(), db); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	svc := unitofwork.NewService(db)
	if err := httpx.Serve(cfg.HTTPAddr, unitofwork.NewRouter(svc), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
