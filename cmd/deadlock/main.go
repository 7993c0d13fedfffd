// Deadlock reproducer: hit /api/transfer/forward and
// /api/transfer/reverse concurrently and InnoDB aborts one of the two
// transactions.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/deadlock"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	if err := deadlock.InitSchema(ctx, db); err != nil {
		log.Fatalf("init schema: %v", err)
	}
	obs.Logger.Info("accounts seeded", "hold", cfg.HoldDuration.String())

	svc := deadlock.NewService(db, cfg.HoldDuration)
	if err := httpx.Serve(cfg.HTTPAddr, deadlock.NewRouter(svc), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
