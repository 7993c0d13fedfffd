// Orders CRUD behind a repository port. REPO=memory|sqlite selects the
// adapter without touching the service.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/httpx"
	"github.com/vasanth32/order-patterns/internal/obs"
	"github.com/vasanth32/order-patterns/internal/repopattern"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var repo repopattern.OrderRepository
	switch os.Getenv("REPO") {
	case "", "sqlite":
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		defer db.Close()
		repo, err = repopattern.NewSQLiteRepository(context.Background(), db)
		if err != nil {
			log.Fatalf("init repository: %v", err)
		}
		obs.Logger.Info("using sqlite repository", "path", cfg.SQLitePath)
	case "memory":
		repo = repopattern.NewMemoryRepository()
		obs.Logger.Info("using memory repository")
	default:
		log.Fatalf("unknown REPO value: %s", os.Getenv("REPO"))
	}

	svc := repopattern.NewOrderService(repo)
	if err := httpx.Serve(cfg.HTTPAddr, repopattern.NewRouter(svc), cfg.ShutdownTimeout); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
