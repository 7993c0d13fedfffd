// Queue proof of concept: one binary runs the publisher HTTP API and
// the consumer worker pool over a shared Redis list.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/vasanth32/order-patterns/internal/bus"
	"github.com/vasanth32/order-patterns/internal/config"
	"github.com/vasanth32/order-patterns/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	obs.Logger.Info("connected to redis", "addr", cfg.RedisAddr)

	queue := bus.NewRedisQueue(client, cfg.QueueName)
	stats := &bus.Stats{}
	publisher := bus.NewPublisher(queue, stats)
	consumer := bus.NewConsumer(queue, stats, cfg.WorkerCount, cfg.ProcessDelay)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		consumer.Run(workerCtx)
		close(workersDone)
	}()
	obs.Logger.Info("started workers", "count", cfg.WorkerCount, "queue", cfg.QueueName)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: bus.NewRouter(publisher, queue, stats)}
	go func() {
		obs.Logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	obs.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		obs.Logger.Error("http shutdown failed", "error", err)
	}
	obs.Logger.Info("http server stopped")

	stopWorkers()
	<-workersDone
	obs.Logger.Info("workers stopped",
		"processed", stats.Processed(),
		"failed", stats.Failed(),
	)

	if err := client.Close(); err != nil {
		obs.Logger.Error("redis close failed", "error", err)
	}
	obs.Logger.Info("connections closed")
}
