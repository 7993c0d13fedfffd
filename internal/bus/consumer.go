package bus

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/vasanth32/order-patterns/internal/obs"
)

const popTimeout = time.Second

// Consumer runs a pool of workers that pop events off the queue and
// process them. Malformed payloads are logged and dropped.
type Consumer struct {
	queue   Queue
	stats   *Stats
	workers int
	delay   time.Duration
}

func NewConsumer(queue Queue, stats *Stats, workers int, delay time.Duration) *Consumer {
	if workers < 1 {
		workers = 1
	}
	return &Consumer{queue: queue, stats: stats, workers: workers, delay: delay}
}

// Run starts the worker pool and blocks until ctx is cancelled and
// every worker has drained.
func (c *Consumer) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 1; i <= c.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.work(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (c *Consumer) work(ctx context.Context, id int) {
	obs.Logger.Info("worker started", "worker", id)
	for {
		payload, err := c.queue.Pop(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				obs.Logger.Info("worker stopped", "worker", id)
				return
			}
			if errors.Is(err, ErrEmpty) {
				continue
			}
			obs.Logger.Error("pop failed", "worker", id, "error", err)
			continue
		}

		var ev OrderPlaced
		if err := json.Unmarshal(payload, &ev); err != nil {
			c.stats.failed.Add(1)
			obs.Logger.Error("malformed event dropped", "worker", id, "error", err)
			continue
		}

		obs.Logger.Info("event received",
			"worker", id,
			"event_id", ev.EventID,
			"order_id", ev.OrderID,
		)
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			// Count the event anyway, we already took it off the queue.
		}
		c.stats.processed.Add(1)
		obs.Logger.Info("event processed",
			"worker", id,
			"event_id", ev.EventID,
			"total", ev.Total,
		)
	}
}
