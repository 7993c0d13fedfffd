package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vasanth32/order-patterns/internal/obs"
)

// Publisher marshals events and pushes them onto the queue.
type Publisher struct {
	queue Queue
	stats *Stats
}

func NewPublisher(queue Queue, stats *Stats) *Publisher {
	return &Publisher{queue: queue, stats: stats}
}

func (p *Publisher) Publish(ctx context.Context, ev OrderPlaced) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.queue.Push(ctx, payload); err != nil {
		return fmt.Errorf("push event: %w", err)
	}
	p.stats.published.Add(1)
	obs.Logger.Info("event published",
		"event_id", ev.EventID,
		"order_id", ev.OrderID,
		"product", ev.ProductName,
	)
	return nil
}
