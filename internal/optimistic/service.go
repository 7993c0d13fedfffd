package optimistic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vasanth32/order-patterns/internal/obs"
)

// ErrConflict is returned once the retry budget is exhausted.
var ErrConflict = errors.New("update conflict after retries")

type Update struct {
	ProductName string
	Quantity    int
	Price       float64
}

type Service struct {
	store       Store
	maxAttempts int
	backoff     time.Duration
}

func NewService(store Store, maxAttempts int, backoff time.Duration) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Service{store: store, maxAttempts: maxAttempts, backoff: backoff}
}

func (s *Service) Create(ctx context.Context, productName string, quantity int, price float64) (Order, error) {
	order, err := NewOrder(productName, quantity, price)
	if err != nil {
		return Order{}, err
	}
	if err := s.store.Insert(ctx, order); err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.store.Get(ctx, id)
}

// Apply updates the order with bounded optimistic retries. On a version
// conflict it reloads the stored row, reapplies the requested values on
// the fresh version, waits attempt*backoff, and tries again; after
// maxAttempts it gives up with ErrConflict.
func (s *Service) Apply(ctx context.Context, id string, upd Update) (Order, error) {
	if err := validateFields(upd.ProductName, upd.Quantity, upd.Price); err != nil {
		return Order{}, err
	}

	order, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		order.ProductName = upd.ProductName
		order.Quantity = upd.Quantity
		order.Price = upd.Price

		err = s.store.Update(ctx, order)
		if err == nil {
			order.Version++
			return order, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return Order{}, err
		}
		if attempt == s.maxAttempts {
			break
		}

		obs.Logger.Warn("version conflict, retrying",
			"order_id", id,
			"attempt", attempt,
			"stale_version", order.Version,
		)

		select {
		case <-time.After(time.Duration(attempt) * s.backoff):
		case <-ctx.Done():
			return Order{}, ctx.Err()
		}

		// Refresh the baseline; the request's values win over whatever
		// was written in between.
		order, err = s.store.Get(ctx, id)
		if err != nil {
			return Order{}, err
		}
	}
	return Order{}, fmt.Errorf("%w: order %s after %d attempts", ErrConflict, id, s.maxAttempts)
}
