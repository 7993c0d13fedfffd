// Package bus is a queue proof of concept: an HTTP publisher pushes
// order events onto a Redis list and a pool of workers pops and
// processes them.
package bus

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidOrder = errors.New("invalid order")

// OrderPlaced is the event published for every accepted order.
type OrderPlaced struct {
	EventID     string    `json:"event_id"`
	OrderID     string    `json:"order_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Total       float64   `json:"total"`
	PlacedAt    time.Time `json:"placed_at"`
}

func NewOrderPlaced(productName string, quantity int, price float64) (OrderPlaced, error) {
	if productName == "" {
		return OrderPlaced{}, fmt.Errorf("%w: product name is required", ErrInvalidOrder)
	}
	if quantity <= 0 {
		return OrderPlaced{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}
	if price < 0 {
		return OrderPlaced{}, fmt.Errorf("%w: price must not be negative", ErrInvalidOrder)
	}
	return OrderPlaced{
		EventID:     uuid.NewString(),
		OrderID:     uuid.NewString(),
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Total:       float64(quantity) * price,
		PlacedAt:    time.Now().UTC(),
	}, nil
}
