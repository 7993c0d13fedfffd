// Package domain holds the Order entity and its invariants. It depends
// on nothing outside the standard library.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidOrder = errors.New("invalid order")

type Order struct {
	ID          string
	ProductName string
	Quantity    int
	Price       float64
	CreatedAt   time.Time
}

// NewOrder validates the fields and returns a new Order.
func NewOrder(productName string, quantity int, price float64) (Order, error) {
	if err := validate(productName, quantity, price); err != nil {
		return Order{}, err
	}
	return Order{
		ID:          uuid.NewString(),
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Update applies new values to an existing order, keeping id and
// creation time.
func (o *Order) Update(productName string, quantity int, price float64) error {
	if err := validate(productName, quantity, price); err != nil {
		return err
	}
	o.ProductName = productName
	o.Quantity = quantity
	o.Price = price
	return nil
}

// Total is the order amount: quantity times unit price.
func (o Order) Total() float64 {
	return float64(o.Quantity) * o.Price
}

func validate(productName string, quantity int, price float64) error {
	if productName == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidOrder)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidOrder)
	}
	return nil
}
