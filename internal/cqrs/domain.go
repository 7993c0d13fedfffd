// Package cqrs splits the Orders CRUD into a command side working on
// the domain entity and a query side projecting rows straight to DTOs.
package cqrs

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidOrder   = errors.New("invalid order")
	ErrNotFound       = errors.New("order not found")
	ErrOrderCancelled = errors.New("order is cancelled")
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the write-side entity. The read side never sees it.
type Order struct {
	ID          string
	ProductName string
	Quantity    int
	Price       float64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Order) applyChange(productName string, quantity int, price float64) error {
	if o.Status == OrderStatusCancelled {
		return ErrOrderCancelled
	}
	if productName == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidOrder)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidOrder)
	}
	o.ProductName = productName
	o.Quantity = quantity
	o.Price = price
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (o *Order) cancel() error {
	if o.Status == OrderStatusCancelled {
		return ErrOrderCancelled
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// WriteRepository is the command side's persistence port.
type WriteRepository interface {
	Insert(ctx context.Context, order Order) error
	Load(ctx context.Context, id string) (Order, error)
	Store(ctx context.Context, order Order) error
}
