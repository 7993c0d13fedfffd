// Package repopattern shows the same Orders CRUD behind a repository
// port with interchangeable memory and SQLite adapters.
package repopattern

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrder = errors.New("invalid order")
	ErrNotFound     = errors.New("order not found")
)

type Order struct {
	ID          string
	ProductName string
	Quantity    int
	Price       float64
	CreatedAt   time.Time
}

// OrderRepository is the persistence port. Both adapters must return
// ErrNotFound for unknown ids.
type OrderRepository interface {
	Save(ctx context.Context, order Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id string) error
}

func validateOrder(productName string, quantity int, price float64) error {
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

type OrderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) Create(ctx context.Context, productName string, quantity int, price float64) (Order, error) {
	if err := validateOrder(productName, quantity, price); err != nil {
		return Order{}, err
	}
	order := Order{
		ID:          uuid.NewString(),
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Update(ctx context.Context, id, productName string, quantity int, price float64) (Order, error) {
	if err := validateOrder(productName, quantity, price); err != nil {
		return Order{}, err
	}
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	order.ProductName = productName
	order.Quantity = quantity
	order.Price = price
	if err := s.repo.Save(ctx, order); err != nil {
		return Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
