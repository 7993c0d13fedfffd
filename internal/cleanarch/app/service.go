// Package app implements the Order use cases over a repository port.
// It knows the domain and nothing about HTTP or storage details.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasanth32/order-patterns/internal/cleanarch/domain"
)

var ErrNotFound = errors.New("order not found")

// OrderRepository is the persistence port the service depends on.
// Adapters return ErrNotFound for unknown ids.
type OrderRepository interface {
	Save(ctx context.Context, order domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) Create(ctx context.Context, productName string, quantity int, price float64) (domain.Order, error) {
	order, err := domain.NewOrder(productName, quantity, price)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Update(ctx context.Context, id, productName string, quantity int, price float64) (domain.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if err := order.Update(productName, quantity, price); err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
