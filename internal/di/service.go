package di

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
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
	Discount    string
	ChargeRef   string
	CreatedAt   time.Time
}

// OrderRepository is the persistence port.
type OrderRepository interface {
	Save(ctx context.Context, order Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps orders in a mutex-guarded map.
type MemoryRepository struct {
	mu sync.RWMutex
	m  map[string]Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[string]Order)}
}

func (r *MemoryRepository) Save(_ context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[order.ID] = order
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.m[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return order, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]Order, 0, len(r.m))
	for _, o := range r.m {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return ErrNotFound
	}
	delete(r.m, id)
	return nil
}

// OrderService depends only on ports; main decides the implementations.
type OrderService struct {
	repo       OrderRepository
	strategies *StrategyRegistry
	processors *ProcessorRegistry
}

func NewOrderService(repo OrderRepository, strategies *StrategyRegistry, processors *ProcessorRegistry) *OrderService {
	return &OrderService{repo: repo, strategies: strategies, processors: processors}
}

func validateOrderInput(productName string, quantity int, price float64) error {
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

// Create validates the order, charges the total after discount through
// the chosen processor, and persists the result.
func (s *OrderService) Create(ctx context.Context, productName string, quantity int, price float64, discount, payment string) (Order, error) {
	if err := validateOrderInput(productName, quantity, price); err != nil {
		return Order{}, err
	}

	strategy, err := s.strategies.Get(discount)
	if err != nil {
		return Order{}, err
	}
	processor, err := s.processors.Get(payment)
	if err != nil {
		return Order{}, err
	}

	subtotal := float64(quantity) * price
	total := subtotal - strategy.Discount(quantity, subtotal)

	ref, err := processor.Charge(ctx, total)
	if err != nil {
		return Order{}, err
	}

	order := Order{
		ID:          uuid.NewString(),
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Discount:    strategy.Name(),
		ChargeRef:   ref,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

// Update replaces the order fields after validation. The original
// charge and discount stand; the payment already happened.
func (s *OrderService) Update(ctx context.Context, id, productName string, quantity int, price float64) (Order, error) {
	if err := validateOrderInput(productName, quantity, price); err != nil {
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

func (s *OrderService) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Total recomputes the discounted total for a stored order.
func (s *OrderService) Total(ctx context.Context, id string) (float64, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	strategy, err := s.strategies.Get(order.Discount)
	if err != nil {
		return 0, err
	}
	subtotal := float64(order.Quantity) * order.Price
	return subtotal - strategy.Discount(order.Quantity, subtotal), nil
}
