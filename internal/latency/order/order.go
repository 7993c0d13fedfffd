// Package order is the latency-sample order service: CRUD over an
// in-memory store with response-time middleware surfacing slow
// requests.
package order

import (
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
	ID          string    `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
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

// Update replaces the order fields, keeping id and creation time.
func (o *Order) Update(productName string, quantity int, price float64) error {
	if err := validate(productName, quantity, price); err != nil {
		return err
	}
	o.ProductName = productName
	o.Quantity = quantity
	o.Price = price
	return nil
}

// MemoryStore keeps orders in a mutex-guarded map.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Order)}
}

func (s *MemoryStore) Put(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[o.ID] = o
}

func (s *MemoryStore) Get(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[id]
	return o, ok
}

func (s *MemoryStore) List() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.m))
	for _, o := range s.m {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return false
	}
	delete(s.m, id)
	return true
}
