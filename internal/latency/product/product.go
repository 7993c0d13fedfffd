// Package product is the latency-sample product service: CRUD over an
// in-memory store with Redis cache-aside on single-product reads.
package product

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrNotFound       = errors.New("product not found")
)

type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
}

func (p Product) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must not be negative", ErrInvalidProduct)
	}
	return nil
}

// MemoryStore keeps products in a mutex-guarded map.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Product)}
}

func (s *MemoryStore) Put(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = p
}

func (s *MemoryStore) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

func (s *MemoryStore) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
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

// NewProduct validates and assigns an id.
func NewProduct(name string, price float64, stock int, category string) (Product, error) {
	p := Product{
		ID:            uuid.NewString(),
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Category:      category,
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
