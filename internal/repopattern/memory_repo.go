package repopattern

import (
	"context"
	"sort"
	"sync"
)

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
