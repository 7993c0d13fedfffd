// Package payment is the latency-sample payment service: CRUD over an
// in-memory store with gzip response compression.
package payment

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPayment = errors.New("invalid payment")
	ErrNotFound       = errors.New("payment not found")
)

type Payment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
}

func validate(orderID string, amount float64, method string) error {
	if orderID == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidPayment)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if method == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidPayment)
	}
	return nil
}

func NewPayment(orderID string, amount float64, method string) (Payment, error) {
	if err := validate(orderID, amount, method); err != nil {
		return Payment{}, err
	}
	return Payment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Amount:    amount,
		Method:    method,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Update replaces the payment fields, keeping id and creation time.
func (p *Payment) Update(orderID string, amount float64, method string) error {
	if err := validate(orderID, amount, method); err != nil {
		return err
	}
	p.OrderID = orderID
	p.Amount = amount
	p.Method = method
	return nil
}

// MemoryStore keeps payments in a mutex-guarded map.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Payment)}
}

func (s *MemoryStore) Put(p Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = p
}

func (s *MemoryStore) Get(id string) (Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
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

func (s *MemoryStore) List() []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Payment, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
