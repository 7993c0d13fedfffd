// Package di demonstrates constructor injection, service lifetimes, and
// pluggable discount/payment strategies on the Orders CRUD.
package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrPaymentDeclined = errors.New("payment declined")
)

// DiscountStrategy computes the discount for an order subtotal. The
// service depends on the interface only; implementations are injected.
type DiscountStrategy interface {
	Name() string
	Discount(quantity int, subtotal float64) float64
}

type NoDiscount struct{}

func (NoDiscount) Name() string                      { return "none" }
func (NoDiscount) Discount(_ int, _ float64) float64 { return 0 }

// PercentageDiscount takes a flat percentage off every order.
type PercentageDiscount struct {
	Percent float64
}

func (d PercentageDiscount) Name() string { return "percentage" }

func (d PercentageDiscount) Discount(_ int, subtotal float64) float64 {
	return subtotal * d.Percent / 100
}

// BulkDiscount applies only once the quantity reaches the threshold.
type BulkDiscount struct {
	Threshold int
	Percent   float64
}

func (d BulkDiscount) Name() string { return "bulk" }

func (d BulkDiscount) Discount(quantity int, subtotal float64) float64 {
	if quantity < d.Threshold {
		return 0
	}
	return subtotal * d.Percent / 100
}

// StrategyRegistry resolves discount strategies by name.
type StrategyRegistry struct {
	m map[string]DiscountStrategy
}

func NewStrategyRegistry(strategies ...DiscountStrategy) *StrategyRegistry {
	m := make(map[string]DiscountStrategy, len(strategies))
	for _, s := range strategies {
		m[s.Name()] = s
	}
	return &StrategyRegistry{m: m}
}

func (r *StrategyRegistry) Get(name string) (DiscountStrategy, error) {
	if name == "" {
		name = "none"
	}
	s, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// PaymentProcessor charges an amount and returns a confirmation id.
type PaymentProcessor interface {
	Name() string
	Charge(ctx context.Context, amount float64) (string, error)
}

// CardProcessor simulates a card charge; amounts above the limit are
// declined.
type CardProcessor struct {
	Limit float64
}

func (p CardProcessor) Name() string { return "card" }

func (p CardProcessor) Charge(_ context.Context, amount float64) (string, error) {
	if p.Limit > 0 && amount > p.Limit {
		return "", fmt.Errorf("%w: amount %.2f exceeds card limit", ErrPaymentDeclined, amount)
	}
	return "card-" + uuid.NewString(), nil
}

type CashProcessor struct{}

func (CashProcessor) Name() string { return "cash" }

func (CashProcessor) Charge(_ context.Context, _ float64) (string, error) {
	return "cash-" + uuid.NewString(), nil
}

// ProcessorRegistry resolves payment processors by name.
type ProcessorRegistry struct {
	m map[string]PaymentProcessor
}

func NewProcessorRegistry(processors ...PaymentProcessor) *ProcessorRegistry {
	m := make(map[string]PaymentProcessor, len(processors))
	for _, p := range processors {
		m[p.Name()] = p
	}
	return &ProcessorRegistry{m: m}
}

func (r *ProcessorRegistry) Get(name string) (PaymentProcessor, error) {
	p, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return p, nil
}
