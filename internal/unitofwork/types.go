// Package unitofwork demonstrates committing two repositories (orders
// and payments) atomically through one shared transaction.
package unitofwork

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrder   = errors.New("invalid order")
	ErrInvalidPayment = errors.New("invalid payment")
	ErrNotFound       = errors.New("order not found")
)

type Order struct {
	ID          string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	CreatedAt   time.Time
}

type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Method    string
	CreatedAt time.Time
}

var validMethods = map[string]struct{}{
	"card":     {},
	"cash":     {},
	"transfer": {},
}

func (o Order) validate() error {
	if o.ProductName == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidOrder)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}
	if o.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidOrder)
	}
	return nil
}

// Total is quantity times unit price.
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

func (p Payment) validate(order Order) error {
	if _, ok := validMethods[p.Method]; !ok {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidPayment, p.Method)
	}
	if !p.Amount.Equal(order.Total()) {
		return fmt.Errorf("%w: amount %s does not match order total %s",
			ErrInvalidPayment, p.Amount, order.Total())
	}
	return nil
}
