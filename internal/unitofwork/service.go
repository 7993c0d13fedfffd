package unitofwork

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderWithPayment struct {
	Order   Order
	Payment Payment
}

// Service places orders together with their payment in one unit of work.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// PlaceOrder inserts the order and its payment atomically. If either
// insert fails, neither row is persisted.
func (s *Service) PlaceOrder(ctx context.Context, productName string, quantity int, price decimal.Decimal, amount decimal.Decimal, method string) (OrderWithPayment, error) {
	now := time.Now().UTC()
	order := Order{
		ID:          uuid.NewString(),
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   now,
	}
	if err := order.validate(); err != nil {
		return OrderWithPayment{}, err
	}
	payment := Payment{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		Amount:    amount,
		Method:    method,
		CreatedAt: now,
	}
	if err := payment.validate(order); err != nil {
		return OrderWithPayment{}, err
	}

	uow, err := Begin(ctx, s.db)
	if err != nil {
		return OrderWithPayment{}, err
	}
	defer uow.Rollback()

	if err := uow.Orders().Insert(ctx, order); err != nil {
		return OrderWithPayment{}, err
	}
	if err := uow.Payments().Insert(ctx, payment); err != nil {
		return OrderWithPayment{}, err
	}
	if err := uow.Commit(); err != nil {
		return OrderWithPayment{}, err
	}
	return OrderWithPayment{Order: order, Payment: payment}, nil
}

// GetOrder loads an order and its payment in one read-only unit of work.
func (s *Service) GetOrder(ctx context.Context, id string) (OrderWithPayment, error) {
	uow, err := Begin(ctx, s.db)
	if err != nil {
		return OrderWithPayment{}, err
	}
	defer uow.Rollback()

	order, err := uow.Orders().Get(ctx, id)
	if err != nil {
		return OrderWithPayment{}, err
	}
	payment, err := uow.Payments().GetByOrder(ctx, id)
	if err != nil {
		return OrderWithPayment{}, fmt.Errorf("order without payment: %w", err)
	}
	return OrderWithPayment{Order: order, Payment: payment}, nil
}
