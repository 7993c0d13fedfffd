package unitofwork

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id           TEXT PRIMARY KEY,
	product_name TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	price        TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	order_id   TEXT NOT NULL REFERENCES orders(id),
	amount     TEXT NOT NULL,
	method     TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// InitSchema creates both tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UnitOfWork binds the order and payment repositories to one
// transaction. Changes made through either repository become visible to
// others only after Commit.
type UnitOfWork struct {
	tx       *sql.Tx
	orders   *OrderRepository
	payments *PaymentRepository
	done     bool
}

// Begin opens a transaction and the repositories bound to it.
func Begin(ctx context.Context, db *sql.DB) (*UnitOfWork, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &UnitOfWork{
		tx:       tx,
		orders:   &OrderRepository{tx: tx},
		payments: &PaymentRepository{tx: tx},
	}, nil
}

func (u *UnitOfWork) Orders() *OrderRepository { return u.orders }
func (u *UnitOfWork) Payments() *PaymentRepository { return u.payments }

func (u *UnitOfWork) Commit() error {
	u.done = true
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback is a no-op after Commit, so it is safe to defer.
func (u *UnitOfWork) Rollback() {
	if u.done {
		return
	}
	_ = u.tx.Rollback()
}

// OrderRepository reads and writes orders inside the owning transaction.
type OrderRepository struct {
	tx *sql.Tx
}

func (r *OrderRepository) Insert(ctx context.Context, order Order) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO orders (id, product_name, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.ProductName, order.Quantity, order.Price.String(),
		order.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (Order, error) {
	var order Order
	var price, createdAt string
	err := r.tx.QueryRowContext(ctx, `
		SELECT id, product_name, quantity, price, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.ProductName, &order.Quantity, &price, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("query order: %w", err)
	}
	if err := unmarshalRow(&order.Price, &order.CreatedAt, price, createdAt); err != nil {
		return Order{}, err
	}
	return order, nil
}

// PaymentRepository reads and writes payments inside the owning
// transaction.
type PaymentRepository struct {
	tx *sql.Tx
}

func (r *PaymentRepository) Insert(ctx context.Context, payment Payment) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, method, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		payment.ID, payment.OrderID, payment.Amount.String(), payment.Method,
		payment.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByOrder(ctx context.Context, orderID string) (Payment, error) {
	var payment Payment
	var amount, createdAt string
	err := r.tx.QueryRowContext(ctx, `
		SELECT id, order_id, amount, method, created_at
		FROM payments WHERE order_id = ?`, orderID,
	).Scan(&payment.ID, &payment.OrderID, &amount, &payment.Method, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Payment{}, ErrNotFound
	}
	if err != nil {
		return Payment{}, fmt.Errorf("query payment: %w", err)
	}
	if err := unmarshalRow(&payment.Amount, &payment.CreatedAt, amount, createdAt); err != nil {
		return Payment{}, err
	}
	return payment, nil
}
