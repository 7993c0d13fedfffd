// Package optimistic demonstrates optimistic concurrency control: a
// version column checked at write time, with a bounded
// reload-and-retry loop on conflict.
package optimistic

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrNotFound        = errors.New("order not found")
	ErrVersionConflict = errors.New("version conflict")
)

type Order struct {
	ID          string
	ProductName string
	Quantity    int
	Price       float64
	Version     int64
	CreatedAt   time.Time
}

// Store is the persistence port. Update must fail with
// ErrVersionConflict when the stored version differs from
// order.Version.
type Store interface {
	Insert(ctx context.Context, order Order) error
	Get(ctx context.Context, id string) (Order, error)
	Update(ctx context.Context, order Order) error
}

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id           TEXT PRIMARY KEY,
	product_name TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	price        REAL NOT NULL,
	version      INTEGER NOT NULL,
	created_at   TEXT NOT NULL
)`

// SQLiteStore guards every update with a version check.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, order Order) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, product_name, quantity, price, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, order.ProductName, order.Quantity, order.Price, order.Version,
		order.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Order, error) {
	var order Order
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, product_name, quantity, price, version, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.ProductName, &order.Quantity, &order.Price, &order.Version, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("query order: %w", err)
	}
	if order.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Order{}, fmt.Errorf("parse created_at: %w", err)
	}
	return order, nil
}

// Update persists the order only if the stored version still matches;
// the write itself bumps the version.
func (s *SQLiteStore) Update(ctx context.Context, order Order) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET product_name = ?, quantity = ?, price = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		order.ProductName, order.Quantity, order.Price, order.ID, order.Version,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a missing row from a stale version.
		if _, err := s.Get(ctx, order.ID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func validateFields(productName string, quantity int, price float64) error {
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

// NewOrder builds a validated order at version zero.
func NewOrder(productName string, quantity int, price float64) (Order, error) {
	if err := validateFields(productName, quantity, price); err != nil {
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
