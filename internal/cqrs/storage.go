package cqrs

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
	price        REAL NOT NULL,
	status       TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
)`

// InitSchema creates the orders table.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SQLiteWriteRepository is the command side's adapter.
type SQLiteWriteRepository struct {
	db *sql.DB
}

func NewSQLiteWriteRepository(db *sql.DB) *SQLiteWriteRepository {
	return &SQLiteWriteRepository{db: db}
}

func (r *SQLiteWriteRepository) Insert(ctx context.Context, order Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, product_name, quantity, price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.ProductName, order.Quantity, order.Price, order.Status,
		order.CreatedAt.Format(time.RFC3339Nano), order.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *SQLiteWriteRepository) Load(ctx context.Context, id string) (Order, error) {
	var order Order
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_name, quantity, price, status, created_at, updated_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.ProductName, &order.Quantity, &order.Price, &order.Status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("load order: %w", err)
	}
	if order.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Order{}, fmt.Errorf("parse created_at: %w", err)
	}
	if order.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return Order{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return order, nil
}

func (r *SQLiteWriteRepository) Store(ctx context.Context, order Order) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET product_name = ?, quantity = ?, price = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		order.ProductName, order.Quantity, order.Price, order.Status,
		order.UpdatedAt.Format(time.RFC3339Nano), order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
