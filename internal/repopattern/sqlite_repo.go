package repopattern

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
	created_at   TEXT NOT NULL
)`

// SQLiteRepository persists orders in a single SQLite table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates the orders table if needed and returns the
// adapter.
func NewSQLiteRepository(ctx context.Context, db *sql.DB) (*SQLiteRepository, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, order Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, product_name, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			product_name = excluded.product_name,
			quantity = excluded.quantity,
			price = excluded.price`,
		order.ID, order.ProductName, order.Quantity, order.Price,
		order.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, product_name, quantity, price, created_at
		FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_name, quantity, price, created_at
		FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (Order, error) {
	var order Order
	var createdAt string
	err := row.Scan(&order.ID, &order.ProductName, &order.Quantity, &order.Price, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("scan order: %w", err)
	}
	order.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Order{}, fmt.Errorf("parse created_at: %w", err)
	}
	return order, nil
}
