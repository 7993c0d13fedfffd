package cqrs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// OrderSummary is the read-side DTO, projected straight from SQL.
type OrderSummary struct {
	ID          string  `json:"id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type ListOrders struct {
	Status string
	Limit  int
	Offset int
}

// QueryHandler serves reads without going through the domain entity.
type QueryHandler struct {
	db *sql.DB
}

func NewQueryHandler(db *sql.DB) *QueryHandler {
	return &QueryHandler{db: db}
}

func (h *QueryHandler) GetOrder(ctx context.Context, id string) (OrderSummary, error) {
	var s OrderSummary
	err := h.db.QueryRowContext(ctx, `
		SELECT id, product_name, quantity, quantity * price, status, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&s.ID, &s.ProductName, &s.Quantity, &s.Total, &s.Status, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderSummary{}, ErrNotFound
	}
	if err != nil {
		return OrderSummary{}, fmt.Errorf("query order: %w", err)
	}
	return s, nil
}

func (h *QueryHandler) ListOrders(ctx context.Context, q ListOrders) ([]OrderSummary, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	query := `
		SELECT id, product_name, quantity, quantity * price, status, created_at
		FROM orders`
	args := []any{}
	if q.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, q.Status)
	}
	query += ` ORDER BY created_at LIMIT ? OFFSET ?`
	args = append(args, q.Limit, q.Offset)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0, q.Limit)
	for rows.Next() {
		var s OrderSummary
		if err := rows.Scan(&s.ID, &s.ProductName, &s.Quantity, &s.Total, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
