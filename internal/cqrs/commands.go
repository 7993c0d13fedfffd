package cqrs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Commands express intent; each handler method loads the entity, runs
// the domain logic, and persists through the write repository.

type CreateOrder struct {
	ProductName string
	Quantity    int
	Price       float64
}

type UpdateOrder struct {
	OrderID     string
	ProductName string
	Quantity    int
	Price       float64
}

type CancelOrder struct {
	OrderID string
}

type CommandHandler struct {
	repo WriteRepository
}

func NewCommandHandler(repo WriteRepository) *CommandHandler {
	return &CommandHandler{repo: repo}
}

func (h *CommandHandler) HandleCreate(ctx context.Context, cmd CreateOrder) (string, error) {
	now := time.Now().UTC()
	order := Order{
		ID:        uuid.NewString(),
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := order.applyChange(cmd.ProductName, cmd.Quantity, cmd.Price); err != nil {
		return "", err
	}
	if err := h.repo.Insert(ctx, order); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return order.ID, nil
}

func (h *CommandHandler) HandleUpdate(ctx context.Context, cmd UpdateOrder) error {
	order, err := h.repo.Load(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if err := order.applyChange(cmd.ProductName, cmd.Quantity, cmd.Price); err != nil {
		return err
	}
	if err := h.repo.Store(ctx, order); err != nil {
		return fmt.Errorf("store order: %w", err)
	}
	return nil
}

func (h *CommandHandler) HandleCancel(ctx context.Context, cmd CancelOrder) error {
	order, err := h.repo.Load(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if err := order.cancel(); err != nil {
		return err
	}
	if err := h.repo.Store(ctx, order); err != nil {
		return fmt.Errorf("store order: %w", err)
	}
	return nil
}
