package cqrs

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func newHandlers(t *testing.T) (*CommandHandler, *QueryHandler) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(context.Background(), db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewCommandHandler(NewSQLiteWriteRepository(db)), NewQueryHandler(db)
}

func TestCreateThenQuery(t *testing.T) {
	commands, queries := newHandlers(t)
	ctx := context.Background()

	id, err := commands.HandleCreate(ctx, CreateOrder{ProductName: "keyboard", Quantity: 2, Price: 49.9})
	if err != nil {
		t.Fatalf("HandleCreate failed: %v", err)
	}

	summary, err := queries.GetOrder(ctx, id)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if summary.Total != 99.8 {
		t.Errorf("expected total 99.8, got %v", summary.Total)
	}
	if summary.Status != string(OrderStatusPending) {
		t.Errorf("expected pending, got %s", summary.Status)
	}
}

func TestCreate_Invalid(t *testing.T) {
	commands, _ := newHandlers(t)

	_, err := commands.HandleCreate(context.Background(), CreateOrder{ProductName: "", Quantity: 1, Price: 1})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder, got: %v", err)
	}
}

func TestUpdate_ReflectedInReadSide(t *testing.T) {
	commands, queries := newHandlers(t)
	ctx := context.Background()

	id, _ := commands.HandleCreate(ctx, CreateOrder{ProductName: "keyboard", Quantity: 1, Price: 10})

	err := commands.HandleUpdate(ctx, UpdateOrder{OrderID: id, ProductName: "mouse", Quantity: 3, Price: 15})
	if err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}

	summary, err := queries.GetOrder(ctx, id)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if summary.ProductName != "mouse" || summary.Total != 45 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestCancel_BlocksFurtherUpdates(t *testing.T) {
	commands, queries := newHandlers(t)
	ctx := context.Background()

	id, _ := commands.HandleCreate(ctx, CreateOrder{ProductName: "keyboard", Quantity: 1, Price: 10})

	if err := commands.HandleCancel(ctx, CancelOrder{OrderID: id}); err != nil {
		t.Fatalf("HandleCancel failed: %v", err)
	}

	summary, _ := queries.GetOrder(ctx, id)
	if summary.Status != string(OrderStatusCancelled) {
		t.Errorf("expected cancelled, got %s", summary.Status)
	}

	err := commands.HandleUpdate(ctx, UpdateOrder{OrderID: id, ProductName: "mouse", Quantity: 1, Price: 10})
	if !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("expected ErrOrderCancelled, got: %v", err)
	}

	if err := commands.HandleCancel(ctx, CancelOrder{OrderID: id}); !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("expected ErrOrderCancelled on double cancel, got: %v", err)
	}
}

func TestList_FilterAndPaging(t *testing.T) {
	commands, queries := newHandlers(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := commands.HandleCreate(ctx, CreateOrder{ProductName: "item", Quantity: i + 1, Price: 10})
		if err != nil {
			t.Fatalf("HandleCreate failed: %v", err)
		}
		ids = append(ids, id)
	}
	if err := commands.HandleCancel(ctx, CancelOrder{OrderID: ids[0]}); err != nil {
		t.Fatalf("HandleCancel failed: %v", err)
	}

	pending, err := queries.ListOrders(ctx, ListOrders{Status: "pending"})
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(pending) != 4 {
		t.Errorf("expected 4 pending orders, got %d", len(pending))
	}

	cancelled, _ := queries.ListOrders(ctx, ListOrders{Status: "cancelled"})
	if len(cancelled) != 1 {
		t.Errorf("expected 1 cancelled order, got %d", len(cancelled))
	}

	page, _ := queries.ListOrders(ctx, ListOrders{Limit: 2, Offset: 2})
	if len(page) != 2 {
		t.Errorf("expected page of 2, got %d", len(page))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	commands, _ := newHandlers(t)

	err := commands.HandleUpdate(context.Background(), UpdateOrder{OrderID: "missing", ProductName: "x", Quantity: 1, Price: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
