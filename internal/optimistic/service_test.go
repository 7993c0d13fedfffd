package optimistic

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// Mock Store that injects version conflicts for the first N updates.
type mockStore struct {
	mu        sync.Mutex
	order     Order
	conflicts int
	updates   int
	gets      int
}

func (m *mockStore) Insert(_ context.Context, order Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = order
	return nil
}

func (m *mockStore) Get(_ context.Context, id string) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.order.ID != id {
		return Order{}, ErrNotFound
	}
	m.gets++
	return m.order, nil
}

func (m *mockStore) Update(_ context.Context, order Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.conflicts > 0 {
		m.conflicts--
		// Simulate a writer that got in first.
		m.order.Version++
		return ErrVersionConflict
	}
	if order.Version != m.order.Version {
		return ErrVersionConflict
	}
	order.Version++
	m.order = order
	return nil
}

func newMockService(conflicts int) (*Service, *mockStore) {
	store := &mockStore{conflicts: conflicts}
	store.order = Order{ID: "o-1", ProductName: "keyboard", Quantity: 1, Price: 10}
	return NewService(store, 3, time.Millisecond), store
}

func TestApply_NoConflict(t *testing.T) {
	svc, store := newMockService(0)

	order, err := svc.Apply(context.Background(), "o-1", Update{ProductName: "mouse", Quantity: 2, Price: 20})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if order.Quantity != 2 || order.Version != 1 {
		t.Errorf("unexpected order: %+v", order)
	}
	if store.updates != 1 {
		t.Errorf("expected 1 update, got %d", store.updates)
	}
}

func TestApply_RejectsInvalidUpdate(t *testing.T) {
	svc, store := newMockService(0)

	_, err := svc.Apply(context.Background(), "o-1", Update{ProductName: "", Quantity: 0, Price: -5})
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if store.updates != 0 {
		t.Errorf("expected no update attempts, got %d", store.updates)
	}
	if got, _ := store.Get(context.Background(), "o-1"); got.ProductName != "keyboard" {
		t.Errorf("stored order changed: %+v", got)
	}
}

func TestApply_RetriesThenSucceeds(t *testing.T) {
	svc, store := newMockService(2)

	order, err := svc.Apply(context.Background(), "o-1", Update{ProductName: "mouse", Quantity: 2, Price: 20})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if store.updates != 3 {
		t.Errorf("expected 3 update attempts, got %d", store.updates)
	}
	// The retried write carries the requested values, on the refreshed
	// version.
	if order.Quantity != 2 {
		t.Errorf("expected requested quantity to win, got %d", order.Quantity)
	}
}

func TestApply_ExhaustsRetries(t *testing.T) {
	svc, store := newMockService(10)

	_, err := svc.Apply(context.Background(), "o-1", Update{ProductName: "mouse", Quantity: 2, Price: 20})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got: %v", err)
	}
	if store.updates != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", store.updates)
	}
}

func TestApply_NotFound(t *testing.T) {
	svc, _ := newMockService(0)

	_, err := svc.Apply(context.Background(), "missing", Update{ProductName: "x", Quantity: 1, Price: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func newSQLiteService(t *testing.T) *Service {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(context.Background(), db)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return NewService(store, 3, time.Millisecond)
}

func TestSQLiteStore_VersionCheck(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, "keyboard", 1, 10)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := svc.store
	stale := order

	// First writer wins and bumps the version.
	if err := store.Update(ctx, order); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// Second writer with the stale version must conflict.
	if err := store.Update(ctx, stale); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got: %v", err)
	}
}

func TestSQLiteStore_UpdateMissingRow(t *testing.T) {
	svc := newSQLiteService(t)

	err := svc.store.Update(context.Background(), Order{ID: "missing", ProductName: "x", Quantity: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestApply_ConcurrentUpdatesAllLand(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, "keyboard", 1, 10)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	var failures sync.Map
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			if _, err := svc.Apply(ctx, order.ID, Update{ProductName: "keyboard", Quantity: q, Price: 10}); err != nil {
				failures.Store(q, err)
			}
		}(i + 2)
	}
	wg.Wait()

	failures.Range(func(k, v any) bool {
		// Bounded retries may legitimately exhaust under contention,
		// but only with ErrConflict.
		if !errors.Is(v.(error), ErrConflict) {
			t.Errorf("writer %v failed with unexpected error: %v", k, v)
		}
		return true
	})

	got, err := svc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Version == 0 {
		t.Error("expected at least one successful versioned write")
	}
}
