package repopattern

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteRepository(context.Background(), db)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	return repo
}

// Both adapters must satisfy the same contract; the service must not be
// able to tell them apart.
func TestRepositoryContract(t *testing.T) {
	repos := map[string]func(t *testing.T) OrderRepository{
		"memory": func(t *testing.T) OrderRepository { return NewMemoryRepository() },
		"sqlite": func(t *testing.T) OrderRepository { return newSQLiteRepo(t) },
	}

	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			order := Order{
				ID:          "o-1",
				ProductName: "keyboard",
				Quantity:    2,
				Price:       49.9,
				CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
			}
			if err := repo.Save(ctx, order); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			got, err := repo.Get(ctx, "o-1")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if diff := cmp.Diff(order, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}

			// save again acts as update
			order.Quantity = 5
			if err := repo.Save(ctx, order); err != nil {
				t.Fatalf("Save (update) failed: %v", err)
			}
			got, _ = repo.Get(ctx, "o-1")
			if got.Quantity != 5 {
				t.Errorf("expected quantity 5, got %d", got.Quantity)
			}

			orders, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(orders) != 1 {
				t.Fatalf("expected 1 order, got %d", len(orders))
			}

			if err := repo.Delete(ctx, "o-1"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := repo.Get(ctx, "o-1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got: %v", err)
			}
			if err := repo.Delete(ctx, "o-1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound on double delete, got: %v", err)
			}
		})
	}
}

func TestSQLiteList_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	base := time.Now().UTC()
	for i, id := range []string{"third", "first", "second"} {
		offsets := map[string]time.Duration{"first": 0, "second": time.Second, "third": 2 * time.Second}
		order := Order{
			ID:          id,
			ProductName: "item",
			Quantity:    i + 1,
			Price:       1,
			CreatedAt:   base.Add(offsets[id]),
		}
		if err := repo.Save(ctx, order); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var ids []string
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	want := []string{"first", "second", "third"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestService_SwappableRepos(t *testing.T) {
	ctx := context.Background()

	for name, repo := range map[string]OrderRepository{
		"memory": NewMemoryRepository(),
		"sqlite": newSQLiteRepo(t),
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewOrderService(repo)

			order, err := svc.Create(ctx, "keyboard", 1, 10)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			updated, err := svc.Update(ctx, order.ID, "mouse", 2, 20)
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			if updated.ProductName != "mouse" {
				t.Errorf("expected mouse, got %s", updated.ProductName)
			}

			if _, err := svc.Update(ctx, order.ID, "", 1, 1); !errors.Is(err, ErrInvalidOrder) {
				t.Errorf("expected ErrInvalidOrder, got: %v", err)
			}
		})
	}
}
