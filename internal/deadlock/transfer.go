// Package deadlock reproduces a lock-ordering deadlock with two
// transfers that update the same two account rows in opposite order
// while holding their locks.
package deadlock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	AccountA = "acc-a"
	AccountB = "acc-b"
)

var ErrNotFound = errors.New("account not found")

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id      VARCHAR(32) PRIMARY KEY,
	balance BIGINT NOT NULL
)`

// InitSchema creates the accounts table and seeds the two rows the demo
// fights over.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, id := range []string{AccountA, AccountB} {
		_, err := db.ExecContext(ctx, `
			INSERT INTO accounts (id, balance) VALUES (?, 1000)
			ON DUPLICATE KEY UPDATE balance = balance`, id)
		if err != nil {
			return fmt.Errorf("seed account %s: %w", id, err)
		}
	}
	return nil
}

type Balances struct {
	A int64 `json:"acc_a"`
	B int64 `json:"acc_b"`
}

// Service runs the intentionally mis-ordered transfers. Hold is how
// long each transaction keeps its first lock before taking the second;
// it widens the race window so concurrent calls collide reliably.
type Service struct {
	db   *sql.DB
	hold time.Duration
}

func NewService(db *sql.DB, hold time.Duration) *Service {
	return &Service{db: db, hold: hold}
}

// TransferForward locks A then B.
func (s *Service) TransferForward(ctx context.Context, amount int64) (Balances, error) {
	return s.transfer(ctx, AccountA, AccountB, amount)
}

// TransferReverse locks B then A. Run it concurrently with
// TransferForward and InnoDB's deadlock detector kills one of the two.
func (s *Service) TransferReverse(ctx context.Context, amount int64) (Balances, error) {
	return s.transfer(ctx, AccountB, AccountA, amount)
}

func (s *Service) transfer(ctx context.Context, first, second string, amount int64) (Balances, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Balances{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = balance - ? WHERE id = ?`, amount, first); err != nil {
		return Balances{}, fmt.Errorf("debit %s: %w", first, err)
	}

	// Keep the first row lock while the opposite transfer takes its
	// first lock on the other row.
	select {
	case <-time.After(s.hold):
	case <-ctx.Done():
		return Balances{}, ctx.Err()
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = balance + ? WHERE id = ?`, amount, second); err != nil {
		return Balances{}, fmt.Errorf("credit %s: %w", second, err)
	}

	if err := tx.Commit(); err != nil {
		return Balances{}, fmt.Errorf("commit: %w", err)
	}
	return s.Balances(ctx)
}

// Balances reads both account balances.
func (s *Service) Balances(ctx context.Context) (Balances, error) {
	var b Balances
	err := s.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = ?`, AccountA).Scan(&b.A)
	if errors.Is(err, sql.ErrNoRows) {
		return Balances{}, ErrNotFound
	}
	if err != nil {
		return Balances{}, fmt.Errorf("query %s: %w", AccountA, err)
	}
	err = s.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = ?`, AccountB).Scan(&b.B)
	if errors.Is(err, sql.ErrNoRows) {
		return Balances{}, ErrNotFound
	}
	if err != nil {
		return Balances{}, fmt.Errorf("query %s: %w", AccountB, err)
	}
	return b, nil
}
