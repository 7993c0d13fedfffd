package deadlock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Outcome
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}, OutcomeDeadlock},
		{"wrapped deadlock", fmt.Errorf("credit acc-b: %w", &mysql.MySQLError{Number: 1213}), OutcomeDeadlock},
		{"lock timeout", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"}, OutcomeLockTimeout},
		{"other mysql error", &mysql.MySQLError{Number: 1062}, OutcomeOther},
		{"plain error", errors.New("boom"), OutcomeOther},
		{"nil", nil, OutcomeOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func getMySQLDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/demo?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func TestOppositeOrder_Deadlocks(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	// Short hold keeps the test quick; it only needs to outlast the
	// other goroutine's first UPDATE.
	svc := NewService(db, 500*time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.TransferForward(ctx, 10)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.TransferReverse(ctx, 10)
	}()
	wg.Wait()

	var victims, winners int
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case Classify(err) == OutcomeDeadlock:
			victims++
		default:
			t.Errorf("unexpected error class: %v", err)
		}
	}
	if winners != 1 || victims != 1 {
		t.Errorf("expected exactly one winner and one deadlock victim, got %d winners, %d victims", winners, victims)
	}
}

func TestSequentialTransfers_BothSucceed(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	if err := InitSchema(ctx, db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	svc := NewService(db, 10*time.Millisecond)

	before, err := svc.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}

	if _, err := svc.TransferForward(ctx, 100); err != nil {
		t.Fatalf("forward transfer failed: %v", err)
	}
	after, err := svc.TransferReverse(ctx, 100)
	if err != nil {
		t.Fatalf("reverse transfer failed: %v", err)
	}

	// Equal transfers in both directions must cancel out.
	if after.A != before.A || after.B != before.B {
		t.Errorf("balances drifted: before %+v, after %+v", before, after)
	}
}
