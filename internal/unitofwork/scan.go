package unitofwork

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Decimals and timestamps are stored as TEXT to keep SQLite exact.
func unmarshalRow(amount *decimal.Decimal, ts *time.Time, rawAmount, rawTS string) error {
	d, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return fmt.Errorf("parse decimal: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, rawTS)
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	*amount = d
	*ts = t
	return nil
}
