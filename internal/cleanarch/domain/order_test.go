package domain

import (
	"errors"
	"testing"
)

func TestNewOrder_Valid(t *testing.T) {
	o, err := NewOrder("keyboard", 2, 49.90)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	if o.ID == "" {
		t.Error("expected non-empty id")
	}
	if o.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if got := o.Total(); got != 99.80 {
		t.Errorf("expected total 99.80, got %v", got)
	}
}

func TestNewOrder_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		product  string
		quantity int
		price    float64
	}{
		{"empty product", "", 1, 10},
		{"zero quantity", "keyboard", 0, 10},
		{"negative quantity", "keyboard", -1, 10},
		{"negative price", "keyboard", 1, -0.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder(tc.product, tc.quantity, tc.price)
			if !errors.Is(err, ErrInvalidOrder) {
				t.Errorf("expected ErrInvalidOrder, got: %v", err)
			}
		})
	}
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	o, err := NewOrder("keyboard", 1, 10)
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	id, created := o.ID, o.CreatedAt

	if err := o.Update("mouse", 3, 15); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if o.ID != id || !o.CreatedAt.Equal(created) {
		t.Error("update must not change id or creation time")
	}
	if o.ProductName != "mouse" || o.Quantity != 3 || o.Price != 15 {
		t.Errorf("update not applied: %+v", o)
	}
}

func TestUpdate_RejectsInvalid(t *testing.T) {
	o, _ := NewOrder("keyboard", 1, 10)
	if err := o.Update("", 1, 10); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder, got: %v", err)
	}
	if o.ProductName != "keyboard" {
		t.Error("failed update must not mutate the order")
	}
}
