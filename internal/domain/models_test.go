package domain

import "testing"

func TestInventoryItem_Status(t *testing.T) {
	cases := []struct {
		name string
		qty  int
		min  int
		want StockStatus
	}{
		{"half is critical", 5, 10, StockCritical},
		{"below half", 2, 10, StockCritical},
		{"equal is low", 10, 10, StockLow},
		{"just above half", 6, 10, StockLow},
		{"above min", 11, 10, StockInStock},
		{"odd min half", 3, 7, StockCritical},
		{"odd min above half", 4, 7, StockLow},
		{"zero min zero qty", 0, 0, StockCritical},
		{"zero min positive qty", 1, 0, StockInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := InventoryItem{Quantity: tc.qty, MinQuantity: tc.min}
			if got := it.Status(); got != tc.want {
				t.Fatalf("status(%d/%d) = %s, want %s", tc.qty, tc.min, got, tc.want)
			}
		})
	}
}

func TestInventoryItem_IsLowStock(t *testing.T) {
	if !(InventoryItem{Quantity: 10, MinQuantity: 10}).IsLowStock() {
		t.Fatalf("equal quantity must be low stock")
	}
	if (InventoryItem{Quantity: 11, MinQuantity: 10}).IsLowStock() {
		t.Fatalf("above min must not be low stock")
	}
}

func TestOrderStatus_Transitions(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{OrderStatusPending, OrderStatusPreparing}:   true,
		{OrderStatusPending, OrderStatusCancelled}:   true,
		{OrderStatusPreparing, OrderStatusCompleted}: true,
		{OrderStatusPreparing, OrderStatusCancelled}: true,
	}
	all := []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusCompleted, OrderStatusCancelled}
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			if got != allowed[[2]OrderStatus{from, to}] {
				t.Fatalf("%s -> %s: got %v", from, to, got)
			}
		}
	}
}

func TestOrderStatus_TerminalAndValid(t *testing.T) {
	if !OrderStatusCompleted.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatalf("completed and cancelled must be terminal")
	}
	if OrderStatusPending.IsTerminal() || OrderStatusPreparing.IsTerminal() {
		t.Fatalf("pending and preparing are not terminal")
	}
	if OrderStatus("shipped").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
	if !OrderStatusPreparing.Valid() {
		t.Fatalf("preparing must be valid")
	}
}
