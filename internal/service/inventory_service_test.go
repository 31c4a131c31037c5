package service

import (
	"context"
	"errors"
	"testing"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

func (f *fixture) stock(t *testing.T, name string, q, min int) *domain.InventoryItem {
	t.Helper()
	it, err := f.inventory.Create(context.Background(), domain.InventoryItem{
		Name: name, Quantity: q, MinQuantity: min, Unit: "pcs", Category: "Packaging", Supplier: "Pack Pro",
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return it
}

func TestInventory_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	cases := []domain.InventoryItem{
		{Name: "", Quantity: 1, MinQuantity: 1},
		{Name: "Napkins", Quantity: -1, MinQuantity: 1},
		{Name: "Napkins", Quantity: 1, MinQuantity: -1},
	}
	for _, c := range cases {
		if _, err := f.inventory.Create(ctx, c); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected invalid input, got %v", c, err)
		}
	}
}

func TestInventory_IncrementDecrement(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	it := f.stock(t, "Coke Syrup", 1, 3)

	up, err := f.inventory.Increment(ctx, it.ID)
	if err != nil || up.Quantity != 2 {
		t.Fatalf("increment: %v %+v", err, up)
	}
	for i := 0; i < 2; i++ {
		if _, err := f.inventory.Decrement(ctx, it.ID); err != nil {
			t.Fatalf("decrement %d: %v", i, err)
		}
	}
	if _, err := f.inventory.Decrement(ctx, it.ID); !errors.Is(err, ErrNotEnoughStock) {
		t.Fatalf("expected not enough stock at zero, got %v", err)
	}
	got, _ := f.inventory.GetByID(ctx, it.ID)
	if got.Quantity != 0 {
		t.Fatalf("quantity went negative: %d", got.Quantity)
	}

	if _, err := f.inventory.SetQuantity(ctx, it.ID, -5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative quantity accepted: %v", err)
	}
	set, err := f.inventory.SetQuantity(ctx, it.ID, 40)
	if err != nil || set.Quantity != 40 {
		t.Fatalf("set quantity: %v", err)
	}
	if _, err := f.inventory.Increment(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInventory_ListSortedByStockRatio(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.stock(t, "Napkins", 500, 150)
	f.stock(t, "Cups Small", 40, 100)
	f.stock(t, "Straws", 10, 0)
	f.stock(t, "Burger Boxes", 75, 75)

	list, err := f.inventory.List(ctx, repository.InventoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Cups Small", "Burger Boxes", "Napkins", "Straws"}
	for i, name := range want {
		if list[i].Name != name {
			t.Fatalf("position %d: got %s, want %s", i, list[i].Name, name)
		}
	}

	low, _ := f.inventory.List(ctx, repository.InventoryFilter{Stock: repository.StockLow})
	if len(low) != 2 {
		t.Fatalf("low filter: %+v", low)
	}
}

func TestInventory_StatsAndLowStock(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.stock(t, "Napkins", 500, 150)
	f.stock(t, "Cups Small", 40, 100)
	f.stock(t, "Burger Boxes", 75, 75)

	st, err := f.inventory.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalItems != 3 || st.LowStockCount != 2 || st.CriticalCount != 1 || st.InStockCount != 1 {
		t.Fatalf("stats: %+v", st)
	}

	low, _ := f.inventory.LowStock(ctx)
	if len(low) != 2 || low[0].Name != "Cups Small" || low[1].Name != "Burger Boxes" {
		t.Fatalf("low stock keeps stored order: %+v", low)
	}

	cats, _ := f.inventory.Categories(ctx)
	if len(cats) != 1 || cats[0] != "Packaging" {
		t.Fatalf("categories: %v", cats)
	}
}
