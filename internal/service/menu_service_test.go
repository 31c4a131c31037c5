package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

func TestMenu_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	if _, err := f.menu.Create(ctx, domain.MenuItem{Name: " ", Price: 10}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.menu.Create(ctx, domain.MenuItem{Name: "Fry", Price: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, p := range []float64{math.NaN(), math.Inf(1)} {
		if _, err := f.menu.Create(ctx, domain.MenuItem{Name: "Fry", Price: p}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("price %v: expected validation error, got %v", p, err)
		}
	}
}

func TestMenu_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	m := f.menuItem(t, "FRISPY WAFFLE", 150)

	got, err := f.menu.GetByID(ctx, m.ID)
	if err != nil || got.ID != m.ID {
		t.Fatalf("get failed: %v", err)
	}

	m.Price = 160
	up, err := f.menu.Update(ctx, *m)
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Price != 160 {
		t.Fatalf("not updated")
	}
	if _, err := f.menu.Update(ctx, domain.MenuItem{Name: "x", Price: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("update without id: %v", err)
	}

	if err := f.menu.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := f.menu.GetByID(ctx, m.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMenu_ListAndCategories(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	for _, m := range []domain.MenuItem{
		{Name: "FRISPY COLD COFFEE", Price: 100, Category: "Beverages"},
		{Name: "FRISPY French FRY", Price: 70, Category: "Sides"},
		{Name: "Fried Chicken MOMO", Price: 130, Category: "Chicken"},
		{Name: "FRISPY Chipsy", Price: 120, Category: "Sides"},
	} {
		if _, err := f.menu.Create(ctx, m); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	sides, err := f.menu.List(ctx, repository.MenuFilter{Category: "Sides"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sides) != 2 || sides[0].Name != "FRISPY French FRY" {
		t.Fatalf("category filter: %+v", sides)
	}
	found, _ := f.menu.List(ctx, repository.MenuFilter{NameSubstring: "momo"})
	if len(found) != 1 {
		t.Fatalf("name search: %+v", found)
	}

	cats, err := f.menu.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if want := []string{"Beverages", "Chicken", "Sides"}; !reflect.DeepEqual(cats, want) {
		t.Fatalf("categories = %v, want %v", cats, want)
	}
}
