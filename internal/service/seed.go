package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

// Sample data sizes.
const (
	SampleDays        = 90
	minSalesPerDay    = 10
	maxSalesPerDay    = 29
	maxItemsPerSale   = 3
	maxQuantityPerRow = 3
)

// SampleMenu is the FRISPY counter menu.
func SampleMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "1", Name: "FRISPY Chicken FRY", Price: 90, Category: "Chicken", Image: "🍗"},
		{ID: "2", Name: "FRISPY French FRY", Price: 70, Category: "Sides", Image: "🍟"},
		{ID: "3", Name: "FRISPY Meat BOX", Price: 110, Category: "Chicken", Image: "🍱"},
		{ID: "4", Name: "Fried Chicken MOMO", Price: 130, Category: "Chicken", Image: "🥟"},
		{ID: "5", Name: "Fried Chicken NAGA", Price: 140, Category: "Chicken", Image: "🥟"},
		{ID: "6", Name: "Fried Chicken BBQ", Price: 150, Category: "Chicken", Image: "🥟"},
		{ID: "7", Name: "Steamed Chicken MOMO", Price: 130, Category: "Chicken", Image: "🥟"},
		{ID: "8", Name: "Steamed Chicken NAGA", Price: 140, Category: "Chicken", Image: "🥟"},
		{ID: "9", Name: "Steamed Chicken BBQ", Price: 150, Category: "Chicken", Image: "🥟"},
		{ID: "10", Name: "FRISPY Chipsy", Price: 120, Category: "Sides", Image: "🥔"},
		{ID: "11", Name: "FRISPY Chicken Cutlet", Price: 190, Category: "Chicken", Image: "🍗"},
		{ID: "12", Name: "FRISPY Grill Chicken PASTA", Price: 150, Category: "Chicken", Image: "🍝"},
		{ID: "13", Name: "FRISPY WAFFLE", Price: 150, Category: "Sides", Image: "🧇"},
		{ID: "14", Name: "FRISPY BUFFALO WINGS", Price: 140, Category: "Chicken", Image: "🍗"},
		{ID: "15", Name: "BUFFALO WINGS NAGA", Price: 140, Category: "Chicken", Image: "🍗"},
		{ID: "16", Name: "BUFFALO WINGS BBQ", Price: 160, Category: "Chicken", Image: "🍗"},
		{ID: "17", Name: "FRISPY COLD COFFEE", Price: 100, Category: "Beverages", Image: "☕"},
		{ID: "18", Name: "FRISPY FIZZY LEMON", Price: 100, Category: "Beverages", Image: "🍋"},
		{ID: "19", Name: "FRISPY BLUE OCEAN", Price: 110, Category: "Beverages", Image: "🥤"},
	}
}

// SampleInventory is the starting stock list.
func SampleInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: "1", Name: "Burger Buns", Quantity: 150, MinQuantity: 50, Unit: "pcs", Category: "Bakery", Supplier: "Local Bakery"},
		{ID: "2", Name: "Beef Patties", Quantity: 100, MinQuantity: 30, Unit: "pcs", Category: "Meat", Supplier: "Meat Supplier Co"},
		{ID: "3", Name: "Chicken Patties", Quantity: 80, MinQuantity: 30, Unit: "pcs", Category: "Meat", Supplier: "Meat Supplier Co"},
		{ID: "4", Name: "Cheese Slices", Quantity: 200, MinQuantity: 50, Unit: "pcs", Category: "Dairy", Supplier: "Dairy Fresh"},
		{ID: "5", Name: "Lettuce", Quantity: 20, MinQuantity: 10, Unit: "kg", Category: "Vegetables", Supplier: "Farm Fresh"},
		{ID: "6", Name: "Tomatoes", Quantity: 15, MinQuantity: 10, Unit: "kg", Category: "Vegetables", Supplier: "Farm Fresh"},
		{ID: "7", Name: "Onions", Quantity: 12, MinQuantity: 8, Unit: "kg", Category: "Vegetables", Supplier: "Farm Fresh"},
		{ID: "8", Name: "Frozen Fries", Quantity: 50, MinQuantity: 20, Unit: "kg", Category: "Frozen", Supplier: "Frozen Foods Inc"},
		{ID: "9", Name: "Coke Syrup", Quantity: 8, MinQuantity: 3, Unit: "boxes", Category: "Beverages", Supplier: "Beverage Distributor"},
		{ID: "10", Name: "Sprite Syrup", Quantity: 6, MinQuantity: 3, Unit: "boxes", Category: "Beverages", Supplier: "Beverage Distributor"},
		{ID: "11", Name: "Cups Small", Quantity: 300, MinQuantity: 100, Unit: "pcs", Category: "Packaging", Supplier: "Pack Pro"},
		{ID: "12", Name: "Cups Large", Quantity: 250, MinQuantity: 100, Unit: "pcs", Category: "Packaging", Supplier: "Pack Pro"},
		{ID: "13", Name: "Burger Boxes", Quantity: 200, MinQuantity: 75, Unit: "pcs", Category: "Packaging", Supplier: "Pack Pro"},
		{ID: "14", Name: "Napkins", Quantity: 500, MinQuantity: 150, Unit: "pcs", Category: "Packaging", Supplier: "Pack Pro"},
	}
}

// GenerateSales builds SampleDays of random history ending at now. Day i gets
// between 10 and 29 sales spaced one minute apart going back from now-i days,
// so no sale lands in the future.
func GenerateSales(menu []domain.MenuItem, now time.Time, rng *rand.Rand) []domain.SaleTransaction {
	if len(menu) == 0 {
		return []domain.SaleTransaction{}
	}
	sales := make([]domain.SaleTransaction, 0, SampleDays*(minSalesPerDay+maxSalesPerDay)/2)
	for i := 0; i < SampleDays; i++ {
		day := now.AddDate(0, 0, -i)
		n := minSalesPerDay + rng.IntN(maxSalesPerDay-minSalesPerDay+1)
		for j := 0; j < n; j++ {
			rows := 1 + rng.IntN(maxItemsPerSale)
			items := make([]domain.LineItem, 0, rows)
			total := decimal.Zero
			for k := 0; k < rows; k++ {
				m := menu[rng.IntN(len(menu))]
				q := 1 + rng.IntN(maxQuantityPerRow)
				lineTotal := decimal.NewFromFloat(m.Price).Mul(decimal.NewFromInt(int64(q))).Round(2)
				items = append(items, domain.LineItem{
					ID:       m.ID,
					Name:     m.Name,
					Image:    m.Image,
					Price:    m.Price,
					Quantity: q,
					Total:    lineTotal.InexactFloat64(),
				})
				total = total.Add(lineTotal)
			}
			sales = append(sales, domain.SaleTransaction{
				ID:        fmt.Sprintf("sale_%d_%d", i, j),
				Items:     items,
				Total:     total.Round(2).InexactFloat64(),
				Timestamp: day.Add(-time.Duration(j) * time.Minute),
			})
		}
	}
	return sales
}

// Seeder replaces the menu, inventory and sale log with sample data.
type Seeder struct {
	menu      repository.MenuRepository
	inventory repository.InventoryRepository
	sales     repository.SaleRepository
	tx        repository.TxManager
	clock     Clock
	rng       *rand.Rand
}

// NewSeeder returns a seeder. A nil rng uses a randomly seeded source.
func NewSeeder(
	menu repository.MenuRepository,
	inventory repository.InventoryRepository,
	sales repository.SaleRepository,
	tx repository.TxManager,
	clock Clock,
	rng *rand.Rand,
) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Seeder{menu: menu, inventory: inventory, sales: sales, tx: tx, clock: clock, rng: rng}
}

// SeedResult reports how many records were written.
type SeedResult struct {
	MenuItems      int `json:"menuItems"`
	InventoryItems int `json:"inventoryItems"`
	Sales          int `json:"sales"`
}

func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	menu := SampleMenu()
	inv := SampleInventory()
	var res SeedResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		sales := GenerateSales(menu, s.clock(), s.rng)
		if err := s.menu.ReplaceAll(ctx, menu); err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
		if err := s.inventory.ReplaceAll(ctx, inv); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
		if err := s.sales.ReplaceAll(ctx, sales); err != nil {
			return fmt.Errorf("seed sales: %w", err)
		}
		res = SeedResult{MenuItems: len(menu), InventoryItems: len(inv), Sales: len(sales)}
		return nil
	})
	return res, err
}
