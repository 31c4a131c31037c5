package analytics

import (
	"time"

	"frispy/internal/domain"
)

// InventoryStats counts inventory items per stock tier. Critical items are
// also counted as low stock.
type InventoryStats struct {
	TotalItems    int `json:"totalItems"`
	LowStockCount int `json:"lowStockCount"`
	CriticalCount int `json:"criticalCount"`
	InStockCount  int `json:"inStockCount"`
}

// Dashboard is everything the home screen renders in one call.
type Dashboard struct {
	GeneratedAt      time.Time              `json:"generatedAt"`
	Daily            Summary                `json:"daily"`
	Weekly           Summary                `json:"weekly"`
	Monthly          Summary                `json:"monthly"`
	BestSellers      []BestSeller           `json:"bestSellers"`
	DailyBestSellers []BestSeller           `json:"dailyBestSellers"`
	WeeklyChart      []DayBucket            `json:"weeklyChart"`
	MonthlyChart     []DayBucket            `json:"monthlyChart"`
	PeakHours        []HourBucket           `json:"peakHours"`
	LowStock         []domain.InventoryItem `json:"lowStock"`
	Inventory        InventoryStats         `json:"inventory"`
}

// CountInventory tallies stock tiers.
func CountInventory(inventory []domain.InventoryItem) InventoryStats {
	stats := InventoryStats{TotalItems: len(inventory)}
	for _, it := range inventory {
		switch it.Status() {
		case domain.StockCritical:
			stats.CriticalCount++
			stats.LowStockCount++
		case domain.StockLow:
			stats.LowStockCount++
		default:
			stats.InStockCount++
		}
	}
	return stats
}

// BuildDashboard recomputes all aggregates from full snapshots. Peak hours use
// now's location.
func BuildDashboard(sales []domain.SaleTransaction, inventory []domain.InventoryItem, now time.Time) Dashboard {
	daily := DailySales(sales, now)
	return Dashboard{
		GeneratedAt:      now,
		Daily:            daily,
		Weekly:           WeeklySales(sales, now),
		Monthly:          MonthlySales(sales, now),
		BestSellers:      BestSellers(sales, DefaultBestSellerLimit),
		DailyBestSellers: BestSellers(daily.Sales, DefaultBestSellerLimit),
		WeeklyChart:      SalesByDay(sales, 7, now),
		MonthlyChart:     SalesByDay(sales, 30, now),
		PeakHours:        PeakHours(sales, now.Location()),
		LowStock:         LowStockItems(inventory),
		Inventory:        CountInventory(inventory),
	}
}
