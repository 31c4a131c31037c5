// Package analytics turns the sale log and the inventory list into the
// aggregates shown on the dashboard and report endpoints.
//
// Every function is pure: it reads the slices it is given, never mutates or
// retains them, and takes the current time as an argument.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"frispy/internal/domain"
)

// DefaultBestSellerLimit is used when BestSellers is called with limit <= 0.
const DefaultBestSellerLimit = 5

const dayKeyLayout = "2006-01-02"

// amount converts a stored total for summing. NaN and infinite values count
// as zero.
func amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Window selects sales by timestamp relative to now.
type Window func(ts, now time.Time) bool

// IsToday reports whether ts falls on now's calendar day in now's location.
func IsToday(ts, now time.Time) bool {
	ts = ts.In(now.Location())
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsThisWeek is a rolling seven day window, inclusive on both ends. It is not
// aligned to calendar weeks.
func IsThisWeek(ts, now time.Time) bool {
	weekAgo := now.AddDate(0, 0, -7)
	return !ts.Before(weekAgo) && !ts.After(now)
}

// IsThisMonth reports whether ts falls in now's calendar month and year.
func IsThisMonth(ts, now time.Time) bool {
	ts = ts.In(now.Location())
	return ts.Year() == now.Year() && ts.Month() == now.Month()
}

// Summary is a windowed total.
type Summary struct {
	Total float64                  `json:"total"`
	Count int                      `json:"count"`
	Sales []domain.SaleTransaction `json:"sales"`
}

// SummarizeWindow filters sales by in and sums their totals. Sales keep their
// input order.
func SummarizeWindow(sales []domain.SaleTransaction, now time.Time, in Window) Summary {
	filtered := make([]domain.SaleTransaction, 0)
	total := decimal.Zero
	for _, s := range sales {
		if !in(s.Timestamp, now) {
			continue
		}
		filtered = append(filtered, s)
		total = total.Add(amount(s.Total))
	}
	return Summary{Total: total.InexactFloat64(), Count: len(filtered), Sales: filtered}
}

func DailySales(sales []domain.SaleTransaction, now time.Time) Summary {
	return SummarizeWindow(sales, now, IsToday)
}

func WeeklySales(sales []domain.SaleTransaction, now time.Time) Summary {
	return SummarizeWindow(sales, now, IsThisWeek)
}

func MonthlySales(sales []domain.SaleTransaction, now time.Time) Summary {
	return SummarizeWindow(sales, now, IsThisMonth)
}

// BestSeller is a menu item ranked by units sold.
type BestSeller struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// BestSellers groups line items by id and ranks them by quantity. Name and
// image come from the first line item seen for an id; ties keep first-seen
// order.
func BestSellers(sales []domain.SaleTransaction, limit int) []BestSeller {
	if limit <= 0 {
		limit = DefaultBestSellerLimit
	}

	type group struct {
		row     BestSeller
		revenue decimal.Decimal
	}
	index := make(map[string]int)
	groups := make([]group, 0)
	for _, s := range sales {
		for _, it := range s.Items {
			i, ok := index[it.ID]
			if !ok {
				index[it.ID] = len(groups)
				groups = append(groups, group{
					row:     BestSeller{ID: it.ID, Name: it.Name, Image: it.Image},
					revenue: decimal.Zero,
				})
				i = len(groups) - 1
			}
			groups[i].row.Quantity += it.Quantity
			groups[i].revenue = groups[i].revenue.Add(amount(it.Total))
		}
	}

	out := make([]BestSeller, len(groups))
	for i, g := range groups {
		out[i] = g.row
		out[i].Revenue = g.revenue.InexactFloat64()
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Quantity > out[b].Quantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DayBucket is one calendar day of a sales chart.
type DayBucket struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// SalesByDay returns one bucket per calendar day from days-1 days ago through
// today, oldest first. Days without sales are present with zero values and
// sales outside the range are ignored.
func SalesByDay(sales []domain.SaleTransaction, days int, now time.Time) []DayBucket {
	if days <= 0 {
		return []DayBucket{}
	}

	loc := now.Location()
	index := make(map[string]int, days)
	totals := make([]decimal.Decimal, days)
	out := make([]DayBucket, days)
	for i := 0; i < days; i++ {
		key := now.AddDate(0, 0, -(days - 1 - i)).Format(dayKeyLayout)
		index[key] = i
		totals[i] = decimal.Zero
		out[i] = DayBucket{Date: key}
	}

	for _, s := range sales {
		i, ok := index[s.Timestamp.In(loc).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		totals[i] = totals[i].Add(amount(s.Total))
		out[i].Count++
	}
	for i := range out {
		out[i].Total = totals[i].InexactFloat64()
	}
	return out
}

// HourBucket is one hour of the day in the peak-hour distribution.
type HourBucket struct {
	Hour  int     `json:"hour"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// PeakHours returns all 24 hours sorted by sale count, busiest first. Hours with
// equal counts stay in ascending hour order. A nil loc means time.Local.
func PeakHours(sales []domain.SaleTransaction, loc *time.Location) []HourBucket {
	if loc == nil {
		loc = time.Local
	}

	var totals [24]decimal.Decimal
	out := make([]HourBucket, 24)
	for h := range out {
		out[h] = HourBucket{Hour: h}
		totals[h] = decimal.Zero
	}
	for _, s := range sales {
		h := s.Timestamp.In(loc).Hour()
		out[h].Count++
		totals[h] = totals[h].Add(amount(s.Total))
	}
	for h := range out {
		out[h].Total = totals[h].InexactFloat64()
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

// LowStockItems keeps items with quantity <= minQuantity in input order.
func LowStockItems(inventory []domain.InventoryItem) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0)
	for _, it := range inventory {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}

// SalesInRange keeps sales with start <= timestamp <= end.
func SalesInRange(sales []domain.SaleTransaction, start, end time.Time) []domain.SaleTransaction {
	out := make([]domain.SaleTransaction, 0)
	for _, s := range sales {
		if s.Timestamp.Before(start) || s.Timestamp.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}
