package domain

import "time"

// MenuItem is a catalog entry offered at the counter.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// LineItem is a copy of a menu item taken at the moment of sale.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// SaleTransaction is one entry of the append-only sale log.
type SaleTransaction struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}

// Order is a sale with an order number and a kitchen status.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Items       []LineItem  `json:"items"`
	Total       float64     `json:"total"`
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
}

// InventoryItem is a stock entry for an ingredient or consumable.
type InventoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
}

// StockStatus is derived from quantity and minQuantity, never stored.
type StockStatus string

const (
	StockCritical StockStatus = "critical"
	StockLow      StockStatus = "low"
	StockInStock  StockStatus = "inStock"
)

// Status classifies the item. Both boundaries are inclusive.
func (i InventoryItem) Status() StockStatus {
	if float64(i.Quantity) <= float64(i.MinQuantity)*0.5 {
		return StockCritical
	}
	if i.IsLowStock() {
		return StockLow
	}
	return StockInStock
}

// IsLowStock reports quantity <= minQuantity; critical items are low too.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}
