package repository

import (
	"context"
	"errors"
	"strings"

	"frispy/internal/domain"
)

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("not found")

// KV is the blob store the repositories persist into. Values are opaque to it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
}

// MenuFilter narrows menu listings. Empty fields match everything.
type MenuFilter struct {
	Category      string
	NameSubstring string
}

// StockFilter selects inventory by stock tier.
type StockFilter string

const (
	StockAll StockFilter = ""
	StockLow StockFilter = "low"
	StockIn  StockFilter = "in"
)

// InventoryFilter narrows inventory listings. Query matches name, category or
// supplier.
type InventoryFilter struct {
	Query    string
	Category string
	Stock    StockFilter
}

type MenuRepository interface {
	Create(ctx context.Context, m *domain.MenuItem) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Update(ctx context.Context, m *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f MenuFilter) ([]domain.MenuItem, error)
	ReplaceAll(ctx context.Context, items []domain.MenuItem) error
}

type InventoryRepository interface {
	Create(ctx context.Context, it *domain.InventoryItem) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	Update(ctx context.Context, it *domain.InventoryItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f InventoryFilter) ([]domain.InventoryItem, error)
	ReplaceAll(ctx context.Context, items []domain.InventoryItem) error
}

// SaleRepository is the append-only sale log. List returns the full history in
// insertion order.
type SaleRepository interface {
	Create(ctx context.Context, s *domain.SaleTransaction) error
	GetByID(ctx context.Context, id string) (*domain.SaleTransaction, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.SaleTransaction, error)
	ReplaceAll(ctx context.Context, sales []domain.SaleTransaction) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Order, error)
}

// TxManager runs fn with exclusive access to the store.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
