package repository

import (
	"context"

	"frispy/internal/domain"
)

// InventoryStore is the stock collection.
type InventoryStore struct{ store *Store }

func NewInventoryStore(store *Store) *InventoryStore { return &InventoryStore{store: store} }

var _ InventoryRepository = (*InventoryStore)(nil)

func inventoryID(it domain.InventoryItem) string { return it.ID }

func (is *InventoryStore) Create(ctx context.Context, it *domain.InventoryItem) error {
	if it.ID == "" {
		it.ID = newID()
	}
	return insert(ctx, is.store, KeyInventory, *it)
}

func (is *InventoryStore) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return get(ctx, is.store, KeyInventory, id, inventoryID)
}

func (is *InventoryStore) Update(ctx context.Context, it *domain.InventoryItem) error {
	return replace(ctx, is.store, KeyInventory, it.ID, *it, inventoryID)
}

func (is *InventoryStore) Delete(ctx context.Context, id string) error {
	return remove(ctx, is.store, KeyInventory, id, inventoryID)
}

func (is *InventoryStore) List(ctx context.Context, f InventoryFilter) ([]domain.InventoryItem, error) {
	items, err := listAll[domain.InventoryItem](ctx, is.store, KeyInventory)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		switch f.Stock {
		case StockLow:
			if !it.IsLowStock() {
				continue
			}
		case StockIn:
			if it.IsLowStock() {
				continue
			}
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Query != "" &&
			!containsIgnoreCase(it.Name, f.Query) &&
			!containsIgnoreCase(it.Category, f.Query) &&
			!containsIgnoreCase(it.Supplier, f.Query) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (is *InventoryStore) ReplaceAll(ctx context.Context, items []domain.InventoryItem) error {
	return replaceAll(ctx, is.store, KeyInventory, items)
}
