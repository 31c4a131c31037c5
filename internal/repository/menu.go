package repository

import (
	"context"

	"frispy/internal/domain"
)

// MenuStore is the menu collection.
type MenuStore struct{ store *Store }

func NewMenuStore(store *Store) *MenuStore { return &MenuStore{store: store} }

var _ MenuRepository = (*MenuStore)(nil)

func menuID(m domain.MenuItem) string { return m.ID }

func (ms *MenuStore) Create(ctx context.Context, m *domain.MenuItem) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return insert(ctx, ms.store, KeyMenuItems, *m)
}

func (ms *MenuStore) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	return get(ctx, ms.store, KeyMenuItems, id, menuID)
}

func (ms *MenuStore) Update(ctx context.Context, m *domain.MenuItem) error {
	return replace(ctx, ms.store, KeyMenuItems, m.ID, *m, menuID)
}

func (ms *MenuStore) Delete(ctx context.Context, id string) error {
	return remove(ctx, ms.store, KeyMenuItems, id, menuID)
}

func (ms *MenuStore) List(ctx context.Context, f MenuFilter) ([]domain.MenuItem, error) {
	items, err := listAll[domain.MenuItem](ctx, ms.store, KeyMenuItems)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MenuItem, 0, len(items))
	for _, m := range items {
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if !containsIgnoreCase(m.Name, f.NameSubstring) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (ms *MenuStore) ReplaceAll(ctx context.Context, items []domain.MenuItem) error {
	return replaceAll(ctx, ms.store, KeyMenuItems, items)
}
