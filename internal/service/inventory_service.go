package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"frispy/internal/analytics"
	"frispy/internal/domain"
	"frispy/internal/repository"
)

// InventoryService manages stock entries. Quantities never go below zero.
type InventoryService struct {
	repo repository.InventoryRepository
	tx   repository.TxManager
}

func NewInventoryService(repo repository.InventoryRepository, tx repository.TxManager) *InventoryService {
	return &InventoryService{repo: repo, tx: tx}
}

func validInventoryItem(it domain.InventoryItem) bool {
	return strings.TrimSpace(it.Name) != "" && it.Quantity >= 0 && it.MinQuantity >= 0
}

func (s *InventoryService) Create(ctx context.Context, it domain.InventoryItem) (*domain.InventoryItem, error) {
	if !validInventoryItem(it) {
		return nil, ErrInvalidInput
	}
	cp := it
	cp.ID = ""
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *InventoryService) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *InventoryService) Update(ctx context.Context, it domain.InventoryItem) (*domain.InventoryItem, error) {
	if it.ID == "" || !validInventoryItem(it) {
		return nil, ErrInvalidInput
	}
	cp := it
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List returns matching items, most depleted (lowest quantity/minQuantity) first.
func (s *InventoryService) List(ctx context.Context, f repository.InventoryFilter) ([]domain.InventoryItem, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(a, b int) bool { return stockRatio(items[a]) < stockRatio(items[b]) })
	return items, nil
}

func stockRatio(it domain.InventoryItem) float64 {
	if it.MinQuantity <= 0 {
		return math.Inf(1)
	}
	return float64(it.Quantity) / float64(it.MinQuantity)
}

// Increment adds one unit.
func (s *InventoryService) Increment(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.adjust(ctx, id, func(q int) (int, error) { return q + 1, nil })
}

// Decrement removes one unit; an empty item returns ErrNotEnoughStock.
func (s *InventoryService) Decrement(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.adjust(ctx, id, func(q int) (int, error) {
		if q <= 0 {
			return q, ErrNotEnoughStock
		}
		return q - 1, nil
	})
}

// SetQuantity overwrites the stock count after a physical count.
func (s *InventoryService) SetQuantity(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidInput
	}
	return s.adjust(ctx, id, func(int) (int, error) { return quantity, nil })
}

func (s *InventoryService) adjust(ctx context.Context, id string, next func(q int) (int, error)) (*domain.InventoryItem, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	var updated *domain.InventoryItem
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		it, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		q, err := next(it.Quantity)
		if err != nil {
			return err
		}
		it.Quantity = q
		if err := s.repo.Update(ctx, it); err != nil {
			return err
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// LowStock returns items at or below their reorder threshold in stored order.
func (s *InventoryService) LowStock(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.repo.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.LowStockItems(items), nil
}

func (s *InventoryService) Stats(ctx context.Context) (analytics.InventoryStats, error) {
	items, err := s.repo.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return analytics.InventoryStats{}, err
	}
	return analytics.CountInventory(items), nil
}

// Categories returns the distinct inventory categories in alphabetical order.
func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, it := range items {
		if _, ok := seen[it.Category]; !ok {
			seen[it.Category] = struct{}{}
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}
