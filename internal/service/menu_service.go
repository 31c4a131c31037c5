package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

// MenuService wraps the menu catalog.
type MenuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

var ErrInvalidInput = errors.New("invalid input")

func validMenuItem(m domain.MenuItem) bool {
	return strings.TrimSpace(m.Name) != "" && m.Price >= 0 && !math.IsInf(m.Price, 1)
}

func (s *MenuService) Create(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	if !validMenuItem(m) {
		return nil, ErrInvalidInput
	}
	cp := m
	cp.ID = ""
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *MenuService) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Update replaces a catalog entry. Past sales keep their own copies.
func (s *MenuService) Update(ctx context.Context, m domain.MenuItem) (*domain.MenuItem, error) {
	if m.ID == "" || !validMenuItem(m) {
		return nil, ErrInvalidInput
	}
	cp := m
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *MenuService) List(ctx context.Context, f repository.MenuFilter) ([]domain.MenuItem, error) {
	return s.repo.List(ctx, f)
}

// Categories returns the distinct menu categories in alphabetical order.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx, repository.MenuFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, m := range items {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		out = append(out, m.Category)
	}
	sort.Strings(out)
	return out, nil
}
