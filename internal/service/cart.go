package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"frispy/internal/domain"
	"frispy/internal/repository"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// CartLine asks for quantity units of a menu item.
type CartLine struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// mergeLines validates lines and folds repeated menu items into the first
// occurrence.
func mergeLines(lines []CartLine) ([]CartLine, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidInput
	}
	index := make(map[string]int)
	out := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		if l.MenuItemID == "" || l.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
		if i, ok := index[l.MenuItemID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.MenuItemID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

// buildLineItems snapshots the current menu into line items and returns them
// with the sale total. Amounts are rounded to cents.
func buildLineItems(ctx context.Context, menu repository.MenuRepository, lines []CartLine) ([]domain.LineItem, float64, error) {
	merged, err := mergeLines(lines)
	if err != nil {
		return nil, 0, err
	}
	items := make([]domain.LineItem, 0, len(merged))
	total := decimal.Zero
	for _, l := range merged {
		m, err := menu.GetByID(ctx, l.MenuItemID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, fmt.Errorf("menu item %s: %w", l.MenuItemID, err)
		}
		if err != nil {
			return nil, 0, err
		}
		lineTotal := decimal.NewFromFloat(m.Price).Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		items = append(items, domain.LineItem{
			ID:       m.ID,
			Name:     m.Name,
			Image:    m.Image,
			Price:    m.Price,
			Quantity: l.Quantity,
			Total:    lineTotal.InexactFloat64(),
		})
		total = total.Add(lineTotal)
	}
	return items, total.Round(2).InexactFloat64(), nil
}

// orderNumber is "#" and the last six digits of the millisecond timestamp.
func orderNumber(t time.Time) string {
	return fmt.Sprintf("#%06d", t.UnixMilli()%1_000_000)
}
