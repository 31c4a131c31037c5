package service

import (
	"context"
	"errors"
	"sort"

	"frispy/internal/analytics"
	"frispy/internal/domain"
	"frispy/internal/repository"
)

// OrderService tracks orders through the kitchen: pending, preparing and
// then completed or cancelled.
type OrderService struct {
	menu   repository.MenuRepository
	orders repository.OrderRepository
	tx     repository.TxManager
	clock  Clock
}

func NewOrderService(menu repository.MenuRepository, orders repository.OrderRepository, tx repository.TxManager, clock Clock) *OrderService {
	return &OrderService{menu: menu, orders: orders, tx: tx, clock: clock}
}

var (
	ErrNotEnoughStock = errors.New("not enough stock")
	ErrInvalidState   = errors.New("invalid state")
)

// CreateOrder records an order for the given cart. An empty status means
// pending. Orders created here do not enter the sale log; checkout does that.
func (s *OrderService) CreateOrder(ctx context.Context, lines []CartLine, status domain.OrderStatus) (*domain.Order, error) {
	if status == "" {
		status = domain.OrderStatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, total, err := buildLineItems(ctx, s.menu, lines)
		if err != nil {
			return err
		}
		now := s.clock()
		o := domain.Order{
			OrderNumber: orderNumber(now),
			Items:       items,
			Total:       total,
			Status:      status,
			Timestamp:   now,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetOrder returns an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns orders newest first, optionally only those in status.
func (s *OrderService) ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Timestamp.After(out[b].Timestamp) })
	return out, nil
}

// TodaysOrders returns orders placed on the current calendar day, newest first.
func (s *OrderService) TodaysOrders(ctx context.Context) ([]domain.Order, error) {
	all, err := s.ListOrders(ctx, "")
	if err != nil {
		return nil, err
	}
	now := s.clock()
	out := make([]domain.Order, 0)
	for _, o := range all {
		if analytics.IsToday(o.Timestamp, now) {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus moves an order one step through the state machine. Terminal
// orders and skipped steps return ErrInvalidState.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !next.Valid() {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(next) {
			return ErrInvalidState
		}
		o.Status = next
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelOrder is UpdateStatus(cancelled).
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.UpdateStatus(ctx, id, domain.OrderStatusCancelled)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.orders.Delete(ctx, id)
}
