package repository

import (
	"context"
	"time"

	"frispy/internal/domain"
)

// SaleStore is the sale log.
type SaleStore struct{ store *Store }

func NewSaleStore(store *Store) *SaleStore { return &SaleStore{store: store} }

var _ SaleRepository = (*SaleStore)(nil)

func saleID(s domain.SaleTransaction) string { return s.ID }

// Create assigns an id and, when unset, the current time.
func (ss *SaleStore) Create(ctx context.Context, s *domain.SaleTransaction) error {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	return insert(ctx, ss.store, KeySales, *s)
}

func (ss *SaleStore) GetByID(ctx context.Context, id string) (*domain.SaleTransaction, error) {
	return get(ctx, ss.store, KeySales, id, saleID)
}

func (ss *SaleStore) Delete(ctx context.Context, id string) error {
	return remove(ctx, ss.store, KeySales, id, saleID)
}

func (ss *SaleStore) List(ctx context.Context) ([]domain.SaleTransaction, error) {
	return listAll[domain.SaleTransaction](ctx, ss.store, KeySales)
}

func (ss *SaleStore) ReplaceAll(ctx context.Context, sales []domain.SaleTransaction) error {
	return replaceAll(ctx, ss.store, KeySales, sales)
}

// OrderStore is the order collection.
type OrderStore struct{ store *Store }

func NewOrderStore(store *Store) *OrderStore { return &OrderStore{store: store} }

var _ OrderRepository = (*OrderStore)(nil)

func orderID(o domain.Order) string { return o.ID }

func (ords *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now()
	}
	return insert(ctx, ords.store, KeyOrders, *o)
}

func (ords *OrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return get(ctx, ords.store, KeyOrders, id, orderID)
}

func (ords *OrderStore) Update(ctx context.Context, o *domain.Order) error {
	return replace(ctx, ords.store, KeyOrders, o.ID, *o, orderID)
}

func (ords *OrderStore) Delete(ctx context.Context, id string) error {
	return remove(ctx, ords.store, KeyOrders, id, orderID)
}

func (ords *OrderStore) List(ctx context.Context) ([]domain.Order, error) {
	return listAll[domain.Order](ctx, ords.store, KeyOrders)
}
