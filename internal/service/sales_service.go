package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"frispy/internal/analytics"
	"frispy/internal/domain"
	"frispy/internal/logger"
	"frispy/internal/repository"
)

// SalesService owns checkout and the sale log.
type SalesService struct {
	menu   repository.MenuRepository
	sales  repository.SaleRepository
	orders repository.OrderRepository
	tx     repository.TxManager
	clock  Clock
	log    logrus.FieldLogger
}

func NewSalesService(
	menu repository.MenuRepository,
	sales repository.SaleRepository,
	orders repository.OrderRepository,
	tx repository.TxManager,
	clock Clock,
	log logrus.FieldLogger,
) *SalesService {
	return &SalesService{menu: menu, sales: sales, orders: orders, tx: tx, clock: clock, log: log}
}

// CheckoutResult is the order shown to staff and the sale kept for analytics.
type CheckoutResult struct {
	Order domain.Order           `json:"order"`
	Sale  domain.SaleTransaction `json:"sale"`
}

// Checkout turns a cart into a completed order and a sale sharing the same
// items, total and timestamp. Walk-up sales skip pending and preparing.
func (s *SalesService) Checkout(ctx context.Context, lines []CartLine) (*CheckoutResult, error) {
	var res CheckoutResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, total, err := buildLineItems(ctx, s.menu, lines)
		if err != nil {
			return err
		}
		now := s.clock()

		res.Order = domain.Order{
			OrderNumber: orderNumber(now),
			Items:       items,
			Total:       total,
			Status:      domain.OrderStatusCompleted,
			Timestamp:   now,
		}
		if err := s.orders.Create(ctx, &res.Order); err != nil {
			return err
		}

		res.Sale = domain.SaleTransaction{
			Items:     append([]domain.LineItem(nil), items...),
			Total:     total,
			Timestamp: now,
		}
		return s.sales.Create(ctx, &res.Sale)
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			logger.LogError(s.log, "service", "Checkout", "processing sale", lines, err)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order": res.Order.OrderNumber,
		"sale":  res.Sale.ID,
		"total": analytics.FormatCurrency(res.Sale.Total),
	}).Info("checkout completed")
	return &res, nil
}

// List returns the full sale log in insertion order.
func (s *SalesService) List(ctx context.Context) ([]domain.SaleTransaction, error) {
	return s.sales.List(ctx)
}

// InRange returns sales with from <= timestamp <= to.
func (s *SalesService) InRange(ctx context.Context, from, to time.Time) ([]domain.SaleTransaction, error) {
	if to.Before(from) {
		return nil, ErrInvalidInput
	}
	all, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SalesInRange(all, from, to), nil
}

func (s *SalesService) GetByID(ctx context.Context, id string) (*domain.SaleTransaction, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.sales.GetByID(ctx, id)
}

// Delete removes a sale from the log. Only used to correct mistakes.
func (s *SalesService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.sales.Delete(ctx, id)
}
