// Package app holds process-wide state that the HTTP layer reports on:
// whether the data store has been initialized and with what.
package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"frispy/internal/domain"
	"frispy/internal/service"
)

type Seeder interface {
	Seed(ctx context.Context) (service.SeedResult, error)
}

type Clearer interface {
	Clear(ctx context.Context) error
}

type SaleLister interface {
	List(ctx context.Context) ([]domain.SaleTransaction, error)
}

// State tracks whether the store is ready. main owns it and hands it to the
// HTTP layer.
type State struct {
	initialized atomic.Bool
	seeded      atomic.Bool
	mu          sync.Mutex
	initErr     error
	seeder      Seeder
	sales       SaleLister
	clearer     Clearer
	log         logrus.FieldLogger
}

func NewState(seeder Seeder, sales SaleLister, clearer Clearer, log logrus.FieldLogger) *State {
	return &State{seeder: seeder, sales: sales, clearer: clearer, log: log}
}

// Initialize prepares the store once. With seed set, an empty sale log is
// filled with sample data; existing data is never overwritten.
// The error of the last failed attempt is kept until one succeeds.
func (s *State) Initialize(ctx context.Context, seed bool) error {
	if s.initialized.Load() {
		return nil
	}
	if err := s.initialize(ctx, seed); err != nil {
		s.setErr(err)
		return err
	}
	s.setErr(nil)
	s.initialized.Store(true)
	return nil
}

func (s *State) initialize(ctx context.Context, seed bool) error {
	if !seed {
		return nil
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if len(sales) > 0 {
		s.log.WithField("sales", len(sales)).Info("existing data found, skipping sample data")
		return nil
	}
	if _, err := s.Reseed(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

func (s *State) setErr(err error) {
	s.mu.Lock()
	s.initErr = err
	s.mu.Unlock()
}

func (s *State) Initialized() bool { return s.initialized.Load() }

// Err returns why the last Initialize attempt failed, or nil.
func (s *State) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initErr
}

// Seeded reports whether the current data came from the sample generator.
func (s *State) Seeded() bool { return s.seeded.Load() }

// Reseed replaces menu, inventory and sales with sample data.
func (s *State) Reseed(ctx context.Context) (service.SeedResult, error) {
	res, err := s.seeder.Seed(ctx)
	if err != nil {
		return res, err
	}
	s.seeded.Store(true)
	s.log.WithFields(logrus.Fields{
		"menuItems":      res.MenuItems,
		"inventoryItems": res.InventoryItems,
		"sales":          res.Sales,
	}).Info("sample data loaded")
	return res, nil
}

// ClearAll removes every collection. The store stays initialized and empty.
func (s *State) ClearAll(ctx context.Context) error {
	if err := s.clearer.Clear(ctx); err != nil {
		return err
	}
	s.seeded.Store(false)
	s.log.Info("all data cleared")
	return nil
}
