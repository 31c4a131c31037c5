package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"frispy/internal/domain"
	"frispy/internal/logger"
	"frispy/internal/repository"
	"frispy/internal/service"
)

func newState(t *testing.T) (*State, *repository.SaleStore) {
	t.Helper()
	store := repository.NewStore(repository.NewMemoryKV(), logger.Discard())
	tx := repository.NewLocalTx(store)
	sales := repository.NewSaleStore(store)
	clock := func() time.Time { return time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC) }
	seeder := service.NewSeeder(repository.NewMenuStore(store), repository.NewInventoryStore(store), sales, tx, clock, rand.New(rand.NewPCG(1, 1)))
	return NewState(seeder, sales, store, logger.Discard()), sales
}

func TestInitialize_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	st, sales := newState(t)
	if st.Initialized() {
		t.Fatalf("initialized before Initialize")
	}
	if err := st.Initialize(ctx, true); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !st.Initialized() || !st.Seeded() {
		t.Fatalf("state after initialize: %v %v", st.Initialized(), st.Seeded())
	}
	all, _ := sales.List(ctx)
	if len(all) == 0 {
		t.Fatalf("no sample sales")
	}
}

func TestInitialize_KeepsExistingData(t *testing.T) {
	ctx := context.Background()
	st, sales := newState(t)
	existing := domain.SaleTransaction{Total: 90, Timestamp: time.Now()}
	if err := sales.Create(ctx, &existing); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Initialize(ctx, true); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	all, _ := sales.List(ctx)
	if len(all) != 1 || st.Seeded() {
		t.Fatalf("existing data overwritten: %d sales", len(all))
	}
}

func TestInitialize_WithoutSeed(t *testing.T) {
	ctx := context.Background()
	st, sales := newState(t)
	if err := st.Initialize(ctx, false); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	all, _ := sales.List(ctx)
	if !st.Initialized() || len(all) != 0 {
		t.Fatalf("unexpected data: %d", len(all))
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	st, sales := newState(t)
	if _, err := st.Reseed(ctx); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if err := st.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, err := sales.List(ctx)
	if err != nil || len(all) != 0 || st.Seeded() {
		t.Fatalf("after clear: %d %v", len(all), err)
	}
}

type failingSeeder struct{}

func (failingSeeder) Seed(context.Context) (service.SeedResult, error) {
	return service.SeedResult{}, errors.New("disk full")
}

func TestInitialize_SeedFailure(t *testing.T) {
	store := repository.NewStore(repository.NewMemoryKV(), logger.Discard())
	st := NewState(failingSeeder{}, repository.NewSaleStore(store), store, logger.Discard())
	if err := st.Initialize(context.Background(), true); err == nil {
		t.Fatalf("expected error")
	}
	if st.Initialized() {
		t.Fatalf("initialized after failure")
	}
	if err := st.Err(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("failure not recorded: %v", err)
	}
}

type flakySeeder struct {
	fails int
	inner Seeder
}

func (f *flakySeeder) Seed(ctx context.Context) (service.SeedResult, error) {
	if f.fails > 0 {
		f.fails--
		return service.SeedResult{}, errors.New("connection refused")
	}
	return f.inner.Seed(ctx)
}

func TestInitialize_RetryClearsError(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(repository.NewMemoryKV(), logger.Discard())
	sales := repository.NewSaleStore(store)
	clock := func() time.Time { return time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC) }
	inner := service.NewSeeder(repository.NewMenuStore(store), repository.NewInventoryStore(store), sales, repository.NewLocalTx(store), clock, rand.New(rand.NewPCG(1, 1)))
	st := NewState(&flakySeeder{fails: 1, inner: inner}, sales, store, logger.Discard())

	if err := st.Initialize(ctx, true); err == nil || st.Err() == nil {
		t.Fatalf("first attempt should fail and be recorded")
	}
	if err := st.Initialize(ctx, true); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !st.Initialized() || !st.Seeded() || st.Err() != nil {
		t.Fatalf("after retry: initialized %v seeded %v err %v", st.Initialized(), st.Seeded(), st.Err())
	}
}
