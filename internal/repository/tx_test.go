package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"frispy/internal/logger"
)

type fakeLease struct {
	mu         sync.Mutex
	refreshes  int
	releases   int
	refreshErr error
	releaseErr error
}

func (l *fakeLease) Refresh(context.Context, time.Duration, *redislock.Options) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refreshes++
	return l.refreshErr
}

func (l *fakeLease) Release(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases++
	return l.releaseErr
}

func (l *fakeLease) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refreshes, l.releases
}

func newRedisTx(t *testing.T, log logrus.FieldLogger) *RedisTx {
	t.Helper()
	store := NewStore(NewMemoryKV(), logger.Discard())
	return &RedisTx{local: NewLocalTx(store), key: "store-lock", ttl: 20 * time.Millisecond, log: log}
}

func TestRedisTx_RefreshesWhileRunning(t *testing.T) {
	tx := newRedisTx(t, logger.Discard())
	l := &fakeLease{}

	err := tx.hold(context.Background(), l, func(ctx context.Context) error {
		if !isTx(ctx) {
			t.Errorf("fn ran outside the transaction")
		}
		time.Sleep(60 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("hold: %v", err)
	}
	refreshes, releases := l.counts()
	if refreshes == 0 {
		t.Fatalf("lock was never refreshed")
	}
	if releases != 1 {
		t.Fatalf("expected one release, got %d", releases)
	}

	time.Sleep(40 * time.Millisecond)
	if after, _ := l.counts(); after != refreshes {
		t.Fatalf("refresh continued after release: %d -> %d", refreshes, after)
	}
}

func TestRedisTx_ReturnsFnError(t *testing.T) {
	tx := newRedisTx(t, logger.Discard())
	l := &fakeLease{}
	boom := errors.New("boom")
	if err := tx.hold(context.Background(), l, func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if _, releases := l.counts(); releases != 1 {
		t.Fatalf("lock not released after failure: %d", releases)
	}
}

func TestRedisTx_LogsReleaseFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	tx := newRedisTx(t, log)

	l := &fakeLease{releaseErr: redislock.ErrLockNotHeld}
	if err := tx.hold(context.Background(), l, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("release error leaked to caller: %v", err)
	}
	e := hook.LastEntry()
	if e == nil || e.Level != logrus.WarnLevel || e.Data["key"] != "store-lock" {
		t.Fatalf("expected warn entry for expired lock, got %+v", e)
	}

	hook.Reset()
	l = &fakeLease{releaseErr: errors.New("connection reset")}
	_ = tx.hold(context.Background(), l, func(context.Context) error { return nil })
	if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
		t.Fatalf("expected error entry, got %+v", e)
	}
}

func TestRedisTx_StopsRefreshingLostLock(t *testing.T) {
	log, hook := test.NewNullLogger()
	tx := newRedisTx(t, log)
	l := &fakeLease{refreshErr: redislock.ErrNotObtained}

	_ = tx.hold(context.Background(), l, func(context.Context) error {
		time.Sleep(80 * time.Millisecond)
		return nil
	})
	if refreshes, _ := l.counts(); refreshes != 1 {
		t.Fatalf("expected refresh to stop after the lock was lost, got %d attempts", refreshes)
	}
	warned := false
	for _, e := range hook.AllEntries() {
		if e.Message == "failed to refresh store lock" {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("refresh failure not logged")
	}
}
