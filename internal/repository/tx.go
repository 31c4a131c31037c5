package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// ErrLockNotObtained is returned when another process holds the store lock.
var ErrLockNotObtained = errors.New("store is locked by another process")

// LocalTx emulates a transaction with the store's write lock. Repositories
// called with the returned context skip their own locking.
type LocalTx struct{ store *Store }

func NewLocalTx(store *Store) *LocalTx { return &LocalTx{store: store} }

var _ TxManager = (*LocalTx)(nil)

func (tx *LocalTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if isTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// RedisTx additionally holds a redislock lock so that several processes
// sharing one Redis do not interleave read-modify-write cycles. The lock is
// refreshed every ttl/2 while the transaction runs.
type RedisTx struct {
	local  *LocalTx
	locker *redislock.Client
	key    string
	ttl    time.Duration
	log    logrus.FieldLogger
}

func NewRedisTx(store *Store, locker *redislock.Client, key string, ttl time.Duration, log logrus.FieldLogger) *RedisTx {
	return &RedisTx{local: NewLocalTx(store), locker: locker, key: key, ttl: ttl, log: log}
}

var _ TxManager = (*RedisTx)(nil)

// lease is the part of *redislock.Lock a transaction needs.
type lease interface {
	Refresh(ctx context.Context, ttl time.Duration, opt *redislock.Options) error
	Release(ctx context.Context) error
}

func (tx *RedisTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if isTx(ctx) {
		return fn(ctx)
	}
	lock, err := tx.locker.Obtain(ctx, tx.key, tx.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrLockNotObtained
	}
	if err != nil {
		return fmt.Errorf("obtain store lock: %w", err)
	}
	return tx.hold(ctx, lock, fn)
}

// hold runs fn under the local write lock while keeping l alive, then
// releases l. Release and refresh failures are logged, not returned: fn's
// writes have already happened by then.
func (tx *RedisTx) hold(ctx context.Context, l lease, fn func(ctx context.Context) error) error {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tx.keepAlive(ctx, l, done)
	}()

	err := tx.local.WithTransaction(ctx, fn)

	close(done)
	wg.Wait()
	if rerr := l.Release(context.WithoutCancel(ctx)); rerr != nil {
		entry := tx.log.WithField("key", tx.key).WithError(rerr)
		if errors.Is(rerr, redislock.ErrLockNotHeld) {
			entry.Warn("store lock expired before release")
		} else {
			entry.Error("failed to release store lock")
		}
	}
	return err
}

func (tx *RedisTx) keepAlive(ctx context.Context, l lease, done <-chan struct{}) {
	t := time.NewTicker(tx.ttl / 2)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-t.C:
			if err := l.Refresh(ctx, tx.ttl, nil); err != nil {
				tx.log.WithField("key", tx.key).WithError(err).Warn("failed to refresh store lock")
				if errors.Is(err, redislock.ErrNotObtained) {
					return
				}
			}
		}
	}
}
