package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Collection keys. Each collection is a single JSON array.
const (
	KeyMenuItems = "@frispy_menu_items"
	KeyInventory = "@frispy_inventory"
	KeySales     = "@frispy_sales"
	KeyOrders    = "@frispy_orders"
)

var allKeys = []string{KeyMenuItems, KeyInventory, KeySales, KeyOrders}

// Store serializes access to the collections kept in a KV. Every collection
// write is a read-modify-write of the whole array.
type Store struct {
	mu  sync.RWMutex
	kv  KV
	log logrus.FieldLogger
}

func NewStore(kv KV, log logrus.FieldLogger) *Store {
	return &Store{kv: kv, log: log}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (s *Store) rlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RLock()
	}
}
func (s *Store) runlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RUnlock()
	}
}
func (s *Store) wlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Lock()
	}
}
func (s *Store) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Unlock()
	}
}

// Clear removes every collection.
func (s *Store) Clear(ctx context.Context) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	if err := s.kv.Remove(ctx, allKeys...); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// record is one element of a collection. Elements that failed to decode keep
// their raw bytes so writes can put them back unchanged.
type record[T any] struct {
	raw json.RawMessage
	val T
	ok  bool
}

// loadRecords decodes a collection element by element. Elements that fail to
// decode are logged and kept as raw bytes.
func loadRecords[T any](ctx context.Context, s *Store, key string) ([]record[T], error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	out := make([]record[T], 0)
	if !ok || len(raw) == 0 {
		return out, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	for i, e := range elems {
		var v T
		if err := json.Unmarshal(e, &v); err != nil {
			s.log.WithFields(logrus.Fields{
				"key":   key,
				"index": i,
				"error": err.Error(),
			}).Warn("skipping malformed record")
			out = append(out, record[T]{raw: e})
			continue
		}
		out = append(out, record[T]{val: v, ok: true})
	}
	return out, nil
}

// load returns only the elements that decoded. One bad record does not hide
// the rest.
func load[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	recs, err := loadRecords[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if r.ok {
			out = append(out, r.val)
		}
	}
	return out, nil
}

// saveRecords writes decoded elements re-encoded and malformed ones verbatim.
func saveRecords[T any](ctx context.Context, s *Store, key string, recs []record[T]) error {
	elems := make([]json.RawMessage, 0, len(recs))
	for _, r := range recs {
		if !r.ok {
			elems = append(elems, r.raw)
			continue
		}
		b, err := json.Marshal(r.val)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		elems = append(elems, b)
	}
	raw, err := json.Marshal(elems)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func save[T any](ctx context.Context, s *Store, key string, items []T) error {
	recs := make([]record[T], 0, len(items))
	for _, it := range items {
		recs = append(recs, record[T]{val: it, ok: true})
	}
	return saveRecords(ctx, s, key, recs)
}

// indexOf finds id among the decoded records.
func indexOf[T any](recs []record[T], id string, idOf func(T) string) int {
	for i, r := range recs {
		if r.ok && idOf(r.val) == id {
			return i
		}
	}
	return -1
}

// get returns a copy of the element with the given id.
func get[T any](ctx context.Context, s *Store, key, id string, idOf func(T) string) (*T, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	recs, err := loadRecords[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	i := indexOf(recs, id, idOf)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := recs[i].val
	return &cp, nil
}

func insert[T any](ctx context.Context, s *Store, key string, v T) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	recs, err := loadRecords[T](ctx, s, key)
	if err != nil {
		return err
	}
	return saveRecords(ctx, s, key, append(recs, record[T]{val: v, ok: true}))
}

func replace[T any](ctx context.Context, s *Store, key, id string, v T, idOf func(T) string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	recs, err := loadRecords[T](ctx, s, key)
	if err != nil {
		return err
	}
	i := indexOf(recs, id, idOf)
	if i < 0 {
		return ErrNotFound
	}
	recs[i] = record[T]{val: v, ok: true}
	return saveRecords(ctx, s, key, recs)
}

func remove[T any](ctx context.Context, s *Store, key, id string, idOf func(T) string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	recs, err := loadRecords[T](ctx, s, key)
	if err != nil {
		return err
	}
	i := indexOf(recs, id, idOf)
	if i < 0 {
		return ErrNotFound
	}
	return saveRecords(ctx, s, key, append(recs[:i], recs[i+1:]...))
}

func listAll[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	return load[T](ctx, s, key)
}

// replaceAll overwrites the whole collection, malformed records included.
func replaceAll[T any](ctx context.Context, s *Store, key string, items []T) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	return save(ctx, s, key, items)
}

func newID() string {
	return uuid.NewString()
}
