package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryKV_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	if _, ok, err := kv.Get(ctx, KeySales); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, KeySales, []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyMenuItems, []byte("[]")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Remove(ctx, KeySales, "never-set"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeySales); ok {
		t.Fatalf("removed key still present")
	}
	if _, ok, _ := kv.Get(ctx, KeyMenuItems); !ok {
		t.Fatalf("unrelated key removed")
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	v := []byte("abc")
	_ = kv.Set(ctx, "k", v)
	v[0] = 'z'
	got, ok, _ := kv.Get(ctx, "k")
	if !ok || string(got) != "abc" {
		t.Fatalf("stored value changed: %q", got)
	}
	got[1] = 'z'
	again, _, _ := kv.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliases storage: %q", again)
	}
}

func TestMemoryKV_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_ = kv.Set(ctx, key, []byte{byte(i)})
			_, _, _ = kv.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	for i := 0; i < 4; i++ {
		if _, ok, _ := kv.Get(ctx, fmt.Sprintf("k%d", i)); !ok {
			t.Fatalf("k%d missing", i)
		}
	}
}
