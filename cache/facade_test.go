package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestNew_RejectsBadCapacity(t *testing.T) {
	if _, err := New(Config{Capacity: 0}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("New(capacity=0) err = %v; want ErrInvalidConfiguration", err)
	}
}

func TestCache_BasicContract(t *testing.T) {
	c, err := New(Config{Capacity: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, ok := c.Get([]byte("k")); ok {
		t.Fatal("get on empty cache must miss")
	}
	c.Put([]byte("k"), []byte("v"))
	if v, ok := c.Get([]byte("k")); !ok || string(v) != "v" {
		t.Fatalf("get k = %q, %v; want v, true", v, ok)
	}
	if !c.Remove([]byte("k")) {
		t.Fatal("remove of present key must report true")
	}
	if c.Remove([]byte("k")) {
		t.Fatal("remove of absent key must report false")
	}
	if !c.Empty() || c.Size() != 0 {
		t.Fatal("cache must be empty after removing its only key")
	}
}

func TestCache_Metrics(t *testing.T) {
	clk := &fakeClock{t: 0}
	c, err := New(Config{Capacity: 2, Clock: clk})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Put([]byte("a"), []byte("1"))
	c.Put([]byte("b"), []byte("2"))
	c.Get([]byte("a"))       // hit
	c.Get([]byte("missing")) // miss
	c.Put([]byte("c"), []byte("3")) // overflow -> one eviction

	clk.add(int64(2 * time.Second))
	m := c.GetMetrics()

	if m.TotalOperations != 5 {
		t.Errorf("TotalOperations = %d; want 5", m.TotalOperations)
	}
	if m.CacheHits != 1 {
		t.Errorf("CacheHits = %d; want 1", m.CacheHits)
	}
	if m.CacheMisses != 1 {
		t.Errorf("CacheMisses = %d; want 1", m.CacheMisses)
	}
	if m.Evictions != 1 {
		t.Errorf("Evictions = %d; want 1", m.Evictions)
	}
	if want := 0.5; m.HitRate != want {
		t.Errorf("HitRate = %v; want %v", m.HitRate, want)
	}
	if m.OperationsPerSecond <= 0 {
		t.Errorf("OperationsPerSecond = %v; want > 0", m.OperationsPerSecond)
	}

	c.ResetMetrics()
	m = c.GetMetrics()
	if m.TotalOperations != 0 || m.CacheHits != 0 || m.CacheMisses != 0 || m.Evictions != 0 {
		t.Errorf("metrics after reset = %+v; want all zero", m)
	}
}

func TestCache_SnapshotSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.bin")

	c1, err := New(Config{Capacity: 10, SnapshotPath: path})
	if err != nil {
		t.Fatal(err)
	}
	c1.Put([]byte("k1"), []byte("v1"))
	c1.Put([]byte("k2"), []byte("v2"))
	if err := c1.SaveSnapshot(); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := c1.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing after save: %v", err)
	}

	c2, err := New(Config{Capacity: 10, SnapshotPath: path})
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()

	if v, ok := c2.Get([]byte("k1")); !ok || string(v) != "v1" {
		t.Fatalf("k1 after auto-load = %q, %v; want v1, true", v, ok)
	}
	if v, ok := c2.Get([]byte("k2")); !ok || string(v) != "v2" {
		t.Fatalf("k2 after auto-load = %q, %v; want v2, true", v, ok)
	}
}

func TestCache_SnapshotNotFoundLeavesCacheEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.bin")

	c, err := New(Config{Capacity: 10, SnapshotPath: path})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if !c.Empty() {
		t.Fatal("cache must start empty when no snapshot file exists yet")
	}
	if c.LoadSnapshot() {
		t.Fatal("LoadSnapshot must report false for a missing file")
	}
}

func TestCache_CloseIsIdempotentAndAutoSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.bin")

	c, err := New(Config{Capacity: 10, SnapshotPath: path})
	if err != nil {
		t.Fatal(err)
	}
	c.Put([]byte("k"), []byte("v"))

	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close must also succeed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatal("Close must have saved a snapshot as a side effect")
	}
}

func TestCache_GetOrLoad(t *testing.T) {
	c, err := New(Config{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Put([]byte("cached"), []byte("already-there"))
	v, err := c.GetOrLoad(context.Background(), []byte("cached"), func(context.Context, []byte) ([]byte, error) {
		t.Fatal("loader must not be called for a key already in the cache")
		return nil, nil
	})
	if err != nil || string(v) != "already-there" {
		t.Fatalf("GetOrLoad(cached) = %q, %v", v, err)
	}

	var calls int32
	loader := func(_ context.Context, key []byte) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("loaded-" + string(key)), nil
	}

	v, err = c.GetOrLoad(context.Background(), []byte("new"), loader)
	if err != nil || string(v) != "loaded-new" {
		t.Fatalf("GetOrLoad(new) = %q, %v", v, err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("loader calls = %d; want 1", calls)
	}

	v, ok := c.Get([]byte("new"))
	if !ok || string(v) != "loaded-new" {
		t.Fatal("GetOrLoad must populate the cache on a successful load")
	}
}

func TestCache_GetOrLoadCoalescesConcurrentMisses(t *testing.T) {
	c, err := New(Config{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var calls int32
	release := make(chan struct{})
	loader := func(context.Context, []byte) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("v"), nil
	}

	const n = 8
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := c.GetOrLoad(context.Background(), []byte("shared"), loader)
			return err
		})
	}

	time.Sleep(20 * time.Millisecond) // let every goroutine reach the loader call
	close(release)

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("loader was called %d times; want exactly 1 (coalesced)", got)
	}
}

func TestCache_GetOrLoadNoLoaderOnMiss(t *testing.T) {
	c, err := New(Config{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_, err = c.GetOrLoad(context.Background(), []byte("missing"), nil)
	if !errors.Is(err, ErrNoLoader) {
		t.Fatalf("err = %v; want ErrNoLoader", err)
	}
}

func TestCache_ConcurrentSanity(t *testing.T) {
	c, err := New(Config{Capacity: 64})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	const workers = 16
	const opsPerWorker = 500

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < opsPerWorker; i++ {
				key := []byte{byte('a' + (w+i)%16)}
				switch i % 3 {
				case 0:
					c.Put(key, []byte{byte(i)})
				case 1:
					c.Get(key)
				case 2:
					c.Remove(key)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if c.Size() > 64 {
		t.Fatalf("size = %d; must never exceed capacity 64", c.Size())
	}
	m := c.GetMetrics()
	if m.TotalOperations == 0 {
		t.Fatal("expected a nonzero number of recorded operations")
	}
}
