package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/Sohamiota/High-Performance-KV-Store/internal/singleflight"
)

// Cache is the public façade: it wraps the Engine, maintains the
// mandatory metrics counters without ever holding the engine lock, and
// owns the optional snapshot-path glue (load on construction, save on
// teardown).
type Cache struct {
	eng          *engine
	metrics      *metrics
	observer     Observer
	snapshotPath string
	closed       atomic.Bool

	sf singleflight.Group[string, []byte]
}

// New constructs a Cache per Config. If SnapshotPath is set and the file
// exists, New attempts to load it; a failed load (missing file, bad
// format, truncation) is non-fatal and leaves the cache empty.
func New(cfg Config) (*Cache, error) {
	eng, err := newEngine(cfg.Capacity, cfg.Clock)
	if err != nil {
		return nil, err
	}

	observer := cfg.Observer
	if observer == nil {
		observer = NoopObserver{}
	}

	c := &Cache{
		eng:          eng,
		metrics:      newMetrics(cfg.Clock),
		observer:     observer,
		snapshotPath: cfg.SnapshotPath,
	}

	if c.snapshotPath != "" {
		if _, err := os.Stat(c.snapshotPath); err == nil {
			if !c.LoadSnapshot() {
				c.eng.clear()
			}
		}
	}

	return c, nil
}

// Close marks the cache closed (idempotent; safe to call multiple times
// and safe to call in a defer) and, if a snapshot path was configured,
// attempts a save. A failed save is logged, never returned: teardown must
// not raise (spec.md §4.4).
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.snapshotPath != "" {
		if err := c.SaveSnapshot(); err != nil {
			log.Printf("cache: snapshot save on close failed: %v", err)
		}
	}
	return nil
}

func (c *Cache) incOps() {
	c.metrics.IncOps()
	c.observer.IncOps()
}

func (c *Cache) incHits() {
	c.metrics.hits.Add(1)
	c.observer.IncHits()
}

func (c *Cache) incMisses() {
	c.metrics.misses.Add(1)
	c.observer.IncMisses()
}

func (c *Cache) incEvictions() {
	c.metrics.evictions.Add(1)
	c.observer.IncEvictions()
}

// Get returns a copy of the value for key and whether it was found.
// Never fails, per spec.md §6.
func (c *Cache) Get(key []byte) ([]byte, bool) {
	c.incOps()
	value, found := c.eng.get(key)
	if found {
		c.incHits()
	} else {
		c.incMisses()
	}
	return value, found
}

// Put inserts or overwrites key with value.
func (c *Cache) Put(key, value []byte) {
	c.incOps()
	if c.eng.put(key, value) {
		c.incEvictions()
	}
}

// Remove deletes key if present and reports whether it was present.
func (c *Cache) Remove(key []byte) bool {
	c.incOps()
	return c.eng.remove(key)
}

// Clear empties the cache. Capacity is preserved; metrics are not reset
// (Clear counts as one operation like any other call; the façade, not
// the engine, owns metrics reset — call ResetMetrics explicitly if
// desired).
func (c *Cache) Clear() {
	c.incOps()
	c.eng.clear()
}

// Size returns the current number of live entries.
func (c *Cache) Size() int { return c.eng.size() }

// Empty reports whether the cache currently holds no entries.
func (c *Cache) Empty() bool { return c.eng.empty() }

// GetMetrics returns a point-in-time read of the mandatory counters.
func (c *Cache) GetMetrics() MetricsSnapshot { return c.metrics.snapshot() }

// ResetMetrics zeroes the mandatory counters and restarts the
// operations-per-second clock.
func (c *Cache) ResetMetrics() { c.metrics.reset() }

// SaveSnapshot writes the current live set to the configured snapshot
// path. It writes to a temporary file in the same directory and renames
// it into place, so a crash mid-write cannot corrupt an existing
// snapshot. Returns ErrSnapshotIO wrapping the underlying cause on
// failure.
func (c *Cache) SaveSnapshot() error {
	if c.snapshotPath == "" {
		return nil
	}

	dir := filepath.Dir(c.snapshotPath)
	tmp, err := os.CreateTemp(dir, ".cache-snapshot-*.tmp")
	if err != nil {
		return joinSnapshotIOErr(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if err := c.eng.saveTo(tmp); err != nil {
		tmp.Close()
		return joinSnapshotIOErr(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return joinSnapshotIOErr(err)
	}
	if err := tmp.Close(); err != nil {
		return joinSnapshotIOErr(err)
	}
	if err := os.Rename(tmpPath, c.snapshotPath); err != nil {
		return joinSnapshotIOErr(err)
	}
	return nil
}

// LoadSnapshot loads the configured snapshot path. If the file does not
// exist or cannot be opened, it returns false without mutating the
// engine. Otherwise the engine is emptied and reloaded per codec.go's
// rules, regardless of whether the stream turns out to be well-formed.
func (c *Cache) LoadSnapshot() bool {
	if c.snapshotPath == "" {
		return false
	}
	f, err := os.Open(c.snapshotPath)
	if err != nil {
		return false
	}
	defer f.Close()
	return c.eng.loadFrom(f)
}

// GetOrLoad returns the value for key, loading it via loader on miss and
// coalescing concurrent loads for the same key so loader runs at most
// once per outstanding miss. This is a compatible enrichment beyond
// spec.md's core contract (see SPEC_FULL.md), not part of it.
func (c *Cache) GetOrLoad(ctx context.Context, key []byte, loader func(context.Context, []byte) ([]byte, error)) ([]byte, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if loader == nil {
		return nil, ErrNoLoader
	}

	k := string(key)
	return c.sf.Do(ctx, k, func() ([]byte, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := loader(ctx, key)
		if err == nil {
			c.Put(key, v)
		}
		return v, err
	})
}

func joinSnapshotIOErr(err error) error {
	return fmt.Errorf("%w: %v", ErrSnapshotIO, err)
}
