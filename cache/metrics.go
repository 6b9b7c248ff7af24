package cache

import (
	"sync/atomic"
	"time"

	"github.com/Sohamiota/High-Performance-KV-Store/internal/util"
)

// Observer receives the same counter events the façade's own mandatory
// metrics do, so an external system (Prometheus via metrics/prom, or any
// other backend) can be wired in without the core depending on it.
// Implementations must not take the engine lock; the façade never calls
// these while holding it.
type Observer interface {
	IncOps()
	IncHits()
	IncMisses()
	IncEvictions()
}

// NoopObserver is the default Observer: it does nothing.
type NoopObserver struct{}

func (NoopObserver) IncOps()       {}
func (NoopObserver) IncHits()      {}
func (NoopObserver) IncMisses()    {}
func (NoopObserver) IncEvictions() {}

var _ Observer = NoopObserver{}

// MetricsSnapshot is the point-in-time read returned by Cache.GetMetrics.
// Per spec.md §4.3, counters are eventually consistent with each other
// and with engine state: they are read without holding the engine lock.
type MetricsSnapshot struct {
	TotalOperations    uint64
	CacheHits          uint64
	CacheMisses        uint64
	Evictions          uint64
	HitRate            float64
	OperationsPerSecond float64
}

// metrics holds the façade's mandatory counters as independent,
// cache-line-padded atomics — no consistency is implied across them, and
// updating them never takes the engine lock (spec.md §9).
type metrics struct {
	totalOps  util.PaddedAtomicUint64
	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	evictions util.PaddedAtomicUint64
	startedAt atomic.Int64 // UnixNano
	clock     Clock
}

func newMetrics(clock Clock) *metrics {
	if clock == nil {
		clock = realClock{}
	}
	m := &metrics{clock: clock}
	m.startedAt.Store(clock.NowUnixNano())
	return m
}

func (m *metrics) IncOps()       { m.totalOps.Add(1) }
func (m *metrics) IncHits()      { m.hits.Add(1) }
func (m *metrics) IncMisses()    { m.misses.Add(1) }
func (m *metrics) IncEvictions() { m.evictions.Add(1) }

func (m *metrics) reset() {
	m.totalOps.Store(0)
	m.hits.Store(0)
	m.misses.Store(0)
	m.evictions.Store(0)
	m.startedAt.Store(m.clock.NowUnixNano())
}

func (m *metrics) snapshot() MetricsSnapshot {
	hits := m.hits.Load()
	misses := m.misses.Load()
	total := m.totalOps.Load()

	var hitRate float64
	if denom := hits + misses; denom > 0 {
		hitRate = float64(hits) / float64(denom)
	}

	var opsPerSec float64
	elapsed := time.Duration(m.clock.NowUnixNano() - m.startedAt.Load())
	if secs := elapsed.Seconds(); secs > 0 {
		opsPerSec = float64(total) / secs
	}

	return MetricsSnapshot{
		TotalOperations:     total,
		CacheHits:           hits,
		CacheMisses:         misses,
		Evictions:           m.evictions.Load(),
		HitRate:             hitRate,
		OperationsPerSecond: opsPerSec,
	}
}
