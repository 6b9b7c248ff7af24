// Package prom adapts the cache's Observer interface to Prometheus
// counters, for processes that want to scrape cache hit/miss/eviction
// rates alongside their other metrics.
package prom

import (
	"github.com/Sohamiota/High-Performance-KV-Store/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Observer and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	ops       prometheus.Counter
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// New constructs a Prometheus Observer adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		ops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "ops_total",
			Help:        "Total cache operations",
			ConstLabels: constLabels,
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Cache evictions",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.ops, a.hits, a.misses, a.evictions)
	return a
}

// IncOps increments the total-operations counter.
func (a *Adapter) IncOps() { a.ops.Inc() }

// IncHits increments the hit counter.
func (a *Adapter) IncHits() { a.hits.Inc() }

// IncMisses increments the miss counter.
func (a *Adapter) IncMisses() { a.misses.Inc() }

// IncEvictions increments the eviction counter.
func (a *Adapter) IncEvictions() { a.evictions.Inc() }

// Compile-time check: ensure Adapter implements cache.Observer.
var _ cache.Observer = (*Adapter)(nil)
