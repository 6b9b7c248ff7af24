// Package cache implements a bounded-capacity, concurrency-safe key/value
// cache with least-recently-used eviction and an optional on-disk
// snapshot for warm restart.
//
// The package is organized around the same components a systems-language
// port of this kind of cache would use: an Entry Store (entry.go) holding
// value bytes and access bookkeeping, a Recency List (list.go) providing
// O(1) splice-to-head and tail eviction over an arena of Nodes (node.go),
// an Index (index.go) mapping keys to arena handles, a Cache Engine
// (engine.go) composing the three under a single readers-writer lock, a
// Snapshot Codec (codec.go) for durable save/restore, and a Façade
// (facade.go) exposing the public API while maintaining lock-free metrics
// (metrics.go).
package cache
