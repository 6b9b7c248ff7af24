package cache

import (
	"sync"
	"time"
)

// realClock is the default Clock, backed by time.Now.
type realClock struct{}

func (realClock) NowUnixNano() int64 { return time.Now().UnixNano() }

// engine is the concurrent LRU engine: Index + Recency List under a
// single readers-writer lock. It implements get/put/remove/clear/size/
// empty exactly as spec.md §4.1 describes, and is the unit the Snapshot
// Codec (codec.go) walks and rebuilds.
//
// Concurrency classification (spec.md §5): put, remove, clear, and get's
// promotion are exclusive; size, empty, and a snapshot save are shared.
// get is implemented with the engine lock held exclusive for its whole
// duration (Open Question "strategy 1": simple and correct, matching the
// teacher's own shard.Get, at the cost of read concurrency versus the
// re-validate-after-upgrade alternative).
type engine struct {
	mu       sync.RWMutex
	capacity int
	list     *recencyList
	idx      *index
	clock    Clock
}

func newEngine(capacity int, clock Clock) (*engine, error) {
	if capacity <= 0 {
		return nil, ErrInvalidConfiguration
	}
	if clock == nil {
		clock = realClock{}
	}
	return &engine{
		capacity: capacity,
		list:     newRecencyList(capacity),
		idx:      newIndex(capacity),
		clock:    clock,
	}, nil
}

// get returns a copy of the value for key and whether it was present. On
// a hit, it refreshes last_accessed, increments access_count, and splices
// the node to the head. Never fails.
func (e *engine) get(key []byte) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := string(key)
	h, ok := e.idx.get(k)
	if !ok {
		return nil, false
	}

	n := e.list.at(h)
	n.val.touch(e.clock.NowUnixNano())
	e.list.moveToFront(h)
	return cloneBytes(n.val.value), true
}

// put inserts or overwrites key with value. It returns true if inserting
// this key caused a tail eviction (the spec-endorsed explicit alternative
// to the façade's size-delta heuristic). Eviction, when it happens, is
// performed before the new node is inserted, though the whole operation
// is atomic with respect to external readers since it runs under the
// exclusive engine lock.
func (e *engine) put(key, value []byte) (evicted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := string(key)
	now := e.clock.NowUnixNano()

	if h, ok := e.idx.get(k); ok {
		n := e.list.at(h)
		n.val.value = cloneBytes(value)
		n.val.touch(now)
		e.list.moveToFront(h)
		return false
	}

	if e.list.len >= e.capacity {
		if victim := e.list.back(); victim != nilHandle {
			victimKey := e.list.at(victim).key
			e.list.unlink(victim)
			e.list.release(victim)
			e.idx.delete(victimKey)
			evicted = true
		}
	}

	h := e.list.alloc(k, newEntry(cloneBytes(value), now))
	e.list.pushFront(h)
	e.idx.set(k, h)
	return evicted
}

// remove deletes key if present and reports whether it was present.
func (e *engine) remove(key []byte) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := string(key)
	h, ok := e.idx.get(k)
	if !ok {
		return false
	}
	e.list.unlink(h)
	e.list.release(h)
	e.idx.delete(k)
	return true
}

// clear resets the engine to empty. Capacity is preserved.
func (e *engine) clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearLocked()
}

func (e *engine) clearLocked() {
	e.list.reset()
	e.idx.reset(e.capacity)
}

func (e *engine) size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.list.len
}

func (e *engine) empty() bool {
	return e.size() == 0
}
