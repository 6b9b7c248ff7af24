package cache

import "github.com/Sohamiota/High-Performance-KV-Store/internal/util"

// recencyList is the doubly linked, head(MRU)->tail(LRU) ordered sequence
// of live entries, backed by an arena (a single growable slice) instead of
// individually allocated nodes. The Index refers to entries by handle
// (their stable arena slot) rather than by pointer, per the "handle-based
// arena" design note: this removes per-node heap allocation from the hot
// path and sidesteps the prev/next ownership cycle a naive translation of
// shared-ownership list nodes would otherwise hit.
type recencyList struct {
	nodes []node
	free  []handle // recycled slots available for reuse, LIFO
	len   int       // live (non-sentinel) node count
}

// newRecencyList builds an empty list with its two sentinels in place and
// pre-sizes the arena to the next power of two at or above capacity, so
// that filling the cache to capacity causes no further growth.
func newRecencyList(capacity int) *recencyList {
	cap64 := util.NextPow2(uint64(capacity))
	if cap64 > 1<<30 {
		cap64 = 1 << 30 // guard against pathological capacities
	}
	l := &recencyList{
		nodes: make([]node, 2, cap64+2),
	}
	l.nodes[headHandle] = node{prev: nilHandle, next: tailHandle}
	l.nodes[tailHandle] = node{prev: headHandle, next: nilHandle}
	return l
}

// at returns a pointer to the node at h. Callers must hold the engine
// lock; the returned pointer is only valid until the next alloc, which may
// grow the backing slice.
func (l *recencyList) at(h handle) *node {
	return &l.nodes[h]
}

// alloc reserves a slot for a new live node, reusing a freed slot when one
// is available, and returns its handle. The node is NOT yet linked into
// the list; callers must pushFront it.
func (l *recencyList) alloc(key string, e entry) handle {
	if n := len(l.free); n > 0 {
		h := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h] = node{key: key, val: e}
		return h
	}
	h := handle(len(l.nodes))
	l.nodes = append(l.nodes, node{key: key, val: e})
	return h
}

// release returns h's slot to the free list for reuse. h must already be
// unlinked from the list.
func (l *recencyList) release(h handle) {
	l.nodes[h] = node{}
	l.free = append(l.free, h)
}

// pushFront splices h in immediately after the head sentinel. h must not
// currently be linked into the list.
func (l *recencyList) pushFront(h handle) {
	head := &l.nodes[headHandle]
	old := head.next
	l.nodes[h].prev = headHandle
	l.nodes[h].next = old
	head.next = h
	l.nodes[old].prev = h
	l.len++
}

// unlink detaches h from its current neighbors without releasing its
// slot. It is idempotent to call pushFront right after.
func (l *recencyList) unlink(h handle) {
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	l.len--
}

// moveToFront promotes h to MRU in O(1). A no-op if h is already at the
// head, matching the spec's idempotence requirement for splice-to-head.
func (l *recencyList) moveToFront(h handle) {
	if l.nodes[headHandle].next == h {
		return
	}
	l.unlink(h)
	l.pushFront(h)
}

// back returns the handle of the current LRU node, or nilHandle if the
// list holds no live entries.
func (l *recencyList) back() handle {
	h := l.nodes[tailHandle].prev
	if h == headHandle {
		return nilHandle
	}
	return h
}

// reset empties the list back to just the two sentinels, discarding the
// free list (the slice is truncated, not reallocated: its backing array
// is kept and reused by later allocs — matching Clear's "capacity
// preserved, contents discarded" contract).
func (l *recencyList) reset() {
	l.nodes = l.nodes[:2]
	l.nodes[headHandle] = node{prev: nilHandle, next: tailHandle}
	l.nodes[tailHandle] = node{prev: headHandle, next: nilHandle}
	l.free = l.free[:0]
	l.len = 0
}

// forEachHeadToTail walks live nodes from MRU to LRU.
func (l *recencyList) forEachHeadToTail(fn func(h handle)) {
	for h := l.nodes[headHandle].next; h != tailHandle; h = l.nodes[h].next {
		fn(h)
	}
}

// forEachTailToHead walks live nodes from LRU to MRU.
func (l *recencyList) forEachTailToHead(fn func(h handle)) {
	for h := l.nodes[tailHandle].prev; h != headHandle; h = l.nodes[h].prev {
		fn(h)
	}
}
