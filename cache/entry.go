package cache

// entry is the value bytes plus the per-entry bookkeeping an Entry Store
// owns: the last-access timestamp and the access counter. An entry's
// lifetime equals its owning node's lifetime (see node.go).
type entry struct {
	value        []byte
	lastAccessed int64 // UnixNano, from the engine's clock
	accessCount  uint64
}

// touch refreshes lastAccessed and increments accessCount, as required on
// every successful get and on every put that updates an existing key.
func (e *entry) touch(now int64) {
	e.lastAccessed = now
	e.accessCount++
}

// newEntry constructs an entry at creation time: accessCount starts at 1.
func newEntry(value []byte, now int64) entry {
	return entry{value: value, lastAccessed: now, accessCount: 1}
}

// cloneBytes returns an independent copy of b, so callers can never
// observe or mutate the cache's internal storage through a returned slice.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
