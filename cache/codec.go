package cache

import (
	"encoding/binary"
	"io"
)

// snapshotVersion is the only wire format version this codec understands.
const snapshotVersion uint32 = 1

// saveTo serializes the live set to w: a u32 version, a u32 count, then
// count repeated (u32 key_size, key_bytes, u32 value_size, value_bytes)
// records, all little-endian. Per-entry timestamps and access counts are
// not serialized (spec.md §4.2).
//
// The walk is tail->head (LRU to MRU): because loadFrom re-inserts each
// record at the head in stream order, walking tail->head on save means
// the record for the entry that was most-recently-used at save time is
// written LAST and therefore re-inserted LAST — landing back at the head.
// head->tail order is thus preserved across a save/load round trip (the
// resolution to spec.md's snapshot-order Open Question).
//
// Acquired in shared mode: save must not block concurrent readers for
// longer than the walk takes, and must not itself mutate the engine.
func (e *engine) saveTo(w io.Writer) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], snapshotVersion)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(e.list.len))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	var sizeBuf [4]byte
	var walkErr error
	e.list.forEachTailToHead(func(h handle) {
		if walkErr != nil {
			return
		}
		n := e.list.at(h)

		binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(n.key)))
		if _, walkErr = w.Write(sizeBuf[:]); walkErr != nil {
			return
		}
		if _, walkErr = io.WriteString(w, n.key); walkErr != nil {
			return
		}

		binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(n.val.value)))
		if _, walkErr = w.Write(sizeBuf[:]); walkErr != nil {
			return
		}
		if _, walkErr = w.Write(n.val.value); walkErr != nil {
			return
		}
	})
	return walkErr
}

// loadFrom restores the engine from r. The engine is emptied
// unconditionally before the header is even validated (spec.md §9's
// documented, preserved quirk: a version mismatch still leaves the engine
// empty, not untouched). If count exceeds capacity, only the first
// capacity records are read and materialized; the rest of the stream is
// left unread ("silently ignored"). A truncated stream stops loading and
// returns false, leaving whatever was already inserted in place.
func (e *engine) loadFrom(r io.Reader) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearLocked()

	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return false
	}
	version := binary.LittleEndian.Uint32(hdr[0:4])
	count := binary.LittleEndian.Uint32(hdr[4:8])
	if version != snapshotVersion {
		return false
	}

	limit := uint32(e.capacity)
	now := e.clock.NowUnixNano()

	for i := uint32(0); i < count && i < limit; i++ {
		var sizeBuf [4]byte

		if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
			return false
		}
		keySize := binary.LittleEndian.Uint32(sizeBuf[:])
		key := make([]byte, keySize)
		if _, err := io.ReadFull(r, key); err != nil {
			return false
		}

		if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
			return false
		}
		valSize := binary.LittleEndian.Uint32(sizeBuf[:])
		value := make([]byte, valSize)
		if _, err := io.ReadFull(r, value); err != nil {
			return false
		}

		k := string(key)
		if h, ok := e.idx.get(k); ok {
			// Duplicate key in the stream: last write wins, as if by put.
			n := e.list.at(h)
			n.val.value = value
			n.val.touch(now)
			e.list.moveToFront(h)
			continue
		}
		h := e.list.alloc(k, newEntry(value, now))
		e.list.pushFront(h)
		e.idx.set(k, h)
	}

	return true
}
