package cache

import "testing"

func TestRecencyList_PushFrontAndOrder(t *testing.T) {
	l := newRecencyList(8)

	ha := l.alloc("a", newEntry([]byte("1"), 0))
	l.pushFront(ha)
	hb := l.alloc("b", newEntry([]byte("2"), 0))
	l.pushFront(hb)
	hc := l.alloc("c", newEntry([]byte("3"), 0))
	l.pushFront(hc)

	var order []string
	l.forEachHeadToTail(func(h handle) { order = append(order, l.at(h).key) })
	want := []string{"c", "b", "a"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v; want %v", order, want)
		}
	}
	if l.back() != ha {
		t.Fatalf("back() = %d; want the first-pushed handle %d", l.back(), ha)
	}
}

func TestRecencyList_MoveToFrontIsNoopAtHead(t *testing.T) {
	l := newRecencyList(8)
	h := l.alloc("a", newEntry([]byte("1"), 0))
	l.pushFront(h)
	l.moveToFront(h) // already at head
	if l.nodes[headHandle].next != h {
		t.Fatal("head's next must still point at h")
	}
	if l.len != 1 {
		t.Fatalf("len = %d; want 1 (moveToFront must not double-link)", l.len)
	}
}

func TestRecencyList_UnlinkReleaseAndReuse(t *testing.T) {
	l := newRecencyList(8)
	h := l.alloc("a", newEntry([]byte("1"), 0))
	l.pushFront(h)
	l.unlink(h)
	l.release(h)

	if l.len != 0 {
		t.Fatalf("len = %d; want 0 after unlink", l.len)
	}
	if len(l.free) != 1 {
		t.Fatalf("free list = %v; want one recycled slot", l.free)
	}

	h2 := l.alloc("b", newEntry([]byte("2"), 0))
	if h2 != h {
		t.Fatalf("alloc should reuse the freed slot %d, got %d", h, h2)
	}
}

func TestRecencyList_ResetReturnsToSentinelsOnly(t *testing.T) {
	l := newRecencyList(8)
	h := l.alloc("a", newEntry([]byte("1"), 0))
	l.pushFront(h)
	l.reset()

	if l.len != 0 || l.back() != nilHandle {
		t.Fatal("reset must empty the list back to the two sentinels")
	}

	h2 := l.alloc("b", newEntry([]byte("2"), 0))
	l.pushFront(h2)
	if l.back() != h2 {
		t.Fatal("list must be usable again after reset")
	}
}

func TestIndex_GetSetDeleteReset(t *testing.T) {
	idx := newIndex(4)

	if _, ok := idx.get("k"); ok {
		t.Fatal("get on empty index must miss")
	}
	idx.set("k", handle(5))
	if h, ok := idx.get("k"); !ok || h != 5 {
		t.Fatalf("get k = %d, %v; want 5, true", h, ok)
	}
	if idx.len() != 1 {
		t.Fatalf("len = %d; want 1", idx.len())
	}
	idx.delete("k")
	if _, ok := idx.get("k"); ok {
		t.Fatal("get after delete must miss")
	}

	idx.set("x", handle(1))
	idx.reset(4)
	if idx.len() != 0 {
		t.Fatal("reset must empty the index")
	}
}
