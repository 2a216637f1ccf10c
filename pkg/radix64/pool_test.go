package radix64

import (
	"testing"
	"unsafe"
)

func TestSlicePool_GetIsAligned(t *testing.T) {
	pool := NewSlicePool(nil)

	for i := 0; i < slicesPerRegion*2+3; i++ {
		s := pool.Get()
		if len(s) != SliceSize {
			t.Fatalf("Get() returned length %d, want %d", len(s), SliceSize)
		}
		addr := uintptr(unsafe.Pointer(&s[0]))
		if addr%SliceSizeBytes != 0 {
			t.Fatalf("Get() returned unaligned slice at %#x", addr)
		}
	}
}

func TestSlicePool_GetFreeRoundTrip(t *testing.T) {
	stats := &Stats{}
	pool := NewSlicePool(stats)

	var held [][]uint64
	for i := 0; i < 10; i++ {
		held = append(held, pool.Get())
	}
	for _, s := range held {
		pool.Free(s)
	}

	snap := stats.Snapshot()
	if snap.SlicesFreed != 10 {
		t.Errorf("SlicesFreed = %d, want 10", snap.SlicesFreed)
	}

	// every freed slice should be recyclable without allocating a new region
	before := snap.RegionsAllocated
	for i := 0; i < 10; i++ {
		pool.Get()
	}
	after := pool.stats.Snapshot().RegionsAllocated
	if after != before {
		t.Errorf("RegionsAllocated grew from %d to %d reusing a full free list", before, after)
	}
}

// Free must accept a partial prefix of a slice's region, not just a full
// SliceSize length: a bucket's trailing slice is routinely freed with fewer
// than SliceSize live keys (spec.md §4.2's Complete, §4.4's split).
func TestSlicePool_FreePartialReclaimsWholeRegion(t *testing.T) {
	stats := &Stats{}
	pool := NewSlicePool(stats)

	full := pool.Get()
	partial := full[:SliceSize-3]
	pool.Free(partial)

	if snap := stats.Snapshot(); snap.SlicesFreed != 1 {
		t.Fatalf("SlicesFreed = %d, want 1", snap.SlicesFreed)
	}

	before := stats.Snapshot().RegionsAllocated
	recycled := pool.Get()
	if len(recycled) != SliceSize {
		t.Fatalf("Get() after partial Free returned length %d, want %d", len(recycled), SliceSize)
	}
	if uintptr(unsafe.Pointer(&recycled[0])) != uintptr(unsafe.Pointer(&full[0])) {
		t.Fatal("Get() after partial Free did not reuse the freed region's base address")
	}
	if after := stats.Snapshot().RegionsAllocated; after != before {
		t.Errorf("RegionsAllocated grew from %d to %d recycling a partially-filled slice", before, after)
	}
}

func TestSlicePool_Reserve(t *testing.T) {
	stats := &Stats{}
	pool := NewSlicePool(stats)

	pool.Reserve(slicesPerRegion + 1)
	if len(pool.free) < slicesPerRegion+1 {
		t.Fatalf("Reserve(%d) left %d slices free", slicesPerRegion+1, len(pool.free))
	}
}

func TestAllocAligned(t *testing.T) {
	n := SliceSize * 3
	s := AllocAligned(n)
	if len(s) != n {
		t.Fatalf("AllocAligned(%d) returned length %d", n, len(s))
	}
	addr := uintptr(unsafe.Pointer(&s[0]))
	if addr%SliceSizeBytes != 0 {
		t.Fatalf("AllocAligned returned unaligned buffer at %#x", addr)
	}
}

func TestAllocAligned_RejectsNonMultiple(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AllocAligned with a non-multiple of SliceSize did not panic")
		}
	}()
	AllocAligned(SliceSize + 1)
}
