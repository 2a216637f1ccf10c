package radix64

import "unsafe"

// ActiveSlices is the 256-wide set of in-progress write cursors used while
// splitting one UnsplitBucket (spec.md §3 "Active-slice set", §4.2). It is the
// type a Splitter scatters keys through.
//
// Each cursor either is nil (bucket empty so far) or points one key past the
// last key written into a currently-owned slice. Because every slice is
// SliceSizeBytes-aligned and exactly SliceSize keys long, the cursor's offset
// within its slice doubles as the fill count: a cursor sitting exactly on a
// slice boundary means the slice is full, and any other offset divided by 8
// gives the number of keys written so far. This lets the set carry 256
// (pointer, fill-count) pairs using only 256 words.
type ActiveSlices struct {
	ptrs [NumBuckets]unsafe.Pointer
}

// lenOfPtr returns the number of keys written into the slice ptr points into,
// or 0 if ptr is nil.
func lenOfPtr(ptr unsafe.Pointer) int {
	if ptr == nil {
		return 0
	}
	offset := (uintptr(ptr) % SliceSizeBytes) / 8
	if offset == 0 {
		return SliceSize
	}
	return int(offset)
}

// lenOfBucket returns the fill count of cursor ix.
func (a *ActiveSlices) lenOfBucket(ix int) int {
	return lenOfPtr(a.ptrs[ix])
}

// totalLen sums the fill counts of all 256 cursors.
func (a *ActiveSlices) totalLen() int {
	total := 0
	for ix := range a.ptrs {
		total += a.lenOfBucket(ix)
	}
	return total
}

// InsertElement routes one key into cursor ix, acquiring a new slice from the
// pool whenever the current one is full (spec.md §4.2).
func (a *ActiveSlices) InsertElement(dest *SplittingBucket, pool *SlicePool, key uint64, ix int) {
	ptr := a.ptrs[ix]

	if ptr == nil || uintptr(ptr)%SliceSizeBytes == 0 {
		if ptr != nil {
			// The cursor sits on a slice boundary and is non-nil: the slice it
			// was writing into is now full. Recover its base and hand it to the
			// bucket as a completed child slice.
			full := unsafe.Add(ptr, -SliceSizeBytes)
			dest.children[ix].appendSlice(sliceFromBase(full))
		}
		ptr = unsafe.Pointer(&pool.Get()[0])
	}

	*(*uint64)(ptr) = key
	a.ptrs[ix] = unsafe.Add(ptr, 8)
}

// InsertElements is the batched fast path for InsertElement: if the current
// slice for ix has enough remaining capacity for all of keys, it copies them
// in directly; otherwise it falls back to inserting one key at a time.
func (a *ActiveSlices) InsertElements(dest *SplittingBucket, pool *SlicePool, keys []uint64, ix int) {
	remaining := SliceSize - a.lenOfBucket(ix)
	ptr := a.ptrs[ix]
	if ptr != nil && uintptr(ptr)%SliceSizeBytes != 0 && remaining >= len(keys) {
		dst := unsafe.Slice((*uint64)(ptr), len(keys))
		copy(dst, keys)
		a.ptrs[ix] = unsafe.Add(ptr, 8*len(keys))
		return
	}

	for _, key := range keys {
		a.InsertElement(dest, pool, key, ix)
	}
}

// Complete flushes every non-nil cursor's used prefix into its bucket as a
// final (possibly partial) slice. After Complete, the set must not be reused.
func (a *ActiveSlices) Complete(dest *SplittingBucket) {
	for ix := range a.ptrs {
		ptr := a.ptrs[ix]
		if ptr == nil {
			continue
		}
		n := lenOfPtr(ptr)
		base := unsafe.Add(ptr, -8*n)
		dest.children[ix].appendSlice(unsafe.Slice((*uint64)(base), n))
		a.ptrs[ix] = nil
	}
}
