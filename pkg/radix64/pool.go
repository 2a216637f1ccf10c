package radix64

import "unsafe"

// slicesPerRegion is the number of slices carved out of one backing
// allocation. Batching amortizes the allocator's per-call overhead across
// many slices, which matters at the scale this package targets (spec.md §1:
// "amortizing allocator cost" is one of the two stated performance goals).
const slicesPerRegion = 64

// SlicePool is a free list of SliceSizeBytes-aligned, SliceSize-length key
// slices. It is the arena the scheduler draws working memory from and returns
// it to, so that peak memory stays bounded by the working set of a few tree
// levels rather than the full input size (spec.md §5).
//
// SlicePool is NOT safe for concurrent use. Per spec.md §5 it is exclusively
// owned by a single sort invocation on a single goroutine, which is why this
// is a plain free list rather than github.com/watt-toolkit/capacitor's
// entryPool (pkg/cache/memory/pool.go), which wraps sync.Pool specifically
// because its cache is shared across goroutines. sync.Pool would be the
// wrong tool here even ignoring that: spec.md §5 requires peak memory to
// stay bounded by the pool's own tracked working set, but sync.Pool may
// drop items during any GC with no notification, so a pool built on it
// could silently fall back to the allocator mid-sort and the bound this
// type exists to provide would no longer hold. A free list also gives the
// alignment guarantee Get's callers need (SliceSizeBytes-aligned base
// addresses), which sync.Pool's Get/Put interface has no way to express.
type SlicePool struct {
	free    []unsafe.Pointer // base addresses of available slices
	regions [][]byte         // backing allocations, kept alive and for bookkeeping
	stats   *Stats
}

// NewSlicePool creates an empty pool. The first Get call allocates a region.
func NewSlicePool(stats *Stats) *SlicePool {
	if stats == nil {
		stats = &Stats{}
	}
	return &SlicePool{stats: stats}
}

// Get returns a slice of exactly SliceSize keys, backed by a SliceSizeBytes-
// aligned region. If the free list is nonempty it pops from it; otherwise it
// grows the pool by one region and carves slicesPerRegion slices out of it.
func (p *SlicePool) Get() []uint64 {
	if n := len(p.free); n > 0 {
		base := p.free[n-1]
		p.free = p.free[:n-1]
		p.stats.slicesCheckedOut.Add(1)
		return sliceFromBase(base)
	}

	p.growRegion()
	return p.Get()
}

// Reserve grows the pool ahead of time so that at least n slices are
// available from the free list without touching the allocator mid-sort. It is
// the backing for Config.SliceCapacityHint.
func (p *SlicePool) Reserve(n int) {
	for len(p.free) < n {
		p.growRegion()
	}
}

// Free reclaims the SliceSizeBytes-aligned region backing s and pushes its
// base address back onto the free list. s need not be full length: a
// bucket's trailing slice is routinely freed as a partial prefix (spec.md
// §4.2's Complete, §4.4's split), and the region it is carved from is always
// exactly SliceSizeBytes regardless of how many keys are currently live in
// it, so reclaiming by base address is correct independent of len(s). The
// aligned check is a runtime assertion per spec.md §4.1.
func (p *SlicePool) Free(s []uint64) {
	base := unsafe.Pointer(&s[0])
	assertAligned(uintptr(base), "freed slice")
	p.free = append(p.free, base)
	p.stats.slicesFreed.Add(1)
}

// growRegion allocates one more backing region and carves it into
// slicesPerRegion aligned slices, pushing all of them onto the free list.
func (p *SlicePool) growRegion() {
	// Over-allocate by one slice's worth to guarantee an aligned subrange
	// exists inside the raw allocation, since make([]byte, n) makes no
	// alignment promise stronger than the platform's natural byte alignment.
	// make itself panics on allocation failure, which satisfies spec.md §7's
	// "fails fatally on allocation failure" without any help from us.
	raw := make([]byte, SliceSizeBytes*(slicesPerRegion+1))

	base := uintptr(unsafe.Pointer(&raw[0]))
	misalign := base % SliceSizeBytes
	var offset uintptr
	if misalign != 0 {
		offset = SliceSizeBytes - misalign
	}

	start := unsafe.Pointer(&raw[offset])
	for i := 0; i < slicesPerRegion; i++ {
		ptr := unsafe.Add(start, uintptr(i)*SliceSizeBytes)
		p.free = append(p.free, ptr)
	}

	p.regions = append(p.regions, raw)
	p.stats.regionsAllocated.Add(1)
	p.stats.slicesAllocated.Add(slicesPerRegion)
}

// sliceFromBase reinterprets an aligned base address as a SliceSize-length
// []uint64. The backing array of raw stays referenced transitively through
// p.regions, and base itself is a live pointer into that array, so the region
// is never collected while any slice derived from it is reachable.
func sliceFromBase(base unsafe.Pointer) []uint64 {
	return unsafe.Slice((*uint64)(base), SliceSize)
}

// AllocAligned allocates a []uint64 of exactly n keys whose base address is
// SliceSizeBytes-aligned and whose length is a multiple of SliceSize, using
// the same over-allocate-and-offset technique as SlicePool's own regions.
// This is the helper a caller uses to build the input buffer Scheduler.Split
// requires (spec.md §5's alignment precondition); it is independent of any
// particular pool, since the buffer it returns is owned by the caller, not
// recycled through a free list until Split consumes it.
func AllocAligned(n int) []uint64 {
	if n%SliceSize != 0 {
		panicInvariant(ErrLengthMismatch, "radix64: AllocAligned(%d) is not a multiple of SliceSize %d", n, SliceSize)
	}
	raw := make([]byte, n*8+SliceSizeBytes)

	base := uintptr(unsafe.Pointer(&raw[0]))
	misalign := base % SliceSizeBytes
	var offset uintptr
	if misalign != 0 {
		offset = SliceSizeBytes - misalign
	}

	start := unsafe.Pointer(&raw[offset])
	return unsafe.Slice((*uint64)(start), n)
}
