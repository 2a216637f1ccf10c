package radix64

// unsplitBucket holds a sequence of owned slices that together form a
// bucket's key multiset. The last slice may be partially filled; all earlier
// slices are full (spec.md §3).
type unsplitBucket struct {
	slices [][]uint64
}

func (u *unsplitBucket) appendSlice(s []uint64) {
	u.slices = append(u.slices, s)
}

func (u *unsplitBucket) length() int {
	n := 0
	for _, s := range u.slices {
		n += len(s)
	}
	return n
}

// split scatters this bucket's owned slices into 256 children on the next
// digit, returning the in-progress result and freeing every consumed input
// slice back to the pool (spec.md §4.4). Total key count is invariant across
// the call.
func (u *unsplitBucket) split(pool *SlicePool, splitter Splitter, shift uint, mask uint64, stats *Stats) *SplittingBucket {
	slices := u.slices
	u.slices = nil

	dest := &ActiveSlices{}
	result := &SplittingBucket{}

	numSplit := 0
	for _, slice := range slices {
		splitter.Split(slice, shift, mask, dest, result, pool)
		numSplit += len(slice)
		debugAssertTotalLen(dest, result, numSplit)
		pool.Free(slice)
		stats.keysScattered.Add(int64(len(slice)))
	}
	dest.Complete(result)
	stats.splitsPerformed.Add(1)

	return result
}

// SplittingBucket is a bucket currently receiving writes: 256 children, each
// the slices already completed for that digit. The in-progress last slice per
// child lives in the paired ActiveSlices set, not here, until Complete is
// called (spec.md §3). Its fields are unexported; a Splitter reaches it only
// through the ActiveSlices methods it is handed, never by touching children
// directly.
type SplittingBucket struct {
	children [NumBuckets]unsplitBucket
}

// finish closes out a SplittingBucket into a splitBucket, wrapping each
// completed child as an Unsplit bucket.
func (s *SplittingBucket) finish() *splitBucket {
	out := &splitBucket{}
	for ix := range s.children {
		out.children[ix] = bucket{kind: bucketUnsplit, unsplit: s.children[ix]}
	}
	return out
}

// totalSlicesLen sums the key count already landed in every child, i.e. the
// portion of this SplittingBucket not still sitting in the paired
// ActiveSlices cursors. Used only by the radixdebug assertion helpers.
func (s *SplittingBucket) totalSlicesLen() int {
	n := 0
	for i := range s.children {
		n += s.children[i].length()
	}
	return n
}

// splitBucket is a closed-out SplittingBucket: 256 children, each a bucket
// variant (spec.md §3).
type splitBucket struct {
	children [NumBuckets]bucket
}

// bucketKind tags the variant a bucket currently holds. Go has no sum type,
// so the tree is represented as a tagged struct rather than an interface: per
// spec.md §9 "Iteration over partially-mutated tree", the scheduler replaces
// a child in place while a sibling iterator over the same parent array is
// still live, which an index into a fixed array supports cleanly and a
// pointer/interface-based tree would make far easier to get wrong.
type bucketKind uint8

const (
	// bucketUnsplit holds a not-yet-split multiset of keys.
	bucketUnsplit bucketKind = iota
	// bucketSplit holds 256 further children.
	bucketSplit
	// bucketSorted marks a subtree whose contribution has been flushed to the
	// output buffer; it is terminal and carries no payload.
	bucketSorted
)

// bucket is one tagged node of the bucket tree (spec.md §3 "Bucket").
type bucket struct {
	kind    bucketKind
	unsplit unsplitBucket
	split   *splitBucket
}
