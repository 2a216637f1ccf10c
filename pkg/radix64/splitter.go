package radix64

import "sort"

// Splitter performs the scatter step of one bucket split: reading an input
// slice of keys already known to share every byte above shift, and routing
// each one into dest according to the byte at shift (spec.md §4.3).
//
// Split is called once per owned input slice of the bucket being split.
// SplitSmall is the small-bucket fallback the scheduler reaches for once a
// bucket's length drops below further-splitting's break-even point
// (spec.md §4.5 step 4): it sorts input directly into output rather than
// scattering it through another tree level.
//
// Exactly one implementation ships with this package, ScalarSplitter. The
// interface exists so a SIMD or multithreaded splitter (spec.md §9's
// pluggable-splitter non-goal) can be swapped in without touching the
// scheduler.
type Splitter interface {
	Split(input []uint64, shift uint, mask uint64, dest *ActiveSlices, bucket *SplittingBucket, pool *SlicePool)
	SplitSmall(input, output []uint64)
}

// ScalarSplitter is the default Splitter: a plain byte-at-a-time scatter loop
// with no vectorization, grounded on splitters.rs's ScalarSplitter.
type ScalarSplitter struct{}

// Split scatters every key of input into dest according to the byte selected
// by shift and mask.
func (ScalarSplitter) Split(input []uint64, shift uint, mask uint64, dest *ActiveSlices, bucket *SplittingBucket, pool *SlicePool) {
	for _, key := range input {
		ix := digit(key, shift, mask)
		dest.InsertElement(bucket, pool, key, int(ix))
	}
}

// SplitSmall copies input into output and sorts it in place. It panics if the
// two slices differ in length (spec.md §4.5's small-bucket path never calls
// it otherwise; a mismatch here is a scheduler bug, not a caller error).
func (ScalarSplitter) SplitSmall(input, output []uint64) {
	if len(input) != len(output) {
		panicInvariant(ErrLengthMismatch, "radix64: SplitSmall input len %d, output len %d", len(input), len(output))
	}
	copy(output, input)
	sort.Slice(output, func(i, j int) bool { return output[i] < output[j] })
}
