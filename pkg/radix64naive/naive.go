// Package radix64naive implements a naive, recursive most-significant-byte
// radix sort over 64-bit unsigned integer keys, using growable slices and
// plain comparison-sort base cases instead of the pooled, depth-first
// scheduler in pkg/radix64. It exists as the reference variant spec.md
// describes alongside the scheduled one: easier to read, with weaker memory
// guarantees (its working set is the full 256-bucket partition at every
// level, not a pool-bounded slice of it).
package radix64naive

import "sort"

const (
	numBuckets         = 256
	smallCaseThreshold = 32
)

// Sort sorts buf in place. buf's backing array is reused as the output
// buffer once every key has been copied into a bucket, so no additional
// allocation proportional to len(buf) happens beyond the 256 per-level
// bucket slices.
func Sort(buf []uint64) {
	if len(buf) == 0 {
		return
	}

	var buckets [numBuckets][]uint64
	for _, key := range buf {
		b := key >> 56
		buckets[b] = append(buckets[b], key)
	}

	// Every key has now been copied into a bucket slice with its own backing
	// array, so buf's own backing array is free to become the output.
	output := buf[:0]
	for b := 0; b < numBuckets; b++ {
		input := buckets[b]
		buckets[b] = nil
		output = sortHelper(input, &buckets, output, 2, uint64(b)<<56)
	}
}

// sortHelper sorts input (the keys landed in one bucket at the given level)
// into output, recursing on the next-lower byte. buckets is reused across
// every call at every level: before recursing into bucket b, its current
// contents are swapped out into input (so further recursion can append into
// it without input going stale), then swapped back and truncated to its
// pre-call length so sibling buckets see a clean slate.
func sortHelper(input []uint64, buckets *[numBuckets][]uint64, output []uint64, level int, bucketID uint64) []uint64 {
	if len(input) <= smallCaseThreshold {
		start := len(output)
		output = append(output, input...)
		tail := output[start:]
		sort.Slice(tail, func(i, j int) bool { return tail[i] < tail[j] })
		return output
	}

	if level == 9 {
		// Eight bytes have already been discriminated across the levels
		// above, so every key remaining here is bit-identical; nothing left
		// to sort.
		return append(output, input...)
	}

	shift := uint((8 - level) * 8)
	const mask = 0xFF

	var bucketLens [numBuckets]int
	for i := range buckets {
		bucketLens[i] = len(buckets[i])
	}

	for _, key := range input {
		b := (key >> shift) & mask
		buckets[b] = append(buckets[b], key)
	}

	var saved []uint64
	for b := 0; b < numBuckets; b++ {
		id := (bucketID &^ (0xFF << shift)) | (uint64(b) << shift)

		saved, buckets[b] = buckets[b], saved
		output = sortHelper(saved[bucketLens[b]:], buckets, output, level+1, id)
		buckets[b], saved = saved, buckets[b]
		// saved now holds whatever scratch buckets[b] held before this swap
		// (the recycled buffer handed off to the previous iteration, already
		// drained back to empty by that iteration's own truncation below).
		// It must be reset to zero length, not truncated to bucketLens[b]:
		// unlike Rust's Vec::truncate (shrink-only, a no-op on an empty
		// vector), Go's s[:n] sets length outright and panics when
		// n > cap(s).
		saved = saved[:0]
	}

	for i := range buckets {
		buckets[i] = buckets[i][:bucketLens[i]]
	}

	return output
}
