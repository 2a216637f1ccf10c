//go:build radixdebug

package radix64

// debugAssertTotalLen checks that the keys landed so far in a split pass
// (those already flushed into bucket's children, plus those still sitting in
// dest's open cursors) equal want. This mirrors the Rust source's
// debug_assert_eq! calls inside UnsplitBucket::split, compiled out entirely
// unless this package is built with -tags radixdebug.
func debugAssertTotalLen(dest *ActiveSlices, bucket *SplittingBucket, want int) {
	got := dest.totalLen() + bucket.totalSlicesLen()
	if got != want {
		panicInvariant(ErrLengthMismatch, "radix64: total split length %d, want %d", got, want)
	}
}
