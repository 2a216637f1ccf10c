//go:build !radixdebug

package radix64

// debugAssertTotalLen is a no-op in normal builds. Build with -tags radixdebug
// to enable the running-total invariant checks the scheduled split loop
// performs after every slice it scatters.
func debugAssertTotalLen(dest *ActiveSlices, bucket *SplittingBucket, want int) {}
