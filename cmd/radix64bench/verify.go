package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// levelResult is the outcome of checking one level's digit-monotonicity
// property against the sorted output.
type levelResult struct {
	level     int
	numBits   int
	total     int
	incorrect int
}

// checkSplit walks buf once, masking every key to its top numBits bits, and
// counts every position where that masked value decreases relative to the
// highest one seen so far. It does not stop at the first failure: like the
// original check_split sweep this is grounded on, it counts every inversion
// and reports the total, which is far more useful for diagnosing a broken
// splitter than failing fast.
func checkSplit(buf []uint64, numBits int) levelResult {
	var mask uint64 = ^uint64(0)
	if numBits != 64 {
		mask = (uint64(1) << numBits) - 1
	}
	mask <<= 64 - numBits

	res := levelResult{numBits: numBits}
	var current uint64
	for _, key := range buf {
		bucket := key & mask
		res.total++
		switch {
		case current < bucket:
			current = bucket
		case current > bucket:
			res.incorrect++
		}
	}
	return res
}

// verifyAllLevels runs checkSplit for every level 1..maxLevel concurrently,
// one goroutine per level fanned out through an errgroup.Group, and reports
// every level's result. The levels are independent reads over the same
// buffer, so this parallelizes cleanly without touching the sort itself,
// which remains single-threaded (spec.md §5).
func verifyAllLevels(ctx context.Context, buf []uint64, maxLevel int) ([]levelResult, error) {
	results := make([]levelResult, maxLevel)

	g, _ := errgroup.WithContext(ctx)
	for level := 1; level <= maxLevel; level++ {
		level := level
		g.Go(func() error {
			results[level-1] = checkSplit(buf, level*8)
			results[level-1].level = level
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("radix64bench: verification sweep failed: %w", err)
	}
	return results, nil
}
