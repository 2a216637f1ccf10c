package radix64

import (
	"math/rand"
	"testing"
)

func benchmarkInput(b *testing.B, numSlices int) ([]uint64, []uint64) {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	input := AllocAligned(SliceSize * numSlices)
	for i := range input {
		input[i] = rng.Uint64()
	}
	return input, AllocAligned(len(input))
}

func BenchmarkScheduler_Split_8Slices(b *testing.B) {
	input, output := benchmarkInput(b, 8)
	splitter := ScalarSplitter{}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(input)) * 8)

	for i := 0; i < b.N; i++ {
		sched := NewScheduler(NewSchedulerConfig())
		sched.Split(input, output, splitter)
	}
}

func BenchmarkScheduler_Split_64Slices(b *testing.B) {
	input, output := benchmarkInput(b, 64)
	splitter := ScalarSplitter{}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(input)) * 8)

	for i := 0; i < b.N; i++ {
		sched := NewScheduler(NewSchedulerConfig())
		sched.Split(input, output, splitter)
	}
}

func BenchmarkSlicePool_GetFree(b *testing.B) {
	pool := NewSlicePool(nil)
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		s := pool.Get()
		pool.Free(s)
	}
}
