package radix64

import "sync/atomic"

// Stats holds running counters for a Scheduler's slice pool and bucket-tree
// traversal, using lock-free atomic operations for updates.
//
// The sort itself is single-threaded (spec.md §5), so these counters are never
// contended in the core hot path; they are kept atomic anyway so a future
// pluggable parallel Splitter (the multithreaded non-goal spec.md explicitly
// leaves room for) can update them without a data race, and so a caller may
// safely read a Stats snapshot from another goroutine while a sort is in
// flight (e.g. to log progress).
type Stats struct {
	slicesAllocated  atomic.Int64 // slices carved out of backing regions, cumulative
	slicesCheckedOut atomic.Int64 // successful Get() calls plus input chunks adopted by Scheduler.Split, cumulative
	slicesFreed      atomic.Int64 // slices returned to the free list, cumulative
	regionsAllocated atomic.Int64 // batched make([]byte, ...) calls
	splitsPerformed  atomic.Int64 // UnsplitBucket.split invocations
	keysScattered    atomic.Int64 // keys routed through Splitter.Split
}

// StatsSnapshot is a point-in-time, non-atomic copy of Stats for logging or
// assertions.
type StatsSnapshot struct {
	SlicesAllocated  int64
	SlicesCheckedOut int64
	SlicesFreed      int64
	RegionsAllocated int64
	SplitsPerformed  int64
	KeysScattered    int64
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		SlicesAllocated:  s.slicesAllocated.Load(),
		SlicesCheckedOut: s.slicesCheckedOut.Load(),
		SlicesFreed:      s.slicesFreed.Load(),
		RegionsAllocated: s.regionsAllocated.Load(),
		SplitsPerformed:  s.splitsPerformed.Load(),
		KeysScattered:    s.keysScattered.Load(),
	}
}

// PoolBalance returns the net number of slices currently checked out of the
// pool (checked out minus freed). A fully completed sort must return zero
// (spec.md §8 property 4, "pool conservation").
func (s StatsSnapshot) PoolBalance() int64 {
	return s.SlicesCheckedOut - s.SlicesFreed
}
