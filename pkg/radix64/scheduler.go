package radix64

import "unsafe"

// Config configures a Scheduler before the first Split call.
type Config struct {
	// SliceCapacityHint pre-reserves this many slices in the pool's free list
	// up front, avoiding allocator calls during the timed portion of a sort
	// when the caller already knows roughly how large the working set will
	// be. Zero means grow the pool lazily, one region at a time.
	SliceCapacityHint int
}

// NewSchedulerConfig returns the zero-value default Config.
func NewSchedulerConfig() Config {
	return Config{}
}

// Scheduler drives the scheduled MSB radix sort described in spec.md §4.5: an
// L0 scatter pass over the whole input followed by a depth-first walk of the
// resulting bucket tree, splitting one Unsplit bucket per visit until it is
// small enough to small-sort directly into the output buffer.
//
// A Scheduler owns a SlicePool and a Stats and is not safe for concurrent
// use; Split is a single-threaded, single-pass operation (spec.md §5).
type Scheduler struct {
	pool     *SlicePool
	stats    *Stats
	topLevel *bucket
}

// NewScheduler creates a Scheduler ready for one or more Split calls. The
// pool is shared across calls, so slices recycled by one Split are available
// to the next without returning to the runtime allocator.
func NewScheduler(cfg Config) *Scheduler {
	stats := &Stats{}
	pool := NewSlicePool(stats)
	if cfg.SliceCapacityHint > 0 {
		pool.Reserve(cfg.SliceCapacityHint)
	}
	return &Scheduler{pool: pool, stats: stats}
}

// Stats returns the running counters for this Scheduler's pool and splits.
func (s *Scheduler) Stats() *Stats {
	return s.stats
}

// stackFrame is one level of the depth-first traversal: an in-progress
// iterator (by index) over a fixed 256-wide array of children.
type stackFrame struct {
	children *[NumBuckets]bucket
	idx      int
}

// Split sorts input into output using splitter for every scatter step.
// len(input) must equal len(output) and be a multiple of SliceSize (an empty
// input returns immediately); input and output must begin at
// SliceSizeBytes-aligned addresses (spec.md §5).
//
// Split is not reentrant on the same Scheduler: call it, then GetSplits or a
// fresh Split, not both against the same completed tree.
func (s *Scheduler) Split(input, output []uint64, splitter Splitter) {
	if len(input) != len(output) {
		panicInvariant(ErrLengthMismatch, "radix64: Split input len %d, output len %d", len(input), len(output))
	}
	if len(input) == 0 {
		return
	}
	if len(input)%SliceSize != 0 {
		panicInvariant(ErrLengthMismatch, "radix64: Split input length %d is not a multiple of SliceSize %d", len(input), SliceSize)
	}
	assertAligned(uintptr(unsafe.Pointer(&input[0])), "Split input buffer")
	assertAligned(uintptr(unsafe.Pointer(&output[0])), "Split output buffer")

	numSlices := len(input) / SliceSize
	l0 := &unsplitBucket{slices: make([][]uint64, 0, numSlices)}
	for i := 0; i < numSlices; i++ {
		l0.slices = append(l0.slices, input[i*SliceSize:(i+1)*SliceSize:(i+1)*SliceSize])
	}
	// The caller's input chunks are already SliceSizeBytes-aligned and
	// SliceSize long, so they join the pool's tracked universe of slices here
	// exactly as if they had come from Get(); every one of them is freed by
	// the traversal below, directly or via a further split, which is what
	// makes pool conservation (spec.md §8 property 4) hold end to end.
	s.stats.slicesCheckedOut.Add(int64(numSlices))

	l0Result := l0.split(s.pool, splitter, shiftForLevel(1), 0xFF, s.stats)
	root := &bucket{kind: bucketSplit, split: l0Result.finish()}

	outputIx := 0
	bucketID := uint64(0)

	stack := make([]stackFrame, 0, MaxLevelSplit)
	stack = append(stack, stackFrame{children: &root.split.children})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.idx >= NumBuckets {
			stack = stack[:len(stack)-1]
			continue
		}

		ix := top.idx
		top.idx++
		child := &top.children[ix]
		level := len(stack)
		shift := shiftForLevel(level)
		bucketID = (bucketID &^ (0xFF << shift)) | (uint64(ix) << shift)

		if child.kind == bucketUnsplit {
			switch len(child.unsplit.slices) {
			case 0:
				child.kind = bucketSorted
				child.unsplit = unsplitBucket{}
				continue
			case 1:
				slice := child.unsplit.slices[0]
				splitter.SplitSmall(slice, output[outputIx:outputIx+len(slice)])
				outputIx += len(slice)
				s.pool.Free(slice)
				child.kind = bucketSorted
				child.unsplit = unsplitBucket{}
				continue
			}

			var this unsplitBucket
			this, child.unsplit = child.unsplit, unsplitBucket{}
			splitResult := this.split(s.pool, splitter, shift, 0xFF, s.stats)

			if level == MaxLevelSplit {
				// shift here is shiftForLevel(MaxLevelSplit) == 0: this split
				// just discriminated the last remaining byte, so every one
				// of splitResult's 256 children is now a run of
				// bit-identical keys. There is no level MaxLevelSplit+1 to
				// push onto the stack and nothing left to compare, so flush
				// the children straight to output in bucket order instead of
				// leaving them as unvisited Unsplit nodes.
				outputIx = s.flushFullyDiscriminated(splitResult.finish(), output, outputIx)
				child.kind = bucketSorted
				child.unsplit = unsplitBucket{}
				continue
			}

			child.kind = bucketSplit
			child.split = splitResult.finish()
		}

		if child.kind == bucketSplit && level < MaxLevelSplit {
			stack = append(stack, stackFrame{children: &child.split.children})
		}
	}

	s.topLevel = root
}

// flushFullyDiscriminated copies every child bucket's owned slices into
// output, in bucket order starting at outputIx, and frees each one back to
// the pool. It is only correct to call this against a splitBucket produced
// by splitting at MaxLevelSplit: once every byte of the key has been
// discriminated, each child bucket holds nothing but bit-identical keys, so
// no comparison sort is needed within a child and writing the 256 children
// out in order yields a sorted run. It returns the advanced outputIx.
func (s *Scheduler) flushFullyDiscriminated(sb *splitBucket, output []uint64, outputIx int) int {
	for ix := range sb.children {
		for _, slice := range sb.children[ix].unsplit.slices {
			n := copy(output[outputIx:], slice)
			outputIx += n
			s.pool.Free(slice)
		}
	}
	return outputIx
}

// GetSplits drains the bucket tree left behind by the most recent Split call
// and returns every still-bucketed slice (i.e. every Unsplit leaf that was
// never small-sorted into an output buffer), skipping Sorted subtrees
// entirely. It consumes the tree: after GetSplits returns, the Scheduler
// holds no tree until the next Split.
//
// Split runs its traversal to completion and leaves every leaf Sorted, so
// GetSplits called after a completed Split returns no slices; it does not
// recover the bucketed keys that Split has already written to output.
func (s *Scheduler) GetSplits() [][]uint64 {
	top := s.topLevel
	s.topLevel = nil

	var res [][]uint64
	if top == nil || top.kind != bucketSplit {
		return res
	}

	stack := []stackFrame{{children: &top.split.children}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= NumBuckets {
			stack = stack[:len(stack)-1]
			continue
		}
		child := &f.children[f.idx]
		f.idx++

		switch child.kind {
		case bucketSplit:
			stack = append(stack, stackFrame{children: &child.split.children})
		case bucketUnsplit:
			res = append(res, child.unsplit.slices...)
		case bucketSorted:
		}
	}

	return res
}
