// Package combiner implements component D: the prefix-sum phase that
// turns each chunk's local PartialState into the global enclosure depth
// at that chunk's start, so the reducer can validate candidates without
// ever looking outside its own chunk. Grounded on
// original_source/sakurs-core's PrefixSumComputer (src/domain/prefix_sum.rs),
// including its small-n sequential fallback and its work-efficient
// parallel up-sweep/down-sweep for larger n.
package combiner

import (
	"sync"

	"github.com/boundaryx/boundaryx/internal/deltavec"
	"github.com/boundaryx/boundaryx/internal/state"
)

// sequentialThreshold mirrors the teacher's small-n cutoff: below this
// many chunks the bookkeeping of a parallel tree costs more than it
// saves, so PrefixSum just walks the slice once.
const sequentialThreshold = 16

// PrefixSum computes, for every chunk, the cumulative DeltaVec and byte
// offset of everything that came before it — the monoid prefix-sum
// spec.md §5 assigns to component D. The result has one entry per input
// chunk; result[i] is the state the world was in right before chunk i
// began.
func PrefixSum(chunks []state.PartialState) []state.ChunkStartState {
	n := len(chunks)
	result := make([]state.ChunkStartState, n)
	if n == 0 {
		return result
	}
	if n <= sequentialThreshold {
		sequentialPrefixSum(chunks, result)
		return result
	}
	parallelPrefixSum(chunks, result)
	return result
}

// sequentialPrefixSum walks the chunks once, tracking both the
// cumulative DeltaVec and the running byte/char offset. Each chunk's
// own OverlapBytes/OverlapCharLength — how much of its front duplicates
// the previous chunk's tail — is subtracted from the running offset
// before it is recorded, and that reduction persists into every chunk
// that follows (chunking.Chunk.Start is itself built the same way: each
// chunk's start is pulled back by its own overlap from where the
// previous chunk ended).
func sequentialPrefixSum(chunks []state.PartialState, result []state.ChunkStartState) {
	var cumulative deltavec.Vec
	offset, charOffset := 0, 0
	for i, c := range chunks {
		offset -= c.OverlapBytes
		charOffset -= c.OverlapCharLength
		result[i] = state.ChunkStartState{Cumulative: cumulative, GlobalOffset: offset, GlobalCharOffset: charOffset}
		cumulative = cumulative.Combine(c.Deltas)
		offset += c.ChunkLength
		charOffset += c.ChunkRuneLength
	}
}

// parallelPrefixSum is the classic work-efficient exclusive-scan: an
// up-sweep builds partial reductions over a balanced binary tree sized
// to the next power of two, then a down-sweep distributes each node's
// left-sibling prefix back down to the leaves. Every node touched by a
// tree level is independent of its siblings at that level, so each
// pair at a level runs on its own goroutine (one goroutine per pair; the
// count is not bounded by a pool).
func parallelPrefixSum(chunks []state.PartialState, result []state.ChunkStartState) {
	n := len(chunks)
	size := 1
	for size < n {
		size *= 2
	}

	deltas := make([]deltavec.Vec, size)
	offsets := make([]int, size)
	charOffsets := make([]int, size)
	for i, c := range chunks {
		deltas[i] = c.Deltas
		offsets[i] = c.ChunkLength
		charOffsets[i] = c.ChunkRuneLength
	}

	// Up-sweep (reduction).
	for stride := 1; stride < size; stride *= 2 {
		runLevel(size, stride, func(left, right int) {
			deltas[right] = deltas[left].Combine(deltas[right])
			offsets[right] = offsets[left] + offsets[right]
			charOffsets[right] = charOffsets[left] + charOffsets[right]
		})
	}

	// Down-sweep: seed the root with identity, then at each level push
	// the left child's pre-level value to the right child while the
	// left child takes on the parent's incoming prefix.
	deltas[size-1] = deltavec.Vec{}
	offsets[size-1] = 0
	charOffsets[size-1] = 0
	for stride := size / 2; stride >= 1; stride /= 2 {
		runLevel(size, stride, func(left, right int) {
			leftDelta, leftOffset, leftCharOffset := deltas[left], offsets[left], charOffsets[left]
			deltas[left], offsets[left], charOffsets[left] = deltas[right], offsets[right], charOffsets[right]
			deltas[right] = deltas[right].Combine(leftDelta)
			offsets[right] = leftOffset + offsets[right]
			charOffsets[right] = leftCharOffset + charOffsets[right]
		})
	}

	// offsets[i]/charOffsets[i] are the exclusive prefix sums of
	// ChunkLength/ChunkRuneLength — where chunk i would start if chunks
	// were laid end-to-end with no overlap. Each chunk's own overlap
	// duplicates bytes already counted by the chunk before it, and that
	// reduction carries forward to every later chunk too, so the
	// correction is an inclusive running sum of OverlapBytes subtracted
	// off (mirrors sequentialPrefixSum's persistent subtraction; kept as
	// a cheap sequential pass since n is small enough that parallelizing
	// it would not pay for itself).
	overlapCum, overlapCharCum := 0, 0
	for i := 0; i < n; i++ {
		overlapCum += chunks[i].OverlapBytes
		overlapCharCum += chunks[i].OverlapCharLength
		result[i] = state.ChunkStartState{
			Cumulative:       deltas[i],
			GlobalOffset:     offsets[i] - overlapCum,
			GlobalCharOffset: charOffsets[i] - overlapCharCum,
		}
	}
}

// runLevel applies combine to every (left, right) pair at one tree
// level, where right = left + stride and left runs stride, 3*stride,
// 5*stride, .... Pairs at the same level never share an index, so they
// can run concurrently.
func runLevel(size, stride int, combine func(left, right int)) {
	var wg sync.WaitGroup
	for left := stride - 1; left+stride < size; left += 2 * stride {
		right := left + stride
		wg.Add(1)
		go func(l, r int) {
			defer wg.Done()
			combine(l, r)
		}(left, right)
	}
	wg.Wait()
}
