// Package dispatch implements component G: choosing between the
// sequential and parallel execution strategies and running the scan
// phase across a bounded worker pool. Grounded on the teacher's
// bounded-concurrency pattern in internal/runner/runner.go (a
// sync.WaitGroup plus a channel-backed semaphore sized to a configured
// thread count).
package dispatch

import (
	"context"
	"runtime"
	"sync"

	"github.com/boundaryx/boundaryx/internal/chunking"
	"github.com/boundaryx/boundaryx/internal/language"
	"github.com/boundaryx/boundaryx/internal/scanner"
	"github.com/boundaryx/boundaryx/internal/state"
)

// Strategy selects how Process distributes work across chunks.
type Strategy int

const (
	// Adaptive picks Sequential for inputs under AdaptiveThresholdBytes
	// and Parallel otherwise.
	Adaptive Strategy = iota
	Sequential
	Parallel
)

// AdaptiveThresholdBytes is the input size below which Adaptive
// behaves like Sequential — beneath this, chunking and goroutine
// dispatch cost more than a single-threaded scan saves.
const AdaptiveThresholdBytes = 128 * 1024

// Resolve turns a configured Strategy plus input size into a concrete
// decision to run sequentially or in parallel.
func Resolve(strategy Strategy, inputBytes int) Strategy {
	if strategy != Adaptive {
		return strategy
	}
	if inputBytes < AdaptiveThresholdBytes {
		return Sequential
	}
	return Parallel
}

// ScanAll scans every chunk, in parallel when resolved is Parallel,
// bounded to threads concurrent goroutines (runtime.NumCPU() when
// threads <= 0). It returns chunk results in the same order as chunks,
// or, if any chunk failed, the error of the lowest-indexed failing
// chunk. ctx is checked before each chunk's scan starts: cancellation
// skips chunks not yet started but does not interrupt a running scan.
func ScanAll(ctx context.Context, chunks []chunking.Chunk, text []byte, lang *language.Language, resolved Strategy, threads int) ([]state.PartialState, error) {
	results := make([]state.PartialState, len(chunks))

	scanOne := func(i int) error {
		runes, offsets, err := scanner.DecodeChunk(text[chunks[i].Start:chunks[i].End])
		if err != nil {
			return err
		}
		ps, err := scanner.Scan(runes, offsets, lang)
		if err != nil {
			return err
		}
		ps.OverlapBytes = chunks[i].OverlapBytes
		ps.OverlapCharLength = overlapCharLength(offsets, chunks[i].OverlapBytes)
		results[i] = ps
		return nil
	}

	if resolved == Sequential || len(chunks) <= 1 {
		for i := range chunks {
			if err := ctxErr(ctx); err != nil {
				return nil, err
			}
			if err := scanOne(i); err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	sem := make(chan struct{}, threads)
	var wg sync.WaitGroup
	errs := make([]error, len(chunks))

	for i := range chunks {
		i := i
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := ctxErr(ctx); err != nil {
				errs[i] = err
				return
			}
			errs[i] = scanOne(i)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// overlapCharLength counts how many of the chunk's leading runes fall
// inside its overlapBytes prefix, using the same byteOffsets table
// DecodeChunk produced (offsets[n] is the byte offset of rune n, and
// chunking.Split only ever lands overlapBytes on a rune boundary).
func overlapCharLength(byteOffsets []int, overlapBytes int) int {
	n := 0
	for n < len(byteOffsets)-1 && byteOffsets[n] < overlapBytes {
		n++
	}
	return n
}

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
