// Package boundaryx detects sentence boundaries in UTF-8 text, scanning
// independently-chunked regions in parallel and combining their partial
// results through an associative delta-stack monoid so the parallel
// output is always identical to a sequential scan of the whole input.
// Grounded on the teacher's top-level package layout (a root package
// exposing one coordinating entry point, with CLI/runner concerns kept
// in internal/runner and cmd/alterx), adapted from alterx's permutation
// pipeline to this package's scan/combine/reduce pipeline.
package boundaryx

import (
	"context"
	"time"

	"github.com/boundaryx/boundaryx/internal/chunking"
	"github.com/boundaryx/boundaryx/internal/combiner"
	"github.com/boundaryx/boundaryx/internal/dispatch"
	"github.com/boundaryx/boundaryx/internal/errs"
	"github.com/boundaryx/boundaryx/internal/reducer"
	"github.com/boundaryx/boundaryx/internal/state"
)

// BoundaryKind and Boundary are re-exported from internal/state, which
// is where the scanner/combiner/reducer pipeline actually produces them.
type BoundaryKind = state.BoundaryKind
type Boundary = state.Boundary

const (
	StrongTerminator     = state.StrongTerminator
	WeakTerminator       = state.WeakTerminator
	AbbreviationResolved = state.AbbreviationResolved
)

// Stats reports how a Process call broke its input into chunks, plus how
// long it took — grounded on original_source/sakurs-engine/processor.rs
// and its benchmark harness, which report the same counts.
type Stats struct {
	Bytes       int
	Chars       int
	Chunks      int
	Parallel    bool
	OverlapUsed int
	Duration    time.Duration
}

// Output is the result of a Process call: the final, sorted, deduplicated
// boundary list plus diagnostic Stats.
type Output struct {
	Boundaries []Boundary
	Stats      Stats
}

// Process detects sentence boundaries in text according to cfg,
// chunking and scanning in parallel when cfg.Mode resolves to parallel
// execution. It never retries, logs, or returns a partial Output on
// error (spec.md §7): any internal error means a zero Output and a
// non-nil *Error.
func Process(text []byte, cfg Config) (Output, error) {
	return ProcessContext(context.Background(), text, cfg)
}

// ProcessContext is Process with a caller-supplied context so a long
// parallel scan over a very large input can be cancelled mid-flight.
func ProcessContext(ctx context.Context, text []byte, cfg Config) (Output, error) {
	start := time.Now()

	if cfg.Language == nil {
		if err := cfg.Resolve(); err != nil {
			return Output{}, err
		}
	}
	if cfg.Language.EnclosureCount() > 16 {
		return Output{}, errs.New(errs.TooManyEnclosureTypes, "language declares more enclosure types than supported")
	}

	if len(text) == 0 {
		return Output{Stats: Stats{Duration: time.Since(start)}}, nil
	}

	chunks := chunking.Split(text, cfg.ChunkSizeBytes, cfg.OverlapBytes)
	resolved := dispatch.Resolve(cfg.Mode, len(text))
	if cfg.Mode == Adaptive && cfg.AdaptiveThresholdBytes > 0 {
		resolved = Parallel
		if len(text) < cfg.AdaptiveThresholdBytes {
			resolved = Sequential
		}
	}
	if len(chunks) < 2 {
		resolved = dispatch.Sequential
	}

	partials, err := dispatch.ScanAll(ctx, chunks, text, cfg.Language, resolved, cfg.Threads)
	if err != nil {
		return Output{}, wrapScanErr(err)
	}

	starts := combiner.PrefixSum(partials)
	boundaries := reducer.Reduce(partials, starts, cfg.Language)

	totalChars := 0
	totalOverlap := 0
	for i, p := range partials {
		totalChars += p.ChunkRuneLength
		totalOverlap += chunks[i].OverlapBytes
	}

	return Output{
		Boundaries: boundaries,
		Stats: Stats{
			Bytes:       len(text),
			Chars:       totalChars,
			Chunks:      len(chunks),
			Parallel:    resolved == dispatch.Parallel,
			OverlapUsed: totalOverlap,
			Duration:    time.Since(start),
		},
	}, nil
}

func wrapScanErr(err error) error {
	if _, ok := err.(*errs.Error); ok {
		return err
	}
	return errs.Wrap(errs.Io, err)
}
