// Package state holds the data types that flow between the scanner,
// combiner and reducer phases (components C, D, E in spec.md §2), kept
// in their own package so none of those phases need to import each
// other just to share a struct definition.
package state

import "github.com/boundaryx/boundaryx/internal/deltavec"

// Flags marks whether a candidate comes from a strong terminator
// (!, ?, their language-specific equivalents) or a weak one (.).
type Flags uint8

const (
	Weak Flags = iota
	Strong
)

// BoundaryCandidate is a potential sentence end within one chunk, not yet
// validated against the chunk's global enclosure depth.
type BoundaryCandidate struct {
	// LocalOffset is the byte offset within the chunk immediately after
	// the terminator character.
	LocalOffset int
	// LocalCharOffset is the rune offset within the chunk immediately
	// after the terminator character.
	LocalCharOffset int
	// LocalDepths is DeltaVec.Net per enclosure type at LocalOffset,
	// relative to the start of the chunk.
	LocalDepths deltavec.Vec
	Flags       Flags
	// Abbreviation is set when this candidate followed a dot classified
	// AbbrevDot; it is carried through so the reducer's cross-chunk
	// reconciliation pass can still resurrect it if a sentence starter
	// follows, and so it can be dropped cleanly otherwise.
	Abbreviation bool
}

// EdgeContext carries what the scanner learned about the very start and
// end of its chunk, needed to resolve patterns straddling a chunk seam
// (an abbreviation dot at the tail, a contraction apostrophe at the
// head, a word split across the boundary).
type EdgeContext struct {
	// DanglingTerminator is true when a terminator in the chunk could not
	// be decided from the chunk alone (the language returned
	// NeedsLookahead), e.g. a dot that is the chunk's last rune. When
	// several qualify, the last one is recorded.
	DanglingTerminator bool
	// DanglingOffset is the LocalOffset of the dangling candidate, valid
	// only when DanglingTerminator is true.
	DanglingOffset int
	// DanglingCharOffset is the LocalCharOffset counterpart of DanglingOffset.
	DanglingCharOffset int
	// DanglingStrong carries the would-be candidate's Flags, so the
	// reconciliation pass can re-emit it with the right Kind if resurrected.
	DanglingStrong bool
	// HeadAlpha is true when the chunk's first rune is alphabetic.
	HeadAlpha bool
	// TailWord is up to N trailing characters of the chunk's last
	// partial token (letters/digits, dots allowed for abbreviation runs).
	TailWord string
	// HeadWord is up to N leading runes of the chunk taken as they are,
	// leading whitespace and punctuation included; the reducer extracts
	// the first word from it.
	HeadWord string

	// LeadingDot is true when the chunk's very first token contains a
	// '.' that the scanner could only classify as Ordinary/AbbrevDot
	// optimistically, because the backward trie search ran off the
	// start of the chunk and so may have missed a longer abbreviation
	// that continues into the previous chunk's tail (e.g. this chunk
	// starts "S.A. He left." after a previous chunk ending "...the U").
	LeadingDot bool
	// LeadingOffset is the LocalOffset of the optimistic candidate that
	// was emitted for LeadingDot, so the reducer's reconciliation pass
	// can retract it.
	LeadingOffset int
	// LeadingCharOffset is the LocalCharOffset counterpart of LeadingOffset.
	LeadingCharOffset int
	// LeadingPartialWord is the run of letters/digits/dots from the
	// start of the chunk up to (not including) the dot at LeadingOffset.
	LeadingPartialWord string
	// LeadingFollowsStarter records whether the word immediately after
	// LeadingOffset was a known sentence starter, i.e. whether the
	// optimistic candidate was accepted (true) or already rejected and
	// merely parked for possible resurrection (false).
	LeadingFollowsStarter bool
}

// PartialState is one chunk's scan result: a monoid element under
// Combine, with DeltaVec combining componentwise, Candidates of the
// right-hand operand shifted by the left operand's ChunkLength, and only
// the outer edges of EdgeContext kept (see Combine; inner seams are
// reconciled by the reducer).
type PartialState struct {
	Candidates []BoundaryCandidate
	Deltas     deltavec.Vec
	// ChunkLength is the chunk's length in bytes.
	ChunkLength int
	// ChunkRuneLength is the chunk's length in runes; tracked alongside
	// ChunkLength so the combiner can prefix-sum char offsets the same
	// way it prefix-sums byte offsets, without re-decoding UTF-8.
	ChunkRuneLength int
	// OverlapBytes is chunking.Chunk.OverlapBytes carried alongside the
	// scan result: how many bytes at the front of this chunk duplicate
	// the tail of the previous chunk (0 for the first chunk). The
	// combiner subtracts it when prefix-summing global offsets, and the
	// reducer uses it to skip candidates found inside the duplicated
	// prefix rather than double-counting them.
	OverlapBytes int
	// OverlapCharLength is the rune-count counterpart of OverlapBytes.
	OverlapCharLength int
	Edge              EdgeContext
}

// Combine implements the PartialState monoid operation (spec.md §3, §9).
// It is pure and associative: deltas combine componentwise through
// deltavec.Vec.Combine, right-hand candidates are offset by the
// left-hand operand's ChunkLength, and only the outer edges of the
// resulting pair survive as its new EdgeContext. Reconciling an inner
// seam (a's tail against b's head — abbreviations, contractions, or a
// leading dot straddling the two chunks) is deliberately NOT done here;
// it happens in a separate reducer pass so this operation stays a law-
// abiding monoid that chunk-level parallel reduction can reassociate
// freely.
func (a PartialState) Combine(b PartialState) PartialState {
	shifted := make([]BoundaryCandidate, 0, len(a.Candidates)+len(b.Candidates))
	shifted = append(shifted, a.Candidates...)
	for _, c := range b.Candidates {
		c.LocalOffset += a.ChunkLength
		c.LocalCharOffset += a.ChunkRuneLength
		shifted = append(shifted, c)
	}
	return PartialState{
		Candidates:        shifted,
		Deltas:            a.Deltas.Combine(b.Deltas),
		ChunkLength:       a.ChunkLength + b.ChunkLength,
		ChunkRuneLength:   a.ChunkRuneLength + b.ChunkRuneLength,
		OverlapBytes:      a.OverlapBytes,
		OverlapCharLength: a.OverlapCharLength,
		Edge: EdgeContext{
			DanglingTerminator: b.Edge.DanglingTerminator,
			DanglingOffset:     a.ChunkLength + b.Edge.DanglingOffset,
			DanglingCharOffset: a.ChunkRuneLength + b.Edge.DanglingCharOffset,
			DanglingStrong:     b.Edge.DanglingStrong,
			HeadAlpha:          a.Edge.HeadAlpha,
			TailWord:           b.Edge.TailWord,
			HeadWord:           a.Edge.HeadWord,

			LeadingDot:            a.Edge.LeadingDot,
			LeadingOffset:         a.Edge.LeadingOffset,
			LeadingCharOffset:     a.Edge.LeadingCharOffset,
			LeadingPartialWord:    a.Edge.LeadingPartialWord,
			LeadingFollowsStarter: a.Edge.LeadingFollowsStarter,
		},
	}
}

// ChunkStartState is the cumulative (DeltaVec, global byte/char offset)
// produced by the prefix-sum phase (component D), representing the
// global enclosure state at the start of a chunk.
type ChunkStartState struct {
	Cumulative       deltavec.Vec
	GlobalOffset     int
	GlobalCharOffset int
}

// BoundaryKind classifies why a Boundary was emitted.
type BoundaryKind uint8

const (
	StrongTerminator BoundaryKind = iota
	WeakTerminator
	AbbreviationResolved
)

func (k BoundaryKind) String() string {
	switch k {
	case StrongTerminator:
		return "StrongTerminator"
	case WeakTerminator:
		return "WeakTerminator"
	case AbbreviationResolved:
		return "AbbreviationResolved"
	default:
		return "Unknown"
	}
}

// Boundary is the final emitted unit.
type Boundary struct {
	ByteOffset uint64
	CharOffset uint64
	Kind       BoundaryKind
}
