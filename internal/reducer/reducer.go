// Package reducer implements component E: turning each chunk's
// BoundaryCandidates plus the prefix-summed ChunkStartStates into the
// final, globally valid list of sentence boundaries. It does two
// things the scanner and combiner deliberately defer: validating a
// candidate against the *global* cumulative enclosure depth (so a
// terminator inside quotes that opened in an earlier chunk is still
// suppressed), and reconciling abbreviation/contraction patterns that
// straddle a chunk seam — kept out of PartialState.Combine so that
// operation stays a pure, reassociable monoid (spec.md §9).
package reducer

import (
	"sort"

	"github.com/boundaryx/boundaryx/internal/deltavec"
	"github.com/boundaryx/boundaryx/internal/language"
	"github.com/boundaryx/boundaryx/internal/state"
)

// Reduce validates every chunk's candidates against the global depth at
// its position, reconciles the seams between adjacent chunks, and
// returns the final, strictly increasing list of boundaries.
func Reduce(chunks []state.PartialState, starts []state.ChunkStartState, lang *language.Language) []state.Boundary {
	boundaries := make([]state.Boundary, 0, len(chunks))

	for i, chunk := range chunks {
		start := starts[i]
		for _, c := range chunk.Candidates {
			if c.LocalOffset < chunk.OverlapBytes {
				// Already emitted by the previous chunk's scan of this
				// same duplicated span; skip it here rather than rely
				// on dedup() to reconcile two independently-computed
				// candidates that may disagree on Kind.
				continue
			}
			if !globallyUnenclosed(start.Cumulative, c.LocalDepths, lang.EnclosureCount()) {
				continue
			}
			boundaries = append(boundaries, state.Boundary{
				ByteOffset: uint64(start.GlobalOffset + c.LocalOffset),
				CharOffset: uint64(start.GlobalCharOffset + c.LocalCharOffset),
				Kind:       boundaryKind(c),
			})
		}
	}

	reconcileSeams(chunks, starts, lang, &boundaries)
	finalizeDocumentEdges(chunks, starts, &boundaries)

	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].ByteOffset < boundaries[j].ByteOffset })
	return dedup(boundaries)
}

// finalizeDocumentEdges resolves the two ambiguities that reconcileSeams
// leaves untouched because they fall outside any chunk pair: a
// NeedsLookahead at byte 0 of the whole input (nothing precedes it to
// complete an abbreviation, so it is not actually ambiguous) and a
// DanglingTerminator at the very end of the whole input (nothing follows
// it to reject the boundary, so it is not actually ambiguous either).
// Both default to acceptance, since reaching a true document edge is
// itself sufficient reason to end whatever sentence was open.
func finalizeDocumentEdges(chunks []state.PartialState, starts []state.ChunkStartState, boundaries *[]state.Boundary) {
	if len(chunks) == 0 {
		return
	}

	first := chunks[0]
	if first.Edge.LeadingDot && !hasCandidateAt(first, first.Edge.LeadingOffset) {
		*boundaries = append(*boundaries, state.Boundary{
			ByteOffset: uint64(first.Edge.LeadingOffset),
			CharOffset: uint64(first.Edge.LeadingCharOffset),
			Kind:       state.WeakTerminator,
		})
	}

	lastIdx := len(chunks) - 1
	last := chunks[lastIdx]
	if last.Edge.DanglingTerminator {
		kind := state.WeakTerminator
		if last.Edge.DanglingStrong {
			kind = state.StrongTerminator
		}
		*boundaries = append(*boundaries, state.Boundary{
			ByteOffset: uint64(starts[lastIdx].GlobalOffset + last.Edge.DanglingOffset),
			CharOffset: uint64(starts[lastIdx].GlobalCharOffset + last.Edge.DanglingCharOffset),
			Kind:       kind,
		})
	}
}

func hasCandidateAt(chunk state.PartialState, localOffset int) bool {
	for _, c := range chunk.Candidates {
		if c.LocalOffset == localOffset {
			return true
		}
	}
	return false
}

// globallyUnenclosed reports whether, for every enclosure type, the
// cumulative depth carried in from before this chunk plus the chunk-
// local depth at the candidate's position is exactly zero — the
// validation spec.md §4.5a assigns to the reducer.
func globallyUnenclosed(cumulative, local deltavec.Vec, k int) bool {
	for t := 0; t < k; t++ {
		if cumulative[t].Net+local[t].Net != 0 {
			return false
		}
	}
	return true
}

func boundaryKind(c state.BoundaryCandidate) state.BoundaryKind {
	if c.Abbreviation {
		return state.AbbreviationResolved
	}
	if c.Flags == state.Strong {
		return state.StrongTerminator
	}
	return state.WeakTerminator
}

// reconcileSeams walks each adjacent pair of chunks and resolves the two
// patterns that can only be decided once both sides of a seam are known:
// a DanglingTerminator in chunk i resurrected by a sentence-starter head
// word in chunk i+1, and a LeadingDot in chunk i+1 retracted because it
// turns out to continue an abbreviation whose earlier parts live in
// chunk i's tail.
func reconcileSeams(chunks []state.PartialState, starts []state.ChunkStartState, lang *language.Language, boundaries *[]state.Boundary) {
	for i := 0; i+1 < len(chunks); i++ {
		left, right := chunks[i], chunks[i+1]

		if left.Edge.DanglingTerminator {
			headWord := firstWord(right.Edge.HeadWord)
			if lang.IsSentenceStarter(headWord) {
				kind := state.WeakTerminator
				if left.Edge.DanglingStrong {
					kind = state.StrongTerminator
				}
				*boundaries = append(*boundaries, state.Boundary{
					ByteOffset: uint64(starts[i].GlobalOffset + left.Edge.DanglingOffset),
					CharOffset: uint64(starts[i].GlobalCharOffset + left.Edge.DanglingCharOffset),
					Kind:       kind,
				})
			}
		}

		if right.Edge.LeadingDot {
			combinedWord := left.Edge.TailWord + right.Edge.LeadingPartialWord
			if lang.IsAbbreviation(combinedWord) {
				// The dot really does sit inside a longer abbreviation
				// that only becomes visible once both chunks are joined;
				// retract the optimistic candidate unless its own
				// following word was independently a sentence starter.
				if !right.Edge.LeadingFollowsStarter {
					retract(boundaries, uint64(starts[i+1].GlobalOffset+right.Edge.LeadingOffset))
				}
			}
		}
	}
}

func retract(boundaries *[]state.Boundary, byteOffset uint64) {
	out := (*boundaries)[:0]
	for _, b := range *boundaries {
		if b.ByteOffset == byteOffset {
			continue
		}
		out = append(out, b)
	}
	*boundaries = out
}

// firstWord returns the first run of non-whitespace runes in s, skipping
// any leading whitespace first — a chunk's HeadWord capture starts at
// the chunk's literal first byte, which may itself be mid-whitespace.
func firstWord(s string) string {
	runes := []rune(s)
	i := 0
	for i < len(runes) && isSpace(runes[i]) {
		i++
	}
	j := i
	for j < len(runes) && !isSpace(runes[j]) {
		j++
	}
	return string(runes[i:j])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func dedup(boundaries []state.Boundary) []state.Boundary {
	if len(boundaries) == 0 {
		return boundaries
	}
	out := boundaries[:1]
	for _, b := range boundaries[1:] {
		if b.ByteOffset == out[len(out)-1].ByteOffset {
			continue
		}
		out = append(out, b)
	}
	return out
}
