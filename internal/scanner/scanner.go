// Package scanner implements component C of the boundary-detection
// pipeline: a single forward pass over one chunk that tracks enclosure
// depth with a deltavec.Vec and asks the language rule set to classify
// each terminator candidate, grounded on the teacher's single-pass
// token scan in mutator.go and on original_source/sakurs-core's
// DeltaScanner (src/delta_stack.rs).
package scanner

import (
	"unicode/utf8"

	"github.com/boundaryx/boundaryx/internal/classifier"
	"github.com/boundaryx/boundaryx/internal/deltavec"
	"github.com/boundaryx/boundaryx/internal/errs"
	"github.com/boundaryx/boundaryx/internal/language"
	"github.com/boundaryx/boundaryx/internal/state"
)

// maxWordCapture bounds how many trailing/leading runes Scan captures
// into EdgeContext.TailWord/HeadWord/LeadingPartialWord — enough to hold
// any realistic abbreviation or contraction straddling a chunk seam.
const maxWordCapture = 24

// Scan runs the chunk scanner over a single chunk's text, producing the
// PartialState monoid element spec.md §3/§5 describes. byteOffsets[i]
// must equal the byte offset of runes[i] within the chunk, and must
// have one trailing entry equal to the chunk's total byte length — the
// same convention utf8.RuneCountInString callers use for O(1) windowed
// lookups without re-decoding.
func Scan(runes []rune, byteOffsets []int, lang *language.Language) (state.PartialState, error) {
	k := lang.EnclosureCount()
	if k > deltavec.MaxTypes {
		return state.PartialState{}, errs.New(errs.TooManyEnclosureTypes, "language declares more enclosure types than supported")
	}

	ps := state.PartialState{
		ChunkLength:     byteOffsets[len(byteOffsets)-1],
		ChunkRuneLength: len(runes),
	}
	if len(runes) == 0 {
		return ps, nil
	}

	ps.Edge.HeadAlpha = classifier.Classify(runes[0]) == classifier.Alpha
	ps.Edge.HeadWord = captureHeadWord(runes)

	var depths deltavec.Vec
	consecutiveDots := 0

	for i, r := range runes {
		if match, ok := lang.Enclosure(r); ok {
			depths.Apply(match.TypeID, resolveDelta(&depths, match))
		}

		if lang.IsTerminator(r) {
			ctx := suppressionWindow(runes, i)
			decision, role := lang.BoundaryDecisionWithRole(runes, i, consecutiveDots, ctx)
			switch decision {
			case language.AcceptStrong, language.AcceptWeak:
				flags := state.Weak
				if decision == language.AcceptStrong {
					flags = state.Strong
				}
				ps.Candidates = append(ps.Candidates, state.BoundaryCandidate{
					LocalOffset:     byteOffsets[i+1],
					LocalCharOffset: i + 1,
					LocalDepths:     depths,
					Flags:           flags,
					Abbreviation:    role == language.AbbrevDot,
				})
				if r == '.' && noBreakBefore(runes, i) {
					ps.Edge.LeadingDot = true
					ps.Edge.LeadingOffset = byteOffsets[i+1]
					ps.Edge.LeadingCharOffset = i + 1
					ps.Edge.LeadingPartialWord = string(runes[:i])
					ps.Edge.LeadingFollowsStarter = true
				}
			case language.NeedsLookahead:
				if r == '.' && noBreakBefore(runes, i) {
					// Ambiguous on both sides: the backward trie search
					// may have been truncated by the chunk start, and/or
					// the forward word scan ran off the chunk end. Park
					// it as a leading candidate the reducer can confirm
					// or retract once it sees the previous chunk's tail.
					ps.Edge.LeadingDot = true
					ps.Edge.LeadingOffset = byteOffsets[i+1]
					ps.Edge.LeadingCharOffset = i + 1
					ps.Edge.LeadingPartialWord = string(runes[:i])
					ps.Edge.LeadingFollowsStarter = false
				} else {
					ps.Edge.DanglingTerminator = true
					ps.Edge.DanglingOffset = byteOffsets[i+1]
					ps.Edge.DanglingCharOffset = i + 1
					ps.Edge.DanglingStrong = lang.IsStrong(r)
				}
			}
		}

		if r == '.' {
			consecutiveDots++
		} else {
			consecutiveDots = 0
		}
	}

	ps.Deltas = depths
	ps.Edge.TailWord = captureTailWord(runes)
	return ps, nil
}

// resolveDelta turns an EnclosureMatch into the signed delta to apply:
// a symmetric pair (quotes) toggles based on the type's current net
// depth, since the same rune opens when depth is even and closes when
// depth is odd.
func resolveDelta(depths *deltavec.Vec, match language.EnclosureMatch) int32 {
	if !match.Symmetric {
		return match.Delta
	}
	if depths[match.TypeID].Net%2 == 0 {
		return 1
	}
	return -1
}

// noBreakBefore reports whether runes[0:idx] is free of whitespace,
// meaning idx still lies within the chunk's first token and a longer
// abbreviation spilling over from the previous chunk cannot be ruled
// out by local context alone.
func noBreakBefore(runes []rune, idx int) bool {
	for i := 0; i < idx; i++ {
		if classifier.Classify(runes[i]) == classifier.Whitespace {
			return false
		}
	}
	return true
}

func captureHeadWord(runes []rune) string {
	n := len(runes)
	if n > maxWordCapture {
		n = maxWordCapture
	}
	return string(runes[:n])
}

func captureTailWord(runes []rune) string {
	start := len(runes)
	for start > 0 && len(runes)-start < maxWordCapture &&
		(classifier.IsAlphaOrDigit(runes[start-1]) || runes[start-1] == '.') {
		start--
	}
	return string(runes[start:])
}

const suppressionRadius = 30

func suppressionWindow(runes []rune, idx int) language.SuppressionContext {
	start := idx - suppressionRadius
	if start < 0 {
		start = 0
	}
	end := idx + suppressionRadius + 1
	if end > len(runes) {
		end = len(runes)
	}
	return language.SuppressionContext{
		Window: runes[start:end],
		Pos:    idx - start,
	}
}

// DecodeChunk converts a byte-slice chunk into a rune slice plus its
// parallel byte-offset table, validating UTF-8 as it goes (spec.md §7's
// InvalidEncoding case). byteOffsets has len(runes)+1 entries.
func DecodeChunk(chunk []byte) ([]rune, []int, error) {
	runes := make([]rune, 0, len(chunk))
	offsets := make([]int, 0, len(chunk)+1)
	i := 0
	for i < len(chunk) {
		r, size := utf8.DecodeRune(chunk[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, nil, errs.New(errs.InvalidEncoding, "chunk contains invalid UTF-8")
		}
		offsets = append(offsets, i)
		runes = append(runes, r)
		i += size
	}
	offsets = append(offsets, i)
	return runes, offsets, nil
}
