package language

import (
	"regexp"
	"unicode"

	"github.com/boundaryx/boundaryx/internal/classifier"
)

// enclosureDef is one compiled enclosure pair, assigned a stable type ID
// in [0, K) at Compile time.
type enclosureDef struct {
	typeID    int
	open      rune
	close     rune
	symmetric bool
}

// EnclosureMatch is returned by Language.Enclosure.
type EnclosureMatch struct {
	TypeID    int
	Delta     int32 // +1 for an opener, -1 for a closer; symmetric is resolved by the scanner's current depth
	Symmetric bool
}

// DotRole classifies a '.' by its neighbours, per spec.md §4.2.
type DotRole uint8

const (
	Ordinary DotRole = iota
	EllipsisTail
	DecimalDot
	AbbrevDot
)

// Decision is the outcome of BoundaryDecision.
type Decision uint8

const (
	Reject Decision = iota
	AcceptWeak
	AcceptStrong
	NeedsLookahead
)

// Language is an immutable, compiled rule set (component B). It is built
// once by Compile/LoadFile/LoadBytes and shared read-only across all
// chunk scans for its language, per spec.md §3's lifecycle rule. None of
// its methods know anything about chunking — they operate purely on the
// rune slice they are handed, so the same Language serves both the
// sequential strategy (handed the whole text) and the chunk scanner
// (handed one chunk). Proximity to the edge of that slice is what makes
// BoundaryDecision return NeedsLookahead; interpreting *why* (start of
// input vs. seam between chunks) is the scanner's job, not this package's.
type Language struct {
	Code                     string
	CaseSensitiveAbbrev      bool
	DemoteStrongInEnclosures bool

	terminators       map[rune]bool
	strongTerminators map[rune]bool
	enclosures        []enclosureDef
	enclosureByRune   map[rune]enclosureDef
	abbrevTrie        *Trie
	sentenceStarters  map[string]bool
	fastPatterns      []fastPatternFunc
	regexPatterns     []*regexp.Regexp
	ellipsis          EllipsisConfig
}

// EnclosureCount returns K, the number of distinct enclosure types this
// language declares.
func (l *Language) EnclosureCount() int { return len(l.enclosures) }

// IsTerminator reports whether r is one of this language's sentence
// terminator runes.
func (l *Language) IsTerminator(r rune) bool { return l.terminators[r] }

// IsStrong reports whether r is a strong terminator (!, ?, and
// language-declared equivalents); '.' is weak by default.
func (l *Language) IsStrong(r rune) bool { return l.strongTerminators[r] }

// Enclosure reports whether r participates in an enclosure pair.
func (l *Language) Enclosure(r rune) (EnclosureMatch, bool) {
	def, ok := l.enclosureByRune[r]
	if !ok {
		return EnclosureMatch{}, false
	}
	if def.symmetric {
		// Delta is resolved by the scanner against its current depth for
		// this type; report +1 as the nominal open direction.
		return EnclosureMatch{TypeID: def.typeID, Delta: 1, Symmetric: true}, true
	}
	if r == def.open {
		return EnclosureMatch{TypeID: def.typeID, Delta: 1}, true
	}
	return EnclosureMatch{TypeID: def.typeID, Delta: -1}, true
}

// IsAbbreviation reports whether token (letters, internal dots allowed,
// no trailing dot) is in the abbreviation trie.
func (l *Language) IsAbbreviation(token string) bool {
	return l.abbrevTrie.IsAbbreviation(token)
}

// LongestAbbreviationEndingAt delegates to the trie's backward
// longest-match search.
func (l *Language) LongestAbbreviationEndingAt(runes []rune, end int) (string, string, bool) {
	return l.abbrevTrie.LongestMatchEndingAt(runes, end)
}

// IsSentenceStarter reports whether word is among the language's known
// sentence-initial words.
func (l *Language) IsSentenceStarter(word string) bool {
	if word == "" {
		return false
	}
	if l.sentenceStarters[word] {
		return true
	}
	// Sentence starters are conventionally capitalized; also accept a
	// case-folded match so a starter list authored in one case still
	// matches real text.
	return l.sentenceStarters[lowerFirst(word)]
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// noBreakFromStart reports whether runes[0:idx] contains no whitespace —
// i.e. idx still lies inside the slice's very first token. Only checked
// for small idx, since a realistic abbreviation never runs longer than a
// few characters.
func noBreakFromStart(runes []rune, idx int) bool {
	if idx > 2*maxAbbreviationLookback {
		return false
	}
	for i := 0; i < idx; i++ {
		if classifier.Classify(runes[i]) == classifier.Whitespace {
			return false
		}
	}
	return true
}

// nextWord scans forward from start skipping whitespace and returns the
// following alphanumeric run. known is false when the scan runs off the
// end of runes before it can tell where the word ends (the word may
// continue in a following chunk) or before finding any non-whitespace
// character at all.
func nextWord(runes []rune, start int) (word string, known bool) {
	i := start
	for i < len(runes) && classifier.Classify(runes[i]) == classifier.Whitespace {
		i++
	}
	if i >= len(runes) {
		return "", false
	}
	j := i
	for j < len(runes) && classifier.IsAlphaOrDigit(runes[j]) {
		j++
	}
	if j == len(runes) {
		return string(runes[i:j]), false
	}
	return string(runes[i:j]), true
}

// dotRoleAt classifies a token-final runes[idx] (a '.') using the
// abbreviation trie. foundPrev reports whether the backward trie search
// had any local text to examine at all (false only when idx == 0).
// Callers must already have established that idx is token-final — i.e.
// not immediately followed by more letters/digits — since a mid-token
// dot (the internal dots of "U.S.A." or the "." of "3.14") is never a
// boundary candidate regardless of role.
func (l *Language) dotRoleAt(runes []rune, idx int, consecutiveDotsBefore int) (role DotRole, prevWord string, foundPrev bool) {
	if consecutiveDotsBefore >= 2 {
		return EllipsisTail, "", true
	}
	if word, _, ok := l.abbrevTrie.LongestMatchEndingAt(runes, idx); ok {
		return AbbrevDot, word, true
	}
	return Ordinary, "", idx > 0
}

func (l *Language) ellipsisDecision(runes []rune, idx int) Decision {
	if !l.ellipsis.TreatAsBoundary {
		return Reject
	}
	word, known := nextWord(runes, idx+1)
	if !known {
		return NeedsLookahead
	}
	if word == "" || !unicode.IsUpper([]rune(word)[0]) {
		return Reject
	}
	return AcceptStrong
}

// BoundaryDecision is the single call spec.md §4.2 names: it combines
// IsTerminator, dot-role classification, abbreviation/sentence-starter
// resolution and ShouldSuppress into one Accept/Reject/NeedsLookahead
// verdict for the terminator at runes[idx].
func (l *Language) BoundaryDecision(runes []rune, idx int, consecutiveDotsBefore int, ctx SuppressionContext) Decision {
	d, _ := l.boundaryDecision(runes, idx, consecutiveDotsBefore, ctx)
	return d
}

// BoundaryDecisionWithRole is BoundaryDecision plus the DotRole that
// drove the verdict, so callers (the scanner) can tell an abbreviation-
// resurrected acceptance apart from an ordinary one without re-deriving
// it.
func (l *Language) BoundaryDecisionWithRole(runes []rune, idx int, consecutiveDotsBefore int, ctx SuppressionContext) (Decision, DotRole) {
	return l.boundaryDecision(runes, idx, consecutiveDotsBefore, ctx)
}

func (l *Language) boundaryDecision(runes []rune, idx int, consecutiveDotsBefore int, ctx SuppressionContext) (Decision, DotRole) {
	r := runes[idx]
	if !l.IsTerminator(r) {
		return Reject, Ordinary
	}

	if r == '.' {
		if idx+1 >= len(runes) {
			// The slice ends right on the dot: we cannot tell whether it
			// is attached to more letters/digits in a following chunk
			// (mid-token) or genuinely trails off. Defer to the caller.
			return NeedsLookahead, Ordinary
		}
		next := runes[idx+1]
		if next == '.' {
			// Not the final dot of a multi-dot run; spec.md §4.3 says
			// multi-character terminators are recognized by their last
			// character only.
			return Reject, Ordinary
		}
		if classifier.IsAlphaOrDigit(next) {
			// Mid-token: the dot separates "U" from "S" in "U.S.A." or
			// is the decimal point in "3.14". Neither is a boundary
			// candidate regardless of abbreviation role.
			return Reject, Ordinary
		}
		role, _, foundPrev := l.dotRoleAt(runes, idx, consecutiveDotsBefore)
		switch role {
		case DecimalDot:
			return Reject, role
		case EllipsisTail:
			return l.ellipsisDecision(runes, idx), role
		case AbbrevDot:
			followingWord, known := nextWord(runes, idx+1)
			if !known {
				return NeedsLookahead, role
			}
			if l.IsSentenceStarter(followingWord) {
				if l.ShouldSuppress(ctx) {
					return Reject, role
				}
				return AcceptWeak, role
			}
			return Reject, role
		default:
			if !foundPrev && noBreakFromStart(runes, idx) {
				return NeedsLookahead, role
			}
			if l.ShouldSuppress(ctx) {
				return Reject, role
			}
			return AcceptWeak, role
		}
	}

	if r == '…' {
		return l.ellipsisDecision(runes, idx), Ordinary
	}

	if l.ShouldSuppress(ctx) {
		return Reject, Ordinary
	}
	return AcceptStrong, Ordinary
}
