package language

import (
	"strings"
	"unicode"
)

// SuppressionContext is the bounded window around a boundary candidate
// that should_suppress (spec.md §4.2) consults. Window is a small slice
// of runes (default ±30 characters, per spec.md §4.2's rationale); Pos
// is the index within Window of the terminator itself.
type SuppressionContext struct {
	Window []rune
	Pos    int
	// InsideEnclosure is true when the candidate's global enclosure
	// depth is non-zero for at least one type; quote-suppression uses it.
	InsideEnclosure bool
}

func (c SuppressionContext) before(n int) string {
	start := c.Pos - n
	if start < 0 {
		start = 0
	}
	return string(c.Window[start:c.Pos])
}

func (c SuppressionContext) after(n int) string {
	end := c.Pos + 1 + n
	if end > len(c.Window) {
		end = len(c.Window)
	}
	if c.Pos+1 > len(c.Window) {
		return ""
	}
	return string(c.Window[c.Pos+1 : end])
}

type fastPatternFunc func(SuppressionContext) bool

// fastPatterns are the cheap, character-class checks named in spec.md
// §9 ("fast patterns cover the common cases: contraction apostrophe,
// list-item ')'"). Each is registered under the name a language document
// lists in suppression.fast_patterns.
var fastPatterns = map[string]fastPatternFunc{
	"contraction_apostrophe": suppressContractionApostrophe,
	"list_item_paren":        suppressListItemParen,
	"measurement_mark":       suppressMeasurementMark,
	"initials":               suppressInitials,
}

// suppressContractionApostrophe vetoes a candidate when the terminator
// itself is immediately preceded by a letter and followed by a
// contraction tail (only relevant when a language also treats ' as a
// terminator-adjacent character; included for completeness and for
// suppression windows that span an apostrophe earlier in the window).
func suppressContractionApostrophe(ctx SuppressionContext) bool {
	before := ctx.before(4)
	return strings.HasSuffix(before, "'t") || strings.HasSuffix(before, "'s") ||
		strings.HasSuffix(before, "'re") || strings.HasSuffix(before, "'ll") ||
		strings.HasSuffix(before, "'ve") || strings.HasSuffix(before, "'d") ||
		strings.HasSuffix(before, "'m")
}

// suppressListItemParen vetoes "1)" / "a)" style list markers: a single
// digit or letter immediately before the candidate terminator, with no
// other letters in the run.
func suppressListItemParen(ctx SuppressionContext) bool {
	i := ctx.Pos
	for i > 0 && (ctx.Window[i-1] == ' ' || ctx.Window[i-1] == '\t') {
		i--
	}
	run := 0
	for i > 0 && (unicode.IsDigit(ctx.Window[i-1]) || unicode.IsLetter(ctx.Window[i-1])) {
		i--
		run++
	}
	if run != 1 {
		return false
	}
	return i == 0 || unicode.IsSpace(ctx.Window[i-1])
}

// suppressMeasurementMark vetoes a period directly following a known
// unit abbreviation pattern like "5 ft. 10 in." when preceded by digits
// plus a short unit — approximated here as "digit(s) + up to 3 letters".
func suppressMeasurementMark(ctx SuppressionContext) bool {
	before := ctx.before(6)
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if len(last) == 0 || len(last) > 3 {
		return false
	}
	for _, r := range last {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	if len(fields) >= 2 {
		prev := fields[len(fields)-2]
		for _, r := range prev {
			if unicode.IsDigit(r) {
				return true
			}
		}
	}
	return false
}

// suppressInitials vetoes "J. R. R. Tolkien" style single-letter initials:
// a single uppercase letter immediately before the dot, preceded by
// whitespace or start-of-window, and followed by another single letter
// plus a dot or a capitalized surname.
func suppressInitials(ctx SuppressionContext) bool {
	before := ctx.before(2)
	trimmed := strings.TrimLeft(before, " ")
	runes := []rune(trimmed)
	if len(runes) != 1 || !unicode.IsUpper(runes[0]) {
		return false
	}
	after := strings.TrimLeft(ctx.after(3), " ")
	if after == "" {
		return false
	}
	next := []rune(after)[0]
	return unicode.IsUpper(next)
}

// ShouldSuppress vetoes an otherwise-valid boundary candidate by running
// every configured fast pattern, then every configured regex against the
// stringified window, per spec.md §4.2/§9.
func (l *Language) ShouldSuppress(ctx SuppressionContext) bool {
	// Quote/enclosure suppression itself is handled by the reducer's
	// depth check (spec.md §4.5a); ctx.InsideEnclosure is carried here
	// only so a future fast pattern or regex can condition on it.
	for _, fn := range l.fastPatterns {
		if fn(ctx) {
			return true
		}
	}
	if len(l.regexPatterns) == 0 {
		return false
	}
	window := string(ctx.Window)
	for _, re := range l.regexPatterns {
		if re.MatchString(window) {
			return true
		}
	}
	return false
}
