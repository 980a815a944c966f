package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundaryx/boundaryx/internal/language"
	"github.com/boundaryx/boundaryx/internal/state"
)

func mustEnglish(t *testing.T) *language.Language {
	t.Helper()
	lang, err := language.Builtin("en")
	require.NoError(t, err)
	return lang
}

func scanText(t *testing.T, lang *language.Language, text string) state.PartialState {
	t.Helper()
	runes, offsets, err := DecodeChunk([]byte(text))
	require.NoError(t, err)
	ps, err := Scan(runes, offsets, lang)
	require.NoError(t, err)
	return ps
}

func TestScanSimpleSentences(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, "Hello world. How are you?")
	require.Len(t, ps.Candidates, 2)
	assert.Equal(t, 12, ps.Candidates[0].LocalOffset)
	assert.Equal(t, 25, ps.Candidates[1].LocalOffset)
	assert.Equal(t, state.Strong, ps.Candidates[1].Flags)
}

func TestScanSuppressesEnclosedTerminator(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, `She said "Stop! Go."`)
	// Both "!" and the final "." sit inside the quote pair; the scanner
	// still records them as candidates (it does not know the global
	// depth), but both should show a non-zero local depth for the quote
	// enclosure type so the reducer can veto them.
	for _, c := range ps.Candidates {
		nonZero := false
		for _, e := range c.LocalDepths {
			if e.Net != 0 {
				nonZero = true
			}
		}
		assert.True(t, nonZero, "expected candidate at %d to carry non-zero local depth", c.LocalOffset)
	}
}

func TestScanAbbreviationRejectedWithoutStarter(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, "Dr. Smith arrived.")
	// "Dr." yields no candidate; the final dot is the chunk's last rune,
	// so it is left dangling for the reducer rather than recorded.
	assert.Empty(t, ps.Candidates)
	assert.True(t, ps.Edge.DanglingTerminator)
	assert.Equal(t, len("Dr. Smith arrived."), ps.Edge.DanglingOffset)
}

func TestScanAbbreviationResurrectedByStarter(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, "U.S.A. He left.")
	// The final dot ends the chunk, so it dangles instead of being a candidate.
	require.Len(t, ps.Candidates, 1)
	assert.True(t, ps.Edge.DanglingTerminator)
	assert.True(t, ps.Candidates[0].Abbreviation)
	assert.Equal(t, len("U.S.A."), ps.Candidates[0].LocalOffset)
}

func TestScanDanglingAbbreviationAtChunkEnd(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, "He works for the U.S.A.")
	assert.Empty(t, ps.Candidates)
	assert.True(t, ps.Edge.LeadingDot || ps.Edge.DanglingTerminator)
}

func TestScanEmptyChunk(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, "")
	assert.Empty(t, ps.Candidates)
	assert.Equal(t, 0, ps.ChunkLength)
	assert.Equal(t, 0, ps.ChunkRuneLength)
}

func TestDecodeChunkRejectsInvalidUTF8(t *testing.T) {
	_, _, err := DecodeChunk([]byte{0xff, 0xfe})
	assert.Error(t, err)
}

func TestScanRuneAndByteOffsetsDiverge(t *testing.T) {
	lang := mustEnglish(t)
	ps := scanText(t, lang, "café. Bien.")
	// Only "café." is a candidate; "Bien." ends the chunk and dangles.
	require.Len(t, ps.Candidates, 1)
	// "café." is 5 runes but 6 bytes (é is 2 bytes), so byte and char
	// offsets of the first candidate must diverge.
	assert.Equal(t, 6, ps.Candidates[0].LocalOffset)
	assert.Equal(t, 5, ps.Candidates[0].LocalCharOffset)
}
