package boundaryx

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundaryx/boundaryx/internal/language"
)

func mustConfig(t *testing.T, code string) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.LanguageCode = code
	require.NoError(t, cfg.Resolve())
	return cfg
}

func offsetsOf(out Output) []uint64 {
	got := make([]uint64, len(out.Boundaries))
	for i, b := range out.Boundaries {
		got[i] = b.ByteOffset
	}
	return got
}

func TestConcreteEnglishScenarios(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []uint64
	}{
		{"simple_two_sentences", "Hello world. This is a test.", []uint64{12, 28}},
		{"abbreviation_then_sentence_starter", "Dr. Smith went to the U.S.A. He bought a car.", []uint64{28, 45}},
		{"decimal_never_a_candidate", "The price is 3.14 dollars. Next.", []uint64{26, 32}},
		{"terminator_suppressed_inside_quotes", `She said "Hello. How are you?" and left.`, []uint64{40}},
		{"ellipsis_then_capital", "Wait... Then he left.", []uint64{7, 21}},
		{"empty_input", "", nil},
	}

	cfg := mustConfig(t, "en")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Process([]byte(tc.text), cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, offsetsOf(out))
		})
	}
}

func TestJapaneseTerminatorIdeographicFullStop(t *testing.T) {
	cfg := mustConfig(t, "ja")
	text := "これは文です。次の文。"
	out, err := Process([]byte(text), cfg)
	require.NoError(t, err)
	assert.Equal(t, []uint64{21, 33}, offsetsOf(out))
}

func TestProcessEmptyInputReturnsEmptyOutput(t *testing.T) {
	cfg := mustConfig(t, "en")
	out, err := Process(nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, out.Boundaries)
	assert.Equal(t, 0, out.Stats.Bytes)
}

// TestDeterminismAcrossThreadCounts checks spec.md §8's determinism
// invariant: Sequential, Parallel and Adaptive must all agree on the
// same input regardless of thread count, at a fixed chunk size.
func TestDeterminismAcrossThreadCounts(t *testing.T) {
	text := []byte(repeatSentenceForTest("Dr. Smith met Mrs. Jones. They discussed the U.S.A. economy. ", 400))

	var reference []uint64
	for i, mode := range []ExecutionMode{Sequential, Parallel, Adaptive} {
		for _, threads := range []int{1, 2, 8} {
			cfg := mustConfig(t, "en")
			cfg.Mode = mode
			cfg.Threads = threads
			cfg.ChunkSizeBytes = 256
			cfg.OverlapBytes = 32
			out, err := Process(text, cfg)
			require.NoError(t, err)
			got := offsetsOf(out)
			if i == 0 && threads == 1 {
				reference = got
				continue
			}
			assert.Equal(t, reference, got, "mode=%v threads=%d diverged", mode, threads)
		}
	}
}

// TestUTF8BoundaryValidity checks every emitted ByteOffset lands on a
// UTF-8 rune boundary (or at len(text)), never mid-character.
func TestUTF8BoundaryValidity(t *testing.T) {
	cfg := mustConfig(t, "en")
	cfg.ChunkSizeBytes = 40
	cfg.OverlapBytes = 8
	text := []byte("Café society. Naïve résumé writers. Wait... Done.")
	out, err := Process(text, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, out.Boundaries)
	for _, b := range out.Boundaries {
		if int(b.ByteOffset) == len(text) {
			continue
		}
		assert.True(t, utf8.RuneStart(text[b.ByteOffset]), "offset %d is not a rune boundary", b.ByteOffset)
	}
}

// TestBoundariesStrictlyIncreasing checks spec.md §8's strictly
// increasing offsets invariant, across a chunked, multi-chunk input.
func TestBoundariesStrictlyIncreasing(t *testing.T) {
	cfg := mustConfig(t, "en")
	cfg.ChunkSizeBytes = 64
	cfg.OverlapBytes = 16
	cfg.Mode = Parallel
	cfg.Threads = 4
	text := []byte(repeatSentenceForTest("One. Two? Three! Four. ", 100))
	out, err := Process(text, cfg)
	require.NoError(t, err)
	for i := 1; i < len(out.Boundaries); i++ {
		assert.Less(t, out.Boundaries[i-1].ByteOffset, out.Boundaries[i].ByteOffset)
	}
}

// TestEnclosureSuppressionAcrossChunks checks that a terminator inside
// an enclosure that opened in one chunk and hasn't yet closed stays
// suppressed even once the candidate and its enclosing quote are split
// apart by chunking.
func TestEnclosureSuppressionAcrossChunks(t *testing.T) {
	cfg := mustConfig(t, "en")
	cfg.ChunkSizeBytes = 20
	cfg.OverlapBytes = 4
	text := []byte(`She said "Stop right there. Go away." and left quietly.`)
	out, err := Process(text, cfg)
	require.NoError(t, err)
	require.Len(t, out.Boundaries, 1)
	assert.Equal(t, uint64(len(text)), out.Boundaries[0].ByteOffset)
}

// TestIdempotentRoundTrip checks that slicing the text at each emitted
// boundary and re-running Process over the concatenation of those
// slices reproduces exactly the same boundary set (spec.md §8's
// round-trip property).
func TestIdempotentRoundTrip(t *testing.T) {
	cfg := mustConfig(t, "en")
	text := []byte("Hello world. This is a test. Dr. Smith agreed. He left soon after.")

	first, err := Process(text, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, first.Boundaries)

	rebuilt := make([]byte, 0, len(text))
	prev := uint64(0)
	for _, b := range first.Boundaries {
		rebuilt = append(rebuilt, text[prev:b.ByteOffset]...)
		prev = b.ByteOffset
	}
	rebuilt = append(rebuilt, text[prev:]...)
	require.Equal(t, text, rebuilt)

	second, err := Process(rebuilt, cfg)
	require.NoError(t, err)
	assert.Equal(t, offsetsOf(first), offsetsOf(second))
}

// TestTooManyEnclosureTypesRejected checks spec.md §8's invariant that
// a language declaring more enclosure types than the Δ-stack's fixed
// width can represent is rejected up front, rather than silently
// truncated.
func TestTooManyEnclosureTypesRejected(t *testing.T) {
	doc := "code: toomany\nterminators: [\".\"]\nenclosures:\n"
	for i := 0; i < 17; i++ {
		open := string(rune('a' + i))
		close := string(rune('A' + i))
		doc += "  - open: \"" + open + "\"\n    close: \"" + close + "\"\n"
	}
	_, err := language.LoadBytes([]byte(doc))
	require.Error(t, err)
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, TooManyEnclosureTypes, berr.Kind)
}

func repeatSentenceForTest(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
