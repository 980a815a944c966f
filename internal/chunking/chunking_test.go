package chunking

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortTextReturnsSingleChunk(t *testing.T) {
	text := []byte("Hello world.")
	chunks := Split(text, 1024, 16)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[0].End)
	assert.Equal(t, 0, chunks[0].OverlapBytes)
}

func TestSplitEmptyText(t *testing.T) {
	assert.Nil(t, Split(nil, 10, 4))
	assert.Nil(t, Split([]byte{}, 10, 4))
}

func TestSplitZeroTargetSizeReturnsWhole(t *testing.T) {
	text := []byte("some text here")
	chunks := Split(text, 0, 4)
	require.Len(t, chunks, 1)
	assert.Equal(t, len(text), chunks[0].End)
}

func TestSplitNeverCutsARuneInHalf(t *testing.T) {
	// Repeat a multi-byte rune enough times that a small targetSize is
	// forced to land mid-character unless Split snaps it.
	text := []byte(repeat("café ", 50))
	chunks := Split(text, 23, 4)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.True(t, utf8.RuneStart(text[c.Start]), "chunk start %d is not a rune boundary", c.Start)
		if c.End < len(text) {
			assert.True(t, utf8.RuneStart(text[c.End]), "chunk end %d is not a rune boundary", c.End)
		}
	}
}

func TestSplitOverlapPullsBackWithoutPassingZero(t *testing.T) {
	text := []byte(repeat("word ", 100))
	chunks := Split(text, 50, 10)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, 0, chunks[0].OverlapBytes)
	for _, c := range chunks[1:] {
		assert.GreaterOrEqual(t, c.Start, 0)
		assert.LessOrEqual(t, c.OverlapBytes, c.End-c.Start)
	}
}

func TestSplitCoversEntireInputWithoutGaps(t *testing.T) {
	text := []byte(repeat("the quick fox jumps. ", 30))
	chunks := Split(text, 40, 8)
	require.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, chunks[i-1].End, chunks[i].Start+chunks[i].OverlapBytes)
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
