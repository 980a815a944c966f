package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundaryx/boundaryx/internal/chunking"
	"github.com/boundaryx/boundaryx/internal/language"
)

func TestResolveAdaptive(t *testing.T) {
	assert.Equal(t, Sequential, Resolve(Adaptive, AdaptiveThresholdBytes-1))
	assert.Equal(t, Parallel, Resolve(Adaptive, AdaptiveThresholdBytes+1))
}

func TestResolvePassesThroughExplicitStrategy(t *testing.T) {
	assert.Equal(t, Sequential, Resolve(Sequential, 10_000_000))
	assert.Equal(t, Parallel, Resolve(Parallel, 1))
}

func mustEnglish(t *testing.T) *language.Language {
	t.Helper()
	lang, err := language.Builtin("en")
	require.NoError(t, err)
	return lang
}

func TestScanAllSequentialAndParallelAgree(t *testing.T) {
	lang := mustEnglish(t)
	text := []byte(repeatSentence("Hello world. How are you? Fine, thanks. ", 200))
	chunks := chunking.Split(text, 512, 32)
	require.Greater(t, len(chunks), 1)

	seq, err := ScanAll(context.Background(), chunks, text, lang, Sequential, 0)
	require.NoError(t, err)

	par, err := ScanAll(context.Background(), chunks, text, lang, Parallel, 4)
	require.NoError(t, err)

	require.Len(t, seq, len(par))
	for i := range seq {
		assert.Equal(t, seq[i].ChunkLength, par[i].ChunkLength)
		assert.Equal(t, seq[i].ChunkRuneLength, par[i].ChunkRuneLength)
		assert.Equal(t, seq[i].Deltas, par[i].Deltas)
		assert.Equal(t, len(seq[i].Candidates), len(par[i].Candidates))
	}
}

func TestScanAllPropagatesDecodeError(t *testing.T) {
	lang := mustEnglish(t)
	text := []byte{0xff, 0xfe, 'a', '.'}
	chunks := []chunking.Chunk{{Start: 0, End: len(text)}}
	_, err := ScanAll(context.Background(), chunks, text, lang, Sequential, 0)
	assert.Error(t, err)
}

func repeatSentence(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
