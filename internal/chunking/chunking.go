// Package chunking implements component F: splitting input text into
// byte-range chunks that are always safe to decode independently (never
// cutting a multi-byte rune in half), with a configurable rune overlap
// so each chunk's EdgeContext can see real trailing/leading text instead
// of a hard cliff. Grounded on the overlap strategy discussed in
// original_source/sakurs-core's application/overlap_chunking package,
// adapted to Go's byte-slice/rune model.
package chunking

import "unicode/utf8"

// Chunk is one byte range of the original input, plus how far its start
// was pulled back to provide overlap with the previous chunk.
type Chunk struct {
	// Start and End are byte offsets into the original input, both
	// always on rune boundaries.
	Start, End int
	// OverlapBytes is how many bytes at the front of [Start:End] are
	// duplicated from the tail of the previous chunk (0 for the first
	// chunk). The scanner still scans this span — overlap only exists
	// to give edge-context word capture real context — but the reducer
	// must not double-count candidates inside it; each chunk's "new"
	// content begins at Start+OverlapBytes.
	OverlapBytes int
}

// Split divides text into chunks of approximately targetSize bytes,
// snapping every boundary to a rune boundary (spec.md §6's UTF-8 safety
// invariant) and pulling each chunk's start back by overlapRunes runes
// (never past the true start of text) so cross-chunk word capture has
// real text to work with rather than an empty string at position 0.
//
// If text is shorter than targetSize, or targetSize <= 0, Split returns
// a single chunk covering the whole input.
func Split(text []byte, targetSize int, overlapRunes int) []Chunk {
	if len(text) == 0 {
		return nil
	}
	if targetSize <= 0 || len(text) <= targetSize {
		return []Chunk{{Start: 0, End: len(text)}}
	}

	var chunks []Chunk
	pos := 0
	for pos < len(text) {
		end := pos + targetSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = snapForward(text, end)
		}

		start := pos
		overlap := 0
		if len(chunks) > 0 {
			pulled := pullBackRunes(text, start, overlapRunes)
			overlap = start - pulled
			start = pulled
		}

		chunks = append(chunks, Chunk{Start: start, End: end, OverlapBytes: overlap})
		pos = end
	}
	return chunks
}

// snapForward advances i to the next rune boundary at or after i, so a
// chunk split never lands in the middle of a multi-byte character.
func snapForward(text []byte, i int) int {
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}

// pullBackRunes walks back up to n runes from pos (snapping to a rune
// boundary as it goes) without going past byte 0.
func pullBackRunes(text []byte, pos int, n int) int {
	i := pos
	for ; n > 0 && i > 0; n-- {
		i--
		for i > 0 && !utf8.RuneStart(text[i]) {
			i--
		}
	}
	return i
}
