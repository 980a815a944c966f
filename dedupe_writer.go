package boundaryx

import (
	"io"
	"strings"
	"sync"

	"github.com/projectdiscovery/utils/dedupe"
)

// DedupingWriter wraps an io.Writer so a sentence already emitted once
// is not written again — the overlap-with-dedup chunking strategy
// (DESIGN.md's Open Questions) can hand the reducer the same sentence
// twice when it straddles the overlap window of two chunks, and the CLI
// host's text output mode needs that collapsed back to one line.
// Grounded on the teacher's dedupe_writer.go (a channel feeding
// projectdiscovery/utils's dedupe backend), but simplified for this
// domain: every Write call here is one already-complete sentence (the
// CLI always calls it once per boundary, never with partial output), so
// there is no reason to carry the teacher's byte-buffer-and-scan-for-
// newline bookkeeping, which existed to handle arbitrary partial writes
// of subdomain permutations.
type DedupingWriter struct {
	writer    io.Writer
	sentences chan string
	seen      map[string]bool
	wg        sync.WaitGroup
	count     int
	countMu   sync.Mutex
	closed    bool
}

// NewDedupingWriter creates a DedupingWriter. alreadySeen lets a caller
// pre-seed sentences that should never reach the underlying writer even
// on their first occurrence here (e.g. the last sentence already
// flushed by a previous call when streaming output chunk by chunk).
func NewDedupingWriter(w io.Writer, alreadySeen ...string) *DedupingWriter {
	seen := make(map[string]bool, len(alreadySeen))
	for _, s := range alreadySeen {
		seen[s] = true
	}

	sentences := make(chan string, 100)
	dw := &DedupingWriter{
		writer:    w,
		sentences: sentences,
		seen:      seen,
	}

	dw.wg.Add(1)
	go dw.processDeduped(sentences)

	return dw
}

// processDeduped drains sentences through the dedupe backend and writes
// each surviving one, once, to the underlying writer.
func (dw *DedupingWriter) processDeduped(sentences chan string) {
	defer dw.wg.Done()

	d := dedupe.NewDedupe(sentences, 1024*1024)
	d.Drain()

	for sentence := range d.GetResults() {
		if sentence == "" || dw.seen[sentence] {
			continue
		}
		if _, err := dw.writer.Write([]byte(sentence + "\n")); err != nil {
			continue
		}
		dw.countMu.Lock()
		dw.count++
		dw.countMu.Unlock()
	}
}

// Write accepts one sentence per call (a trailing newline, if present,
// is stripped before the sentence is queued for dedup). Callers that
// write more than one sentence in a single call, separated by '\n',
// have each one queued in turn.
func (dw *DedupingWriter) Write(p []byte) (int, error) {
	if dw.closed {
		return 0, io.ErrClosedPipe
	}

	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		dw.sentences <- line
	}
	return len(p), nil
}

// Close signals the dedupe backend there is no more input and waits for
// every queued sentence to be written.
func (dw *DedupingWriter) Close() error {
	if dw.closed {
		return nil
	}
	dw.closed = true
	close(dw.sentences)
	dw.wg.Wait()
	return nil
}

// Count returns the number of unique sentences written.
func (dw *DedupingWriter) Count() int {
	dw.countMu.Lock()
	defer dw.countMu.Unlock()
	return dw.count
}
