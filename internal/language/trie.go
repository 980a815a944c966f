package language

import (
	"strings"
	"unicode"
)

// trieNode is one node of the abbreviation trie, keyed by rune so
// multi-byte characters (e.g. "Ph.D" style abbreviations in non-Latin
// scripts) work the same as ASCII.
type trieNode struct {
	children map[rune]*trieNode
	isEnd    bool
	category string
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie is the abbreviation lookup structure named in spec.md §4.2's
// is_abbreviation query. Entries may contain internal dots ("U.S.A")
// since abbreviations are matched as whole tokens, not bare letter runs.
type Trie struct {
	root          *trieNode
	caseSensitive bool
	size          int
}

// NewTrie creates an empty trie with the given case sensitivity.
func NewTrie(caseSensitive bool) *Trie {
	return &Trie{root: newTrieNode(), caseSensitive: caseSensitive}
}

// IsEmpty reports whether the trie holds no abbreviations.
func (t *Trie) IsEmpty() bool { return t.size == 0 }

func (t *Trie) normalize(s string) string {
	if t.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// Insert adds an abbreviation (without its trailing dot) to the trie,
// optionally tagged with a category (e.g. "title", "business",
// "academic" — carried forward from original_source's enhanced trie).
func (t *Trie) Insert(word string, category string) {
	if word == "" {
		return
	}
	node := t.root
	for _, r := range t.normalize(word) {
		next, ok := node.children[r]
		if !ok {
			next = newTrieNode()
			node.children[r] = next
		}
		node = next
	}
	if !node.isEnd {
		t.size++
	}
	node.isEnd = true
	node.category = category
}

// IsAbbreviation reports whether word (with no trailing dot) is a
// registered abbreviation, exactly as spec.md §4.2 describes.
func (t *Trie) IsAbbreviation(word string) bool {
	if t.IsEmpty() || word == "" {
		return false
	}
	node := t.root
	for _, r := range t.normalize(word) {
		next, ok := node.children[r]
		if !ok {
			return false
		}
		node = next
	}
	return node.isEnd
}

// Category returns the category associated with word, if it is a
// registered abbreviation.
func (t *Trie) Category(word string) (string, bool) {
	if t.IsEmpty() || word == "" {
		return "", false
	}
	node := t.root
	for _, r := range t.normalize(word) {
		next, ok := node.children[r]
		if !ok {
			return "", false
		}
		node = next
	}
	if !node.isEnd {
		return "", false
	}
	return node.category, true
}

// maxAbbreviationLookback bounds the backward search in LongestMatchEndingAt,
// matching original_source's 20-character search window.
const maxAbbreviationLookback = 20

// LongestMatchEndingAt searches runes[:end] backward for the longest
// registered abbreviation ending exactly at end (exclusive), trying
// every start offset up to maxAbbreviationLookback characters back —
// the same backward longest-match strategy as
// original_source/sakurs-core/src/domain/language/rules/abbreviation.rs,
// which lets "U", "U.S" and "U.S.A" all register without the trie
// preferring the shortest match.
func (t *Trie) LongestMatchEndingAt(runes []rune, end int) (word string, category string, ok bool) {
	if t.IsEmpty() || end <= 0 || end > len(runes) {
		return "", "", false
	}
	bestLen := -1
	start := end - 1
	minStart := end - maxAbbreviationLookback
	if minStart < 0 {
		minStart = 0
	}
	for ; start >= minStart; start-- {
		if start > 0 && (unicode.IsLetter(runes[start-1]) || unicode.IsDigit(runes[start-1])) {
			// Not the start of a token: "est" inside "test" is no match.
			continue
		}
		cand := string(runes[start:end])
		if cat, found := t.Category(cand); found {
			if l := end - start; l > bestLen {
				bestLen = l
				word = cand
				category = cat
				ok = true
			}
		}
	}
	return word, category, ok
}
