package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrieInsertionAndLookup(t *testing.T) {
	trie := NewTrie(false)
	trie.Insert("Dr", "title")
	trie.Insert("Mr", "title")
	trie.Insert("Inc", "business")

	assert.True(t, trie.IsAbbreviation("Dr"))
	cat, ok := trie.Category("dr")
	assert.True(t, ok)
	assert.Equal(t, "title", cat)
}

func TestTrieCaseInsensitive(t *testing.T) {
	trie := NewTrie(false)
	trie.Insert("ph.d", "academic")

	assert.True(t, trie.IsAbbreviation("Ph.D"))
}

func TestTrieCaseSensitive(t *testing.T) {
	trie := NewTrie(true)
	trie.Insert("NATO", "org")

	assert.True(t, trie.IsAbbreviation("NATO"))
	assert.False(t, trie.IsAbbreviation("nato"))
}

func TestTrieLongestMatch(t *testing.T) {
	trie := NewTrie(false)
	trie.Insert("U", "country")
	trie.Insert("U.S", "country")
	trie.Insert("U.S.A", "country")

	runes := []rune("U.S.A")
	word, cat, ok := trie.LongestMatchEndingAt(runes, len(runes))

	assert.True(t, ok)
	assert.Equal(t, "U.S.A", word)
	assert.Equal(t, "country", cat)
}

func TestTrieEmpty(t *testing.T) {
	trie := NewTrie(false)
	assert.True(t, trie.IsEmpty())
	assert.False(t, trie.IsAbbreviation("Dr"))

	runes := []rune("Hello world")
	_, _, ok := trie.LongestMatchEndingAt(runes, 5)
	assert.False(t, ok)
}

func TestTrieIsEmptyTracksInserts(t *testing.T) {
	trie := NewTrie(false)
	assert.True(t, trie.IsEmpty())
	trie.Insert("Dr", "")
	assert.False(t, trie.IsEmpty())
}
