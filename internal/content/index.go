package content

import (
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// Normalize prepares a query for matching: surrounding whitespace is dropped and case is folded.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Index is a substring index over curated entries.
// There is no ranking: matches come back in declaration order.
type Index struct {
	entries     []domain.CuratedEntry
	haystacks   [][]string
	needles     [][]string
	keysInQuery bool
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithKeysInQuery also matches entries whose key or keywords occur inside the query,
// so "how do I use the querybuilder" finds the "querybuilder" topic.
func WithKeysInQuery() IndexOption {
	return func(ix *Index) {
		ix.keysInQuery = true
	}
}

// NewIndex builds an index over entries. The slice is copied.
func NewIndex(entries []domain.CuratedEntry, opts ...IndexOption) *Index {
	ix := &Index{
		entries:   append([]domain.CuratedEntry(nil), entries...),
		haystacks: make([][]string, len(entries)),
		needles:   make([][]string, len(entries)),
	}
	for _, opt := range opts {
		opt(ix)
	}

	for i, e := range ix.entries {
		ix.haystacks[i] = []string{
			strings.ToLower(e.Key),
			strings.ToLower(e.Title),
			strings.ToLower(e.Description),
		}
		keys := []string{strings.ToLower(e.Key)}
		for _, kw := range e.Keywords {
			keys = append(keys, strings.ToLower(kw))
		}
		ix.needles[i] = keys
	}
	return ix
}

// Len reports the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search returns every entry whose key, title or description contains the
// normalized query.
func (ix *Index) Search(query string) []domain.CuratedEntry {
	q := Normalize(query)
	var out []domain.CuratedEntry
	for i, e := range ix.entries {
		if ix.matches(i, q) {
			out = append(out, e)
		}
	}
	return out
}

func (ix *Index) matches(i int, q string) bool {
	for _, h := range ix.haystacks[i] {
		if h != "" && strings.Contains(h, q) {
			return true
		}
	}
	if !ix.keysInQuery || q == "" {
		return false
	}
	for _, n := range ix.needles[i] {
		if n != "" && strings.Contains(q, n) {
			return true
		}
	}
	return false
}
