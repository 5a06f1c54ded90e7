package indexer

import (
	"time"

	"github.com/bull/docsearch-mcp/internal/document"
)

// Index is one immutable generation of processed documents plus the
// keyword → document ID map built alongside them.
type Index struct {
	Generation string    // Random ID assigned per build
	BuiltAt    time.Time // When the build completed
	Documents  []*document.Document

	byID     map[string]*document.Document
	keywords map[string]map[string]struct{}
}

// NewIndex builds an index over docs in the given order. Later documents with
// a duplicate ID shadow earlier ones in Lookup.
func NewIndex(generation string, builtAt time.Time, docs []*document.Document) *Index {
	idx := &Index{
		Generation: generation,
		BuiltAt:    builtAt,
		Documents:  docs,
		byID:       make(map[string]*document.Document, len(docs)),
		keywords:   make(map[string]map[string]struct{}),
	}
	for _, doc := range docs {
		idx.byID[doc.ID] = doc
		for _, kw := range doc.Keywords {
			ids, ok := idx.keywords[kw]
			if !ok {
				ids = make(map[string]struct{})
				idx.keywords[kw] = ids
			}
			ids[doc.ID] = struct{}{}
		}
	}
	return idx
}

// Lookup returns the document with the given ID.
func (idx *Index) Lookup(id string) (*document.Document, bool) {
	doc, ok := idx.byID[id]
	return doc, ok
}

// DocumentsWithKeyword returns the IDs of documents listing keyword.
func (idx *Index) DocumentsWithKeyword(keyword string) []string {
	ids := make([]string, 0, len(idx.keywords[keyword]))
	for _, doc := range idx.Documents {
		if _, ok := idx.keywords[keyword][doc.ID]; ok {
			ids = append(ids, doc.ID)
		}
	}
	return ids
}

// KeywordCount returns the number of distinct keywords.
func (idx *Index) KeywordCount() int {
	return len(idx.keywords)
}

// TypeCounts returns how many documents there are of each type.
func (idx *Index) TypeCounts() map[document.Type]int {
	counts := make(map[document.Type]int)
	for _, doc := range idx.Documents {
		counts[doc.Type]++
	}
	return counts
}
