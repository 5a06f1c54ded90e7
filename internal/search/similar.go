package search

import (
	"sort"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/lexical"
)

const (
	weightSharedKeyword = 0.1
	weightTitleJaccard  = 0.3
	DefaultSimilarLimit = 3
)

// SimilarDocuments ranks the other documents by shared keywords and title
// similarity. Documents scoring zero are left out, as is id itself. An unknown
// id yields no documents.
func (e *Engine) SimilarDocuments(id string, limit int) []*document.Document {
	idx := e.current.Load()
	if idx == nil {
		return nil
	}
	target, ok := idx.Lookup(id)
	if !ok {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	shared := make(map[string]int)
	for _, kw := range target.Keywords {
		for _, docID := range idx.DocumentsWithKeyword(kw) {
			shared[docID]++
		}
	}

	type scored struct {
		doc   *document.Document
		score float64
	}
	var candidates []scored
	for _, doc := range idx.Documents {
		if doc.ID == id {
			continue
		}
		score := float64(shared[doc.ID])*weightSharedKeyword +
			lexical.Jaccard(target.Title, doc.Title)*weightTitleJaccard
		if score > 0 {
			candidates = append(candidates, scored{doc: doc, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	docs := make([]*document.Document, len(candidates))
	for i, c := range candidates {
		docs[i] = c.doc
	}
	return docs
}
