package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarDocuments(t *testing.T) {
	e := indexedEngine(t, writeDocs(t, map[string]string{
		"x.md": "# Go Concurrency Patterns\n\nchannels goroutines select channels",
		"y.md": "# Go Concurrency Basics\n\nchannels goroutines",
		"z.md": "# 料理\n\n野菜",
	}))

	similar := e.SimilarDocuments("x.md", 5)
	require.NotEmpty(t, similar)
	assert.Equal(t, "y.md", similar[0].ID)
	for _, doc := range similar {
		assert.NotEqual(t, "x.md", doc.ID)
		assert.NotEqual(t, "z.md", doc.ID, "zero-score documents are excluded")
	}
}

func TestSimilarDocuments_Limit(t *testing.T) {
	e := indexedEngine(t, writeDocs(t, map[string]string{
		"1.txt": "shared words everywhere",
		"2.txt": "shared words everywhere",
		"3.txt": "shared words everywhere",
		"4.txt": "shared words everywhere",
	}))

	assert.Len(t, e.SimilarDocuments("1.txt", 2), 2)
	assert.Len(t, e.SimilarDocuments("1.txt", 0), DefaultSimilarLimit)
}

func TestSimilarDocuments_UnknownOrNotIndexed(t *testing.T) {
	assert.Empty(t, NewEngine(Options{}).SimilarDocuments("x.md", 3))

	e := indexedEngine(t, companyDocs(t))
	assert.Empty(t, e.SimilarDocuments("missing.md", 3))
}
