package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/docsearch-mcp/internal/document"
	"github.com/bull/docsearch-mcp/internal/loader"
)

func newPipeline() *Pipeline {
	return NewPipeline(loader.New(0, nil), document.NewProcessor(document.ProcessorOptions{}), nil)
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.md":  "# Company Overview\n\nOur CEO is Jane Doe.",
		"b.txt": "Unrelated content about weather.",
		"c.pdf": "%PDF-1.4",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestPipeline_Build(t *testing.T) {
	dir := writeFixtures(t)

	idx, result, err := newPipeline().Build(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalFiles)
	assert.Equal(t, 2, result.IndexedDocs)
	assert.Equal(t, []string{"c.pdf"}, result.Skipped)
	assert.NotEmpty(t, result.Generation)
	assert.Equal(t, result.Generation, idx.Generation)

	require.Len(t, idx.Documents, 2)
	assert.Equal(t, "a.md", idx.Documents[0].ID)
	assert.Equal(t, "b.txt", idx.Documents[1].ID)

	doc, ok := idx.Lookup("b.txt")
	require.True(t, ok)
	assert.Equal(t, document.TypeText, doc.Type)

	assert.Equal(t, []string{"a.md"}, idx.DocumentsWithKeyword("ceo"))
	assert.Equal(t, []string{"b.txt"}, idx.DocumentsWithKeyword("weather"))
	assert.Empty(t, idx.DocumentsWithKeyword("absent"))
	assert.Positive(t, idx.KeywordCount())
	assert.Equal(t, map[document.Type]int{document.TypeMarkdown: 1, document.TypeText: 1}, idx.TypeCounts())
}

func TestPipeline_BuildIsIdempotent(t *testing.T) {
	dir := writeFixtures(t)
	p := newPipeline()

	first, _, err := p.Build(context.Background(), dir)
	require.NoError(t, err)
	second, _, err := p.Build(context.Background(), dir)
	require.NoError(t, err)

	assert.NotEqual(t, first.Generation, second.Generation)
	require.Len(t, second.Documents, len(first.Documents))
	for i := range first.Documents {
		assert.Equal(t, first.Documents[i], second.Documents[i])
	}
	assert.Equal(t, first.KeywordCount(), second.KeywordCount())
}

func TestPipeline_BuildMissingDirectory(t *testing.T) {
	_, _, err := newPipeline().Build(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
