package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "Unrelated content about weather.")
	writeFile(t, dir, "a.md", "# Company Overview\n\nOur CEO is Jane Doe.")
	writeFile(t, dir, "c.pdf", "%PDF-1.4")
	writeFile(t, dir, "d.go", "package main")
	writeFile(t, dir, "empty.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.md"), 0o755))

	result, err := New(2, nil).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.md", result.Files[0].Name)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, "b.txt", result.Files[1].Name)
	assert.Equal(t, "Unrelated content about weather.", result.Files[1].Content)

	assert.ElementsMatch(t, []string{"c.pdf", "d.go", "empty.txt"}, result.Skipped)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 5, result.Total)
}

func TestLoad_PerFileFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.txt", "still indexed")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "broken.txt")))

	result, err := New(0, nil).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "ok.txt", result.Files[0].Name)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, filepath.Join(dir, "broken.txt"), result.Failed[0].Path)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := New(0, nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	result, err := New(0, nil).Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Total)
}

func TestLoad_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0, nil).Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
