package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFindsTextFilesSorted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"b.txt", "a.md", "skip.pdf", "sub/c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644))
	}

	paths, err := NewFileExtractor(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.txt", filepath.Join("sub", "c.txt")}, paths)
}

func TestExtractReadsRelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("hello"), 0o644))

	text, err := NewFileExtractor(dir).Extract("doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractFailsPerDocument(t *testing.T) {
	e := NewFileExtractor(t.TempDir())

	_, err := e.Extract("missing.txt")
	assert.Error(t, err)

	_, err = e.Extract("image.png")
	assert.Error(t, err, "unsupported types must fail extraction")
}
