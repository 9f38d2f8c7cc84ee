package docsystem

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "kbportal/internal/domain/models/docsystem"
)

func TestDescriptorSources(t *testing.T) {
	dir := t.TempDir()

	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "b.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "a.pdf"), make([]byte, 2048), 0644))

	archivePath := filepath.Join(dir, "bundle.zip")
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range map[string]string{"manuals/guide.md": "# guide", "top.txt": "x"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	_, err = zw.Create("emptydir/")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	registry := NewDescriptorSourceRegistry()

	t.Run("directory", func(t *testing.T) {
		got, err := registry.Descriptors(docs)
		require.NoError(t, err)
		assert.Equal(t, []models.Descriptor{
			{Name: "a.pdf", SizeBytes: 2048},
			{Name: "b.txt", SizeBytes: 5},
		}, got)
	})

	t.Run("zip", func(t *testing.T) {
		got, err := registry.Descriptors(archivePath)
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Descriptor{
			{Name: "guide.md", SizeBytes: 7},
			{Name: "top.txt", SizeBytes: 1},
		}, got)
	})

	t.Run("single file", func(t *testing.T) {
		got, err := registry.Descriptors(filepath.Join(docs, "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, []models.Descriptor{{Name: "b.txt", SizeBytes: 5}}, got)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := registry.Descriptors(filepath.Join(dir, "nope"))
		assert.Error(t, err)
	})
}
