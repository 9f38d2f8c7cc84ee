package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "kbportal/internal/domain/models/docsystem"
	"kbportal/internal/service/docsystem"
)

func childNames(t *testing.T, tree *models.Tree, id string) []string {
	t.Helper()
	n, ok := tree.Get(id)
	require.True(t, ok)
	var out []string
	for _, c := range n.ChildIDs() {
		out = append(out, tree.Nodes[c].Name)
	}
	return out
}

func TestDefaultTree(t *testing.T) {
	tree, err := DefaultTree(docsystem.NewIDGenerator())
	require.NoError(t, err)
	require.NoError(t, tree.Validate())

	assert.Equal(t, "Documents", tree.Root().Name)
	assert.Equal(t, []string{"Product Manuals", "FAQ", "Policies", "Welcome.txt"}, childNames(t, tree, tree.RootID))
	assert.Equal(t, 11, tree.Len())
	assert.Empty(t, tree.Detached())

	for _, n := range tree.Nodes {
		if n.Name == "Getting Started.pdf" {
			assert.Equal(t, "pdf", n.File.Extension)
			assert.Equal(t, "2.4 MB", n.File.SizeLabel)
			assert.Equal(t, "2024-01-15", n.File.ModifiedDate)
		}
	}
}

func TestFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		wantErr string
	}{
		{"bad yaml", "root: [", "parse seed layout"},
		{"both kinds", "children:\n  - folder: A\n    file: a.txt\n", "both a folder and a file"},
		{"neither kind", "children:\n  - size_bytes: 3\n", "neither a folder nor a file"},
		{"file with children", "children:\n  - file: a.txt\n    children:\n      - file: b.txt\n", "cannot have children"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.layout), docsystem.NewIDGenerator())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromFileDefaultsRootName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("children:\n  - folder: Only\n"), 0644))

	tree, err := FromFile(path)(docsystem.NewIDGenerator())
	require.NoError(t, err)
	assert.Equal(t, docsystem.DefaultRootName, tree.Root().Name)
	assert.Equal(t, []string{"Only"}, childNames(t, tree, tree.RootID))
}
