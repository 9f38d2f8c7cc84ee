package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "kbportal/internal/domain/models/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

// kbctl runs one invocation against a file slot in dir
func kbctl(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--slot-backend", "file", "--data-dir", dir}, args...))
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func mustJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func findByName(t *testing.T, nodes []*models.Node, name string) *models.Node {
	t.Helper()
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}
	t.Fatalf("no node named %q", name)
	return nil
}

func TestLsSeedsDemoTreeOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	out, err := kbctl(t, dir, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Product Manuals")
	assert.Contains(t, out, "Welcome.txt")

	out, err = kbctl(t, dir, "ls", "-o", "json")
	require.NoError(t, err)
	nodes := mustJSON[[]*models.Node](t, out)
	assert.Len(t, nodes, 4)
}

func TestMkdirRenameRmPersistAcrossInvocations(t *testing.T) {
	dir := t.TempDir()

	out, err := kbctl(t, dir, "mkdir", "Drafts", "-o", "json")
	require.NoError(t, err)
	drafts := mustJSON[models.Node](t, out)

	_, err = kbctl(t, dir, "rename", drafts.ID, "Archive")
	require.NoError(t, err)

	out, err = kbctl(t, dir, "ls", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, drafts.ID, findByName(t, mustJSON[[]*models.Node](t, out), "Archive").ID)

	out, err = kbctl(t, dir, "rm", drafts.ID)
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "Archive"`)

	out, err = kbctl(t, dir, "search", "archive", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, mustJSON[[]*models.Node](t, out))
}

func TestRmNonRecursiveReportsDetached(t *testing.T) {
	dir := t.TempDir()

	out, err := kbctl(t, dir, "ls", "-o", "json")
	require.NoError(t, err)
	faq := findByName(t, mustJSON[[]*models.Node](t, out), "FAQ")

	out, err = kbctl(t, dir, "rm", faq.ID, "-o", "json")
	require.NoError(t, err)
	result := mustJSON[docsysSvc.DeleteResult](t, out)
	assert.Len(t, result.DetachedIDs, 3)

	out, err = kbctl(t, dir, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "10 node(s), 3 detached")
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()

	out, err := kbctl(t, dir, "mkdir", "Inbox", "-o", "json")
	require.NoError(t, err)
	inbox := mustJSON[models.Node](t, out)

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "guide.md"), []byte("# guide"), 0o644))

	out, err = kbctl(t, dir, "upload", "--folder", inbox.ID, "--from", src, "Report: Q3.pdf:1048576")
	require.NoError(t, err)
	assert.Contains(t, out, "[1/2] Report: Q3.pdf")
	assert.Contains(t, out, "[2/2] guide.md")
	assert.Contains(t, out, "2 file(s) uploaded")

	out, err = kbctl(t, dir, "ls", inbox.ID, "-o", "json")
	require.NoError(t, err)
	files := mustJSON[[]*models.Node](t, out)
	require.Len(t, files, 2)
	assert.Equal(t, "1.0 MB", findByName(t, files, "Report: Q3.pdf").File.SizeLabel)
	assert.Equal(t, "md", findByName(t, files, "guide.md").File.Extension)
}

func TestUploadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"no descriptors", []string{"upload"}},
		{"missing size", []string{"upload", "report.pdf"}},
		{"negative size", []string{"upload", "report.pdf:-1"}},
		{"missing folder", []string{"upload", "--folder", "nope", "a.txt:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kbctl(t, dir, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()

	out, err := kbctl(t, dir, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 11 node(s)")

	_, err = kbctl(t, dir, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--reset")

	layout := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(layout, []byte("root: Library\nchildren:\n  - folder: Only\n"), 0o644))

	out, err = kbctl(t, dir, "seed", "--reset", "--file", layout)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 2 node(s)")

	out, err = kbctl(t, dir, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Only")
	assert.NotContains(t, out, "Welcome.txt")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := kbctl(t, t.TempDir(), "ls", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestParseDescriptors(t *testing.T) {
	got, err := parseDescriptors([]string{"a.txt:10", "b:c.md:0"})
	require.NoError(t, err)
	assert.Equal(t, []models.Descriptor{
		{Name: "a.txt", SizeBytes: 10},
		{Name: "b:c.md", SizeBytes: 0},
	}, got)
}
