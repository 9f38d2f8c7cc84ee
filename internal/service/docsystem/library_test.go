package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "kbportal/internal/domain/models/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/repository/slot"
)

func TestSetupLibrarySeedsThenReloads(t *testing.T) {
	ctx := t.Context()
	kv := slot.NewMemoryStore()

	seeded := 0
	seed := func(ids *IDGenerator) (*models.Tree, error) {
		seeded++
		root := models.NewFolder(ids.New(models.KindFolder, 0), "Documents", nil)
		tree := models.NewTree(root)
		child := models.NewFolder(ids.New(models.KindFolder, 1), "FAQ", models.StringPtr(root.ID))
		tree.Nodes[child.ID] = child
		root.AppendChild(child.ID)
		return tree, nil
	}

	first, err := SetupLibrary(ctx, kv, LibraryOptions{Seed: seed}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, seeded)
	assert.Equal(t, 2, first.Store.Snapshot(ctx).Len())

	_, err = first.Folders.CreateFolder(ctx, &docsysSvc.CreateFolderRequest{Name: "Policies"})
	require.NoError(t, err)

	second, err := SetupLibrary(ctx, kv, LibraryOptions{Seed: seed}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, seeded, "existing slot is not reseeded")
	assert.Equal(t, first.Store.Snapshot(ctx), second.Store.Snapshot(ctx))
}

func TestSetupLibraryRejectsCorruptSlot(t *testing.T) {
	kv := slot.NewMemoryStore()
	require.NoError(t, kv.Set(t.Context(), "kb.documents", []byte(`{"a":{"id":"a","kind":"folder","parentId":"x"}}`)))

	_, err := SetupLibrary(t.Context(), kv, LibraryOptions{}, discardLogger())
	assert.ErrorContains(t, err, "load document tree")
}

func TestSetupLibraryCustomSlotKey(t *testing.T) {
	kv := slot.NewMemoryStore()
	_, err := SetupLibrary(t.Context(), kv, LibraryOptions{SlotKey: "tenant.docs"}, discardLogger())
	require.NoError(t, err)

	_, found, err := kv.Get(t.Context(), "tenant.docs")
	require.NoError(t, err)
	assert.True(t, found)
}
