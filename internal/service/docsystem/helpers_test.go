package docsystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/repository/slot"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// flakySlot wraps a memory slot and fails writes on demand
type flakySlot struct {
	*slot.MemoryStore
	failWrites atomic.Bool
	writes     atomic.Int32
}

func newFlakySlot() *flakySlot {
	return &flakySlot{MemoryStore: slot.NewMemoryStore()}
}

func (f *flakySlot) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites.Load() {
		return errors.New("disk full")
	}
	f.writes.Add(1)
	return f.MemoryStore.Set(ctx, key, value)
}

// newTestLibrary starts a library holding only the root folder
func newTestLibrary(t *testing.T) (*Library, *flakySlot) {
	t.Helper()
	kv := newFlakySlot()
	lib, err := SetupLibrary(t.Context(), kv, LibraryOptions{}, discardLogger())
	require.NoError(t, err)
	return lib, kv
}

func rootID(t *testing.T, lib *Library) string {
	t.Helper()
	return lib.Store.Root(t.Context()).ID
}

func mkdir(t *testing.T, lib *Library, name string, parentID string) *models.Node {
	t.Helper()
	var parent *string
	if parentID != "" {
		parent = &parentID
	}
	folder, err := lib.Folders.CreateFolder(t.Context(), &docsysSvc.CreateFolderRequest{Name: name, ParentID: parent})
	require.NoError(t, err)
	return folder
}

func names(nodes []*models.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

// requireTreeInvariant checks the structural invariants of the published tree
// and that what is persisted decodes to the same tree
func requireTreeInvariant(t *testing.T, lib *Library, kv docsysRepo.KeyValueStore) {
	t.Helper()
	snapshot := lib.Store.Snapshot(t.Context())
	require.NoError(t, snapshot.Validate())

	persisted, found, err := NewSlotPersister(kv, "kb.documents").Load(t.Context())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snapshot, persisted)
}
