package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbportal/internal/domain"
	models "kbportal/internal/domain/models/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

func TestBreadcrumbAtRootShowsHome(t *testing.T) {
	lib, _ := newTestLibrary(t)

	crumbs, err := lib.Navigation.Breadcrumb(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []models.Crumb{{ID: rootID(t, lib), Name: models.HomeLabel}}, crumbs)
}

func TestBreadcrumbFollowsParentChain(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()

	a := mkdir(t, lib, "A", rootID(t, lib))
	b := mkdir(t, lib, "B", a.ID)
	c := mkdir(t, lib, "C", b.ID)

	for _, folder := range []*models.Node{a, b, c} {
		loc, err := lib.Navigation.Enter(ctx, folder.ID)
		require.NoError(t, err)

		snapshot := lib.Store.Snapshot(ctx)
		depth, err := snapshot.Depth(folder.ID)
		require.NoError(t, err)
		require.Len(t, loc.Breadcrumb, depth+1)
		assert.Equal(t, models.HomeLabel, loc.Breadcrumb[0].Name)

		// Each crumb's parent is the previous crumb
		for i := 1; i < len(loc.Breadcrumb); i++ {
			n, ok := snapshot.Get(loc.Breadcrumb[i].ID)
			require.True(t, ok)
			assert.Equal(t, loc.Breadcrumb[i-1].ID, n.Parent())
			assert.Equal(t, n.Name, loc.Breadcrumb[i].Name)
		}
	}

	crumbs, err := lib.Navigation.Breadcrumb(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{models.HomeLabel, "A", "B", "C"}, []string{crumbs[0].Name, crumbs[1].Name, crumbs[2].Name, crumbs[3].Name})
}

func TestBreadcrumbReflectsRename(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()

	a := mkdir(t, lib, "A", rootID(t, lib))
	_, err := lib.Navigation.Enter(ctx, a.ID)
	require.NoError(t, err)

	_, err = lib.Folders.Rename(ctx, a.ID, &docsysSvc.RenameRequest{Name: "Archive"})
	require.NoError(t, err)

	crumbs, err := lib.Navigation.Breadcrumb(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Archive", crumbs[1].Name)
}

func TestEnterRejectsWithoutStateChange(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()

	a := mkdir(t, lib, "A", rootID(t, lib))
	run, err := lib.Ingest.Ingest(ctx, &docsysSvc.IngestRequest{
		Files: []models.Descriptor{{Name: "a.pdf", SizeBytes: 10}},
	})
	require.NoError(t, err)
	summary, err := run.Drain(ctx)
	require.NoError(t, err)
	fileID := summary.NodeIDs[0]

	_, err = lib.Navigation.Enter(ctx, a.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		want   error
	}{
		{"missing id", "folder-does-not-exist", domain.ErrNotFound},
		{"file", fileID, domain.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lib.Navigation.Enter(ctx, tt.target)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, a.ID, lib.Navigation.CurrentFolderID(ctx))
		})
	}
}

func TestUp(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()
	root := rootID(t, lib)

	// No-op at the root
	loc, err := lib.Navigation.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, root, loc.Folder.ID)

	a := mkdir(t, lib, "A", root)
	b := mkdir(t, lib, "B", a.ID)
	_, err = lib.Navigation.Enter(ctx, b.ID)
	require.NoError(t, err)

	loc, err = lib.Navigation.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, loc.Folder.ID)
	assert.Len(t, loc.Breadcrumb, 2)

	loc, err = lib.Navigation.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, root, loc.Folder.ID)
	assert.Equal(t, root, lib.Navigation.CurrentFolderID(ctx))
}

func TestCurrentFolderFallsBackAfterDelete(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()

	a := mkdir(t, lib, "A", rootID(t, lib))
	b := mkdir(t, lib, "B", a.ID)
	c := mkdir(t, lib, "C", b.ID)
	_, err := lib.Navigation.Enter(ctx, c.ID)
	require.NoError(t, err)

	// Non-cascading delete detaches C; navigation lands on A
	_, err = lib.Folders.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, lib.Navigation.CurrentFolderID(ctx))

	crumbs, err := lib.Navigation.Breadcrumb(ctx)
	require.NoError(t, err)
	assert.Len(t, crumbs, 2)

	// Detached folders cannot be entered
	_, err = lib.Navigation.Enter(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestListCurrentOrderingIsDerivedAndIdempotent(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()
	root := rootID(t, lib)

	run, err := lib.Ingest.Ingest(ctx, &docsysSvc.IngestRequest{Files: []models.Descriptor{
		{Name: "zeta.txt"}, {Name: "Alpha.pdf"}, {Name: "beta.md"},
	}})
	require.NoError(t, err)
	_, err = run.Drain(ctx)
	require.NoError(t, err)
	mkdir(t, lib, "Zoo", root)
	mkdir(t, lib, "apple", root)

	first, err := lib.Navigation.ListCurrent(ctx)
	require.NoError(t, err)
	second, err := lib.Navigation.ListCurrent(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"apple", "Zoo", "Alpha.pdf", "beta.md", "zeta.txt"}, names(first))
	assert.Equal(t, first, second)

	// Insertion order is untouched
	children := lib.Store.Root(ctx).ChildIDs()
	stored := make([]string, len(children))
	for i, id := range children {
		n, err := lib.Store.Get(ctx, id)
		require.NoError(t, err)
		stored[i] = n.Name
	}
	assert.Equal(t, []string{"zeta.txt", "Alpha.pdf", "beta.md", "Zoo", "apple"}, stored)
}

func TestListFolder(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := t.Context()

	a := mkdir(t, lib, "A", rootID(t, lib))
	mkdir(t, lib, "inner", a.ID)

	children, err := lib.Navigation.ListFolder(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, names(children))
	assert.Equal(t, rootID(t, lib), lib.Navigation.CurrentFolderID(ctx))

	_, err = lib.Navigation.ListFolder(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
