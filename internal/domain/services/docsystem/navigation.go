package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// NavigationService tracks the current folder and derives listing and breadcrumb
type NavigationService interface {
	// CurrentFolderID returns the folder considered open. When the remembered
	// folder was deleted or detached, the nearest surviving ancestor on the
	// remembered path is used instead (the root at worst).
	CurrentFolderID(ctx context.Context) string

	// Current returns the open folder and its breadcrumb
	Current(ctx context.Context) (*docsystem.Location, error)

	// Enter opens a folder. Missing ids and files are rejected without a state change.
	Enter(ctx context.Context, folderID string) (*docsystem.Location, error)

	// Up moves to the parent folder; no-op at the root
	Up(ctx context.Context) (*docsystem.Location, error)

	// Breadcrumb returns the path from the root to the current folder
	Breadcrumb(ctx context.Context) ([]docsystem.Crumb, error)

	// ListCurrent returns the current folder's children, folders first, then by name
	ListCurrent(ctx context.Context) ([]*docsystem.Node, error)

	// ListFolder lists any folder's children without moving
	ListFolder(ctx context.Context, folderID string) ([]*docsystem.Node, error)
}
