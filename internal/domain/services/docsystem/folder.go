package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// FolderService handles the mutating operations on the node store
type FolderService interface {
	// CreateFolder creates an empty folder under the parent (current folder when unset)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docsystem.Node, error)

	// Rename changes a node's name in place. A file's extension is left as
	// it was, even when the new name carries a different suffix.
	Rename(ctx context.Context, id string, req *RenameRequest) (*docsystem.Node, error)

	// Delete removes a node and its entry in the parent's child list.
	// Descendants are not removed; they stay as detached records.
	Delete(ctx context.Context, id string) (*DeleteResult, error)

	// DeleteRecursive removes a node together with its whole subtree. Unlike
	// Delete it accepts a detached record whose parent no longer exists.
	DeleteRecursive(ctx context.Context, id string) (*DeleteResult, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil = current folder
}

// RenameRequest represents a rename request
type RenameRequest struct {
	Name string `json:"name"`
}

// DeleteResult describes what a delete removed
type DeleteResult struct {
	Node        *docsystem.Node `json:"node"`
	RemovedIDs  []string        `json:"removed_ids"`
	DetachedIDs []string        `json:"detached_ids,omitempty"` // descendants left without a parent
}
