package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// TreeService defines operations for exporting the document tree
type TreeService interface {
	// GetTree builds the nested folder/file tree from the root
	GetTree(ctx context.Context) (*TreeExport, error)
}

// TreeExport is the nested tree plus bookkeeping about unreachable records
type TreeExport struct {
	Root      *docsystem.TreeNode `json:"root"`
	NodeCount int                 `json:"node_count"`
	Detached  []string            `json:"detached"`
}
