package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// SearchService answers name queries across the whole store
type SearchService interface {
	// Search returns every node whose name contains query, case-insensitively.
	// A blank query yields no results.
	Search(ctx context.Context, query string) ([]*docsystem.Node, error)
}
