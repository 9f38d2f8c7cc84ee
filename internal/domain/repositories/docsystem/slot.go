package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// KeyValueStore is the durable get/set slot the host environment provides.
// Implementations must be safe for concurrent use.
type KeyValueStore interface {
	// Get returns the value stored under key; found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the backend's resources
	Close() error
}

// TreePersister serializes the whole node store to and from one slot
type TreePersister interface {
	// Save writes a complete snapshot of tree
	Save(ctx context.Context, tree *docsystem.Tree) error

	// Load reads the last snapshot; found is false when no prior session exists
	Load(ctx context.Context) (tree *docsystem.Tree, found bool, err error)
}
