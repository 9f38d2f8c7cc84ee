package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// NodeStore is the authoritative mapping of node ids to node records.
//
// Reads return copies; callers never observe a half-applied write. Every
// successful write is persisted before it becomes visible to readers.
type NodeStore interface {
	// Get retrieves a node by id (NotFoundError if absent)
	Get(ctx context.Context, id string) (*docsystem.Node, error)

	// Root returns the designated root folder, which always exists
	Root(ctx context.Context) *docsystem.Node

	// Put inserts or overwrites a node record and persists.
	// The caller is responsible for keeping the tree invariants.
	Put(ctx context.Context, node *docsystem.Node) error

	// Remove deletes a single record and persists. It does not cascade and
	// does not touch the parent's child list.
	Remove(ctx context.Context, id string) error

	// View runs fn against the current published tree under a read lock.
	// fn must not modify or retain the tree.
	View(ctx context.Context, fn func(tree *docsystem.Tree) error) error

	// Update runs fn inside a single-writer transaction. Changes are staged,
	// persisted as a whole snapshot, then published. If fn or the persistence
	// write fails, nothing changes.
	Update(ctx context.Context, fn func(tx NodeTx) error) error

	// Snapshot returns a deep copy of the current tree
	Snapshot(ctx context.Context) *docsystem.Tree
}

// NodeTx is the staged view handed to NodeStore.Update callbacks
type NodeTx interface {
	// Get returns the staged node for in-place modification
	Get(id string) (*docsystem.Node, error)

	// Root returns the staged root node
	Root() *docsystem.Node

	// Insert adds a new record; ConflictError if the id is already taken
	Insert(node *docsystem.Node) error

	// Put inserts or overwrites a record
	Put(node *docsystem.Node)

	// Remove deletes a record (NotFoundError if absent)
	Remove(id string) error

	// Tree exposes the staged tree for read-only traversal
	Tree() *docsystem.Tree
}
