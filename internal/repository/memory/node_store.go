package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kbportal/internal/domain"
	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
)

// WriteObserver is notified after every committed or failed write.
// internal/metrics provides the Prometheus implementation.
type WriteObserver interface {
	ObservePersist(duration time.Duration, err error)
}

// NodeStore keeps the tree in memory and persists a full snapshot on every write.
//
// Writers are serialized by writeMu; each write stages changes on a clone of
// the published tree, persists the clone, then swaps it in under mu. Readers
// only ever see fully persisted states.
type NodeStore struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	tree      *models.Tree
	persister docsysRepo.TreePersister
	observer  WriteObserver
	logger    *slog.Logger
}

// NewNodeStore creates a store publishing tree. The tree is taken as the
// already-persisted state; call Update or Put to write through.
func NewNodeStore(tree *models.Tree, persister docsysRepo.TreePersister, logger *slog.Logger) *NodeStore {
	return &NodeStore{
		tree:      tree,
		persister: persister,
		logger:    logger,
	}
}

// WithObserver attaches a write observer
func (s *NodeStore) WithObserver(observer WriteObserver) *NodeStore {
	s.observer = observer
	return s
}

// Get retrieves a copy of a node by id
func (s *NodeStore) Get(ctx context.Context, id string) (*models.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.tree.Get(id)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", id)}
	}
	return n.Clone(), nil
}

// Root returns a copy of the root folder
func (s *NodeStore) Root(ctx context.Context) *models.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Root().Clone()
}

// Put inserts or overwrites a record and persists
func (s *NodeStore) Put(ctx context.Context, node *models.Node) error {
	return s.Update(ctx, func(tx docsysRepo.NodeTx) error {
		tx.Put(node.Clone())
		return nil
	})
}

// Remove deletes a single record and persists (no cascade)
func (s *NodeStore) Remove(ctx context.Context, id string) error {
	return s.Update(ctx, func(tx docsysRepo.NodeTx) error {
		return tx.Remove(id)
	})
}

// View runs fn against the published tree under a read lock
func (s *NodeStore) View(ctx context.Context, fn func(tree *models.Tree) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.tree)
}

// Snapshot returns a deep copy of the published tree
func (s *NodeStore) Snapshot(ctx context.Context) *models.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Clone()
}

// Update runs fn in a single-writer transaction.
func (s *NodeStore) Update(ctx context.Context, fn func(tx docsysRepo.NodeTx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	staged := s.tree.Clone()
	s.mu.RUnlock()

	if err := fn(&nodeTx{tree: staged}); err != nil {
		return err
	}

	start := time.Now()
	err := s.persister.Save(ctx, staged)
	if s.observer != nil {
		s.observer.ObservePersist(time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("persist failed, write discarded",
			"nodes", staged.Len(),
			"error", err,
		)
		return fmt.Errorf("persist node store: %w", err)
	}

	s.mu.Lock()
	s.tree = staged
	s.mu.Unlock()

	s.logger.Debug("node store committed", "nodes", staged.Len())
	return nil
}

// nodeTx stages changes on a private clone of the tree
type nodeTx struct {
	tree *models.Tree
}

func (tx *nodeTx) Get(id string) (*models.Node, error) {
	n, ok := tx.tree.Get(id)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", id)}
	}
	return n, nil
}

func (tx *nodeTx) Root() *models.Node {
	return tx.tree.Root()
}

func (tx *nodeTx) Insert(node *models.Node) error {
	if _, exists := tx.tree.Nodes[node.ID]; exists {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("node id %s already in use", node.ID),
			ResourceType: string(node.Kind),
			ResourceID:   node.ID,
		}
	}
	tx.tree.Nodes[node.ID] = node
	return nil
}

func (tx *nodeTx) Put(node *models.Node) {
	tx.tree.Nodes[node.ID] = node
}

func (tx *nodeTx) Remove(id string) error {
	if _, ok := tx.tree.Nodes[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", id)}
	}
	if id == tx.tree.RootID {
		return &domain.InvalidOperationError{Message: "the root folder cannot be removed"}
	}
	delete(tx.tree.Nodes, id)
	return nil
}

func (tx *nodeTx) Tree() *models.Tree {
	return tx.tree
}
