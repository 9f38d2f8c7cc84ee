package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"kbportal/internal/domain"
	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

// navigationService implements the NavigationService interface.
// It remembers the path (root first) of the folder last entered; reads
// resolve that path against the live tree, so deletes never leave it
// pointing at a missing or detached folder.
type navigationService struct {
	store  docsysRepo.NodeStore
	mu     sync.Mutex
	path   []string
	logger *slog.Logger
}

// NewNavigationService creates a navigation controller starting at the root
func NewNavigationService(store docsysRepo.NodeStore, logger *slog.Logger) docsysSvc.NavigationService {
	return &navigationService{
		store:  store,
		logger: logger,
	}
}

// resolve returns the deepest folder on the remembered path that still exists
// and is attached to the root. Callers hold s.mu and a view of the tree.
func (s *navigationService) resolve(tree *models.Tree) string {
	for i := len(s.path) - 1; i >= 0; i-- {
		id := s.path[i]
		if n, ok := tree.Get(id); ok && n.IsFolder() && tree.IsAttached(id) {
			if i != len(s.path)-1 {
				s.logger.Debug("current folder gone, falling back to ancestor",
					"previous", s.path[len(s.path)-1],
					"folder_id", id,
				)
				s.path = s.path[:i+1]
			}
			return id
		}
	}
	s.path = nil
	return tree.RootID
}

func (s *navigationService) CurrentFolderID(ctx context.Context) string {
	var current string
	_ = s.store.View(ctx, func(tree *models.Tree) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		current = s.resolve(tree)
		return nil
	})
	if current == "" {
		return s.store.Root(ctx).ID
	}
	return current
}

func (s *navigationService) Current(ctx context.Context) (*models.Location, error) {
	var loc *models.Location
	err := s.store.View(ctx, func(tree *models.Tree) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		loc = locate(tree, s.resolve(tree))
		return nil
	})
	return loc, err
}

func (s *navigationService) Enter(ctx context.Context, folderID string) (*models.Location, error) {
	var loc *models.Location
	err := s.store.View(ctx, func(tree *models.Tree) error {
		n, ok := tree.Get(folderID)
		if !ok {
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
		}
		if !n.IsFolder() {
			return &domain.InvalidOperationError{Message: fmt.Sprintf("%q is a file and cannot be opened as a folder", n.Name)}
		}
		if !tree.IsAttached(folderID) {
			return &domain.InvalidOperationError{Message: fmt.Sprintf("folder %q is no longer reachable from the root", n.Name)}
		}

		loc = locate(tree, folderID)

		s.mu.Lock()
		s.path = crumbIDs(loc.Breadcrumb)
		s.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("entered folder", "folder_id", folderID, "depth", len(loc.Breadcrumb)-1)
	return loc, nil
}

func (s *navigationService) Up(ctx context.Context) (*models.Location, error) {
	var loc *models.Location
	err := s.store.View(ctx, func(tree *models.Tree) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		current := s.resolve(tree)
		if current != tree.RootID {
			// resolve only returns attached folders, so the parent exists
			current = tree.Nodes[current].Parent()
		}
		loc = locate(tree, current)
		s.path = crumbIDs(loc.Breadcrumb)
		return nil
	})
	return loc, err
}

func (s *navigationService) Breadcrumb(ctx context.Context) ([]models.Crumb, error) {
	loc, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return loc.Breadcrumb, nil
}

func (s *navigationService) ListCurrent(ctx context.Context) ([]*models.Node, error) {
	return s.ListFolder(ctx, s.CurrentFolderID(ctx))
}

func (s *navigationService) ListFolder(ctx context.Context, folderID string) ([]*models.Node, error) {
	var children []*models.Node
	err := s.store.View(ctx, func(tree *models.Tree) error {
		folder, ok := tree.Get(folderID)
		if !ok {
			return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
		}
		if !folder.IsFolder() {
			return &domain.InvalidOperationError{Message: fmt.Sprintf("%q is a file and has no children", folder.Name)}
		}

		children = make([]*models.Node, 0, len(folder.ChildIDs()))
		for _, id := range folder.ChildIDs() {
			if child, ok := tree.Get(id); ok {
				children = append(children, child.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortForDisplay(children)
	return children, nil
}

// locate builds the location of an attached folder. The breadcrumb walks
// parent links up to the root and is reversed; the root shows as "Home".
func locate(tree *models.Tree, folderID string) *models.Location {
	var crumbs []models.Crumb
	current, ok := tree.Get(folderID)
	for ok && len(crumbs) <= tree.Len() {
		if current.ID == tree.RootID {
			crumbs = append(crumbs, models.Crumb{ID: current.ID, Name: models.HomeLabel})
			break
		}
		crumbs = append(crumbs, models.Crumb{ID: current.ID, Name: current.Name})
		current, ok = tree.Get(current.Parent())
	}
	slices.Reverse(crumbs)

	folder, _ := tree.Get(folderID)
	return &models.Location{Folder: folder.Clone(), Breadcrumb: crumbs}
}

func crumbIDs(crumbs []models.Crumb) []string {
	ids := make([]string, len(crumbs))
	for i, c := range crumbs {
		ids[i] = c.ID
	}
	return ids
}
