package docsystem

import (
	"context"
	"log/slog"

	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

// treeService implements the TreeService interface
type treeService struct {
	store  docsysRepo.NodeStore
	logger *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(store docsysRepo.NodeStore, logger *slog.Logger) docsysSvc.TreeService {
	return &treeService{
		store:  store,
		logger: logger,
	}
}

// GetTree builds the nested tree from the root in insertion order and lists
// the records a non-cascading delete left unreachable
func (s *treeService) GetTree(ctx context.Context) (*docsysSvc.TreeExport, error) {
	var export *docsysSvc.TreeExport
	err := s.store.View(ctx, func(tree *models.Tree) error {
		detached := tree.Detached()
		if detached == nil {
			detached = []string{}
		}
		export = &docsysSvc.TreeExport{
			Root:      tree.Nested(),
			NodeCount: tree.Len(),
			Detached:  detached,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("tree built",
		"nodes", export.NodeCount,
		"detached", len(export.Detached),
	)
	return export, nil
}
