package docsystem

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"kbportal/internal/config"
	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

// searchService implements SearchService as a linear scan of the store
type searchService struct {
	store    docsysRepo.NodeStore
	observer docsysSvc.OperationObserver
	logger   *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(store docsysRepo.NodeStore, observer docsysSvc.OperationObserver, logger *slog.Logger) docsysSvc.SearchService {
	return &searchService{
		store:    store,
		observer: orNoop(observer),
		logger:   logger,
	}
}

// Search matches names case-insensitively across every node, regardless of
// the current folder. Results use the listing order.
func (s *searchService) Search(ctx context.Context, query string) ([]*models.Node, error) {
	if strings.TrimSpace(query) == "" || utf8.RuneCountInString(query) > config.MaxSearchQueryLength {
		return []*models.Node{}, nil
	}
	needle := strings.ToLower(query)

	results := []*models.Node{}
	err := s.store.View(ctx, func(tree *models.Tree) error {
		for _, n := range tree.Nodes {
			if strings.Contains(strings.ToLower(n.Name), needle) {
				results = append(results, n.Clone())
			}
		}
		return nil
	})
	s.observer.ObserveOperation("search", err)
	if err != nil {
		return nil, err
	}

	sortForDisplay(results)
	s.logger.Debug("search", "query", query, "results", len(results))
	return results, nil
}
