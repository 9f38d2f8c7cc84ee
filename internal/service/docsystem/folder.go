package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kbportal/internal/config"
	"kbportal/internal/domain"
	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

type folderService struct {
	store    docsysRepo.NodeStore
	nav      docsysSvc.NavigationService
	ids      *IDGenerator
	notifier docsysSvc.Notifier
	observer docsysSvc.OperationObserver
	logger   *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	store docsysRepo.NodeStore,
	nav docsysSvc.NavigationService,
	ids *IDGenerator,
	notifier docsysSvc.Notifier,
	observer docsysSvc.OperationObserver,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		store:    store,
		nav:      nav,
		ids:      ids,
		notifier: notifier,
		observer: orNoop(observer),
		logger:   logger,
	}
}

// CreateFolder creates an empty folder and appends it to the parent's children
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Node, error) {
	folder, err := s.createFolder(ctx, req)
	s.observer.ObserveOperation("create_folder", err)
	return folder, err
}

func (s *folderService) createFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Node, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	parentID := s.nav.CurrentFolderID(ctx)
	if req.ParentID != nil && *req.ParentID != "" {
		parentID = *req.ParentID
	}

	var folder *models.Node
	err := s.store.Update(ctx, func(tx docsysRepo.NodeTx) error {
		parent, err := tx.Get(parentID)
		if err != nil {
			return err
		}
		if !parent.IsFolder() {
			return &domain.InvalidOperationError{Message: fmt.Sprintf("cannot create a folder inside file %q", parent.Name)}
		}

		folder = models.NewFolder(s.ids.New(models.KindFolder, 0), req.Name, models.StringPtr(parent.ID))
		if err := tx.Insert(folder); err != nil {
			return err
		}
		parent.AppendChild(folder.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", parentID,
	)
	s.notifier.Notify(ctx, models.NotificationSuccess, fmt.Sprintf("Folder %q created", folder.Name))

	return folder.Clone(), nil
}

// Rename updates a node's name in place. File extensions are left untouched.
func (s *folderService) Rename(ctx context.Context, id string, req *docsysSvc.RenameRequest) (*models.Node, error) {
	node, err := s.rename(ctx, id, req)
	s.observer.ObserveOperation("rename", err)
	return node, err
}

func (s *folderService) rename(ctx context.Context, id string, req *docsysSvc.RenameRequest) (*models.Node, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateRenameRequest(req); err != nil {
		return nil, err
	}

	var node *models.Node
	var oldName string
	err := s.store.Update(ctx, func(tx docsysRepo.NodeTx) error {
		n, err := tx.Get(id)
		if err != nil {
			return &domain.ValidationError{Message: fmt.Sprintf("node %s not found", id), Missing: true}
		}
		oldName = n.Name
		n.Name = req.Name
		node = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("node renamed",
		"id", id,
		"kind", node.Kind,
		"old_name", oldName,
		"new_name", node.Name,
	)
	s.notifier.Notify(ctx, models.NotificationSuccess, fmt.Sprintf("Renamed %q to %q", oldName, node.Name))

	return node.Clone(), nil
}

// Delete removes a node and its parent's child entry. Descendants are kept
// as detached records.
func (s *folderService) Delete(ctx context.Context, id string) (*docsysSvc.DeleteResult, error) {
	result, err := s.delete(ctx, id, false)
	s.observer.ObserveOperation("delete", err)
	return result, err
}

// DeleteRecursive removes a node and every node below it. Detached records
// are accepted, so orphans from a plain Delete can be cleared.
func (s *folderService) DeleteRecursive(ctx context.Context, id string) (*docsysSvc.DeleteResult, error) {
	result, err := s.delete(ctx, id, true)
	s.observer.ObserveOperation("delete_recursive", err)
	return result, err
}

func (s *folderService) delete(ctx context.Context, id string, recursive bool) (*docsysSvc.DeleteResult, error) {
	result := &docsysSvc.DeleteResult{}
	err := s.store.Update(ctx, func(tx docsysRepo.NodeTx) error {
		n, err := tx.Get(id)
		if err != nil {
			return err
		}
		if n.IsRoot() {
			return &domain.InvalidOperationError{Message: "the root folder cannot be deleted"}
		}
		// A record whose parent is gone was left behind by a non-cascading
		// delete; only a recursive delete may clear it.
		parent, err := tx.Get(n.Parent())
		if err != nil && !recursive {
			return &domain.NotFoundError{Message: fmt.Sprintf("parent %s of node %s not found", n.Parent(), id)}
		}

		subtree := tx.Tree().Subtree(id)
		if parent != nil {
			parent.RemoveChild(id)
		}

		if !recursive {
			result.RemovedIDs = []string{id}
			result.DetachedIDs = subtree[1:]
			result.Node = n.Clone()
			return tx.Remove(id)
		}

		result.RemovedIDs = subtree
		result.Node = n.Clone()
		for _, removed := range subtree {
			if err := tx.Remove(removed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("node deleted",
		"id", id,
		"kind", result.Node.Kind,
		"recursive", recursive,
		"removed", len(result.RemovedIDs),
		"detached", len(result.DetachedIDs),
	)
	if len(result.DetachedIDs) > 0 {
		s.logger.Warn("delete left detached descendants",
			"id", id,
			"detached_ids", result.DetachedIDs,
		)
	}
	s.notifier.Notify(ctx, models.NotificationSuccess, fmt.Sprintf("Deleted %q", result.Node.Name))

	return result, nil
}

func (s *folderService) validateCreateRequest(req *docsysSvc.CreateFolderRequest) error {
	return asValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules()...),
	))
}

func (s *folderService) validateRenameRequest(req *docsysSvc.RenameRequest) error {
	return asValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules()...),
	))
}

// nameRules are shared by folder names, renames and upload names
func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("must not be blank"),
		validation.RuneLength(1, config.MaxNodeNameLength),
	}
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &domain.ValidationError{Message: err.Error()}
}
