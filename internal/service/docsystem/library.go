package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"kbportal/internal/config"
	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/repository/memory"
)

// DefaultRootName names the root folder of a freshly seeded store
const DefaultRootName = "Documents"

// Seeder builds the tree used when the slot holds no prior session
type Seeder func(ids *IDGenerator) (*models.Tree, error)

// LibraryOptions configures SetupLibrary
type LibraryOptions struct {
	SlotKey       string               // defaults to config.DefaultSlotKey
	Seed          Seeder               // defaults to a lone root folder
	WriteObserver memory.WriteObserver // optional
	Observer      docsysSvc.OperationObserver
	Notifications docsysSvc.NotificationFeed // defaults to an in-memory feed
}

// Library owns one session's node store and the services operating on it
type Library struct {
	Store         docsysRepo.NodeStore
	Navigation    docsysSvc.NavigationService
	Search        docsysSvc.SearchService
	Folders       docsysSvc.FolderService
	Ingest        docsysSvc.IngestService
	Tree          docsysSvc.TreeService
	Notifications docsysSvc.NotificationFeed
	IDs           *IDGenerator
}

// SetupLibrary hydrates the store from the slot, seeding and persisting a
// default tree on first run, and wires the services around it
func SetupLibrary(ctx context.Context, slot docsysRepo.KeyValueStore, opts LibraryOptions, logger *slog.Logger) (*Library, error) {
	if opts.SlotKey == "" {
		opts.SlotKey = config.DefaultSlotKey
	}
	if opts.Notifications == nil {
		opts.Notifications = NewNotificationFeed(config.MaxNotificationBacklog, logger)
	}

	ids := NewIDGenerator()
	persister := NewSlotPersister(slot, opts.SlotKey)

	tree, found, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document tree: %w", err)
	}
	if !found {
		tree, err = seedTree(opts.Seed, ids)
		if err != nil {
			return nil, fmt.Errorf("seed document tree: %w", err)
		}
		if err := persister.Save(ctx, tree); err != nil {
			return nil, fmt.Errorf("persist seeded tree: %w", err)
		}
		logger.Info("seeded document tree", "slot", opts.SlotKey, "nodes", tree.Len())
	} else {
		logger.Info("loaded document tree",
			"slot", opts.SlotKey,
			"nodes", tree.Len(),
			"detached", len(tree.Detached()),
		)
	}

	store := memory.NewNodeStore(tree, persister, logger)
	if opts.WriteObserver != nil {
		store.WithObserver(opts.WriteObserver)
	}

	nav := NewNavigationService(store, logger)
	return &Library{
		Store:         store,
		Navigation:    nav,
		Search:        NewSearchService(store, opts.Observer, logger),
		Folders:       NewFolderService(store, nav, ids, opts.Notifications, opts.Observer, logger),
		Ingest:        NewIngestService(store, nav, ids, opts.Notifications, opts.Observer, logger),
		Tree:          NewTreeService(store, logger),
		Notifications: opts.Notifications,
		IDs:           ids,
	}, nil
}

func seedTree(seed Seeder, ids *IDGenerator) (*models.Tree, error) {
	if seed == nil {
		return models.NewTree(models.NewFolder(ids.New(models.KindFolder, 0), DefaultRootName, nil)), nil
	}
	tree, err := seed(ids)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}
