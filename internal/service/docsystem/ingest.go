package docsystem

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kbportal/internal/config"
	"kbportal/internal/domain"
	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

// ingestService implements IngestService. At most one run is active at a time.
type ingestService struct {
	store    docsysRepo.NodeStore
	nav      docsysSvc.NavigationService
	ids      *IDGenerator
	notifier docsysSvc.Notifier
	observer docsysSvc.OperationObserver
	logger   *slog.Logger
	active   atomic.Bool
}

// NewIngestService creates a new ingestion service
func NewIngestService(
	store docsysRepo.NodeStore,
	nav docsysSvc.NavigationService,
	ids *IDGenerator,
	notifier docsysSvc.Notifier,
	observer docsysSvc.OperationObserver,
	logger *slog.Logger,
) docsysSvc.IngestService {
	return &ingestService{
		store:    store,
		nav:      nav,
		ids:      ids,
		notifier: notifier,
		observer: orNoop(observer),
		logger:   logger,
	}
}

func (s *ingestService) Active() bool {
	return s.active.Load()
}

// Ingest validates the batch and claims the single run slot. Nothing is
// written until the returned run is advanced.
func (s *ingestService) Ingest(ctx context.Context, req *docsysSvc.IngestRequest) (docsysSvc.IngestRun, error) {
	if err := s.validateIngestRequest(req); err != nil {
		message := "Upload rejected: " + err.Error()
		if len(req.Files) == 0 {
			message = "No files selected for upload"
		}
		s.notifier.Notify(ctx, models.NotificationError, message)
		s.observer.ObserveOperation("ingest", err)
		return nil, err
	}

	if !s.active.CompareAndSwap(false, true) {
		err := &domain.InvalidOperationError{Message: "an upload is already in progress"}
		s.observer.ObserveOperation("ingest", err)
		return nil, err
	}

	folderID := s.nav.CurrentFolderID(ctx)
	if req.FolderID != nil && *req.FolderID != "" {
		folderID = *req.FolderID
	}

	folder, err := s.store.Get(ctx, folderID)
	if err == nil && !folder.IsFolder() {
		err = &domain.InvalidOperationError{Message: fmt.Sprintf("cannot upload into file %q", folder.Name)}
	}
	if err != nil {
		s.active.Store(false)
		s.observer.ObserveOperation("ingest", err)
		return nil, err
	}

	s.logger.Info("upload started",
		"folder_id", folderID,
		"files", len(req.Files),
	)

	return &ingestRun{
		svc:      s,
		folderID: folderID,
		files:    append([]models.Descriptor(nil), req.Files...),
		nodeIDs:  make([]string, 0, len(req.Files)),
	}, nil
}

func (s *ingestService) validateIngestRequest(req *docsysSvc.IngestRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Files,
			validation.Required.Error("no files selected"),
			validation.Length(1, config.MaxUploadBatchSize),
		),
	)
	return asValidationError(err)
}

// ingestRun materializes one descriptor per Next call
type ingestRun struct {
	svc      *ingestService
	folderID string
	files    []models.Descriptor

	mu        sync.Mutex
	next      int
	nodeIDs   []string
	done      bool
	cancelled bool
}

func (r *ingestRun) Next(ctx context.Context) (models.Progress, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return models.Progress{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		r.finish(ctx, true)
		return models.Progress{}, false, err
	}
	if r.next >= len(r.files) {
		r.finish(ctx, false)
		return models.Progress{}, false, nil
	}

	index := r.next
	node := r.svc.buildFile(r.files[index], index, r.folderID)

	err := r.svc.store.Update(ctx, func(tx docsysRepo.NodeTx) error {
		parent, err := tx.Get(r.folderID)
		if err != nil {
			return err
		}
		if !parent.IsFolder() {
			return &domain.InvalidOperationError{Message: fmt.Sprintf("upload target %q is not a folder", parent.Name)}
		}
		if err := tx.Insert(node); err != nil {
			return err
		}
		parent.AppendChild(node.ID)
		return nil
	})
	if err != nil {
		r.svc.logger.Error("upload item failed, stopping run",
			"folder_id", r.folderID,
			"index", index,
			"name", node.Name,
			"error", err,
		)
		r.finish(ctx, true)
		return models.Progress{}, false, err
	}

	r.next++
	r.nodeIDs = append(r.nodeIDs, node.ID)
	r.svc.observer.ObserveIngested()

	progress := models.Progress{
		Processed: r.next,
		Total:     len(r.files),
		NodeID:    node.ID,
		Name:      node.Name,
	}
	if r.next == len(r.files) {
		r.finish(ctx, false)
	}
	return progress, true, nil
}

func (r *ingestRun) All(ctx context.Context) iter.Seq2[models.Progress, error] {
	return func(yield func(models.Progress, error) bool) {
		for {
			progress, ok, err := r.Next(ctx)
			if err != nil {
				yield(models.Progress{}, err)
				return
			}
			if !ok || !yield(progress, nil) {
				return
			}
		}
	}
}

func (r *ingestRun) Drain(ctx context.Context) (*models.IngestSummary, error) {
	for _, err := range r.All(ctx) {
		if err != nil {
			summary := r.Summary()
			return &summary, err
		}
	}
	summary := r.Summary()
	return &summary, nil
}

func (r *ingestRun) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.done {
		r.finish(context.Background(), true)
	}
	return nil
}

func (r *ingestRun) Summary() models.IngestSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.IngestSummary{
		Processed: r.next,
		Total:     len(r.files),
		FolderID:  r.folderID,
		NodeIDs:   append([]string(nil), r.nodeIDs...),
		Cancelled: r.cancelled,
	}
}

// finish releases the run slot and reports the outcome. Callers hold r.mu.
func (r *ingestRun) finish(ctx context.Context, cancelled bool) {
	r.done = true
	r.cancelled = cancelled
	r.svc.active.Store(false)

	var err error
	if cancelled {
		err = fmt.Errorf("upload stopped after %d of %d file(s)", r.next, len(r.files))
	}
	r.svc.observer.ObserveOperation("ingest", err)

	r.svc.logger.Info("upload finished",
		"folder_id", r.folderID,
		"processed", r.next,
		"total", len(r.files),
		"cancelled", cancelled,
	)

	// A cancelled ctx must not swallow the notification
	ctx = context.WithoutCancel(ctx)
	if cancelled {
		r.svc.notifier.Notify(ctx, models.NotificationError,
			fmt.Sprintf("Upload stopped: %d of %d file(s) uploaded", r.next, len(r.files)))
		return
	}
	r.svc.notifier.Notify(ctx, models.NotificationSuccess, fmt.Sprintf("%d file(s) uploaded", r.next))
}

// buildFile turns a descriptor into a file node. Bad descriptors never fail:
// a blank name falls back to "untitled".
func (s *ingestService) buildFile(d models.Descriptor, index int, folderID string) *models.Node {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = models.UntitledName
	}
	extension := DeriveExtension(name, d.ProvidedExtension)
	if runes := []rune(name); len(runes) > config.MaxNodeNameLength {
		name = string(runes[:config.MaxNodeNameLength])
	}

	return models.NewFile(s.ids.New(models.KindFile, index), name, models.StringPtr(folderID), models.FileData{
		Extension:    extension,
		SizeLabel:    SizeLabel(d.SizeBytes),
		ModifiedDate: s.ids.Today(),
	})
}
