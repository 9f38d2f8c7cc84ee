package docsystem

import (
	"context"
	"iter"

	"kbportal/internal/domain/models/docsystem"
)

// IngestService turns batches of file descriptors into file nodes
type IngestService interface {
	// Ingest validates the batch and starts a run. Only one run may be active;
	// starting another returns an InvalidOperationError.
	Ingest(ctx context.Context, req *IngestRequest) (IngestRun, error)

	// Active reports whether a run is in flight
	Active() bool
}

// IngestRequest represents a batch upload request
type IngestRequest struct {
	FolderID *string                `json:"folder_id,omitempty"` // nil = current folder
	Files    []docsystem.Descriptor `json:"files"`
}

// IngestRun is a lazy, finite, non-restartable sequence of progress events.
// Each step materializes exactly one descriptor.
type IngestRun interface {
	// Next processes the next descriptor. ok is false once the run is finished.
	Next(ctx context.Context) (progress docsystem.Progress, ok bool, err error)

	// All iterates the remaining progress events
	All(ctx context.Context) iter.Seq2[docsystem.Progress, error]

	// Drain runs the remaining items and returns the summary
	Drain(ctx context.Context) (*docsystem.IngestSummary, error)

	// Close stops the run between items. Already processed items stay committed.
	Close() error

	// Summary reports the state so far
	Summary() docsystem.IngestSummary
}
