package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/handler/sse"
	"kbportal/internal/httputil"
)

// SSE event names written by Upload
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// UploadHandler streams ingestion runs over Server-Sent Events
type UploadHandler struct {
	ingest docsysSvc.IngestService
	config *sse.Config
	logger *slog.Logger
}

// NewUploadHandler creates a new upload handler. A nil config uses sse.DefaultConfig.
func NewUploadHandler(ingest docsysSvc.IngestService, config *sse.Config, logger *slog.Logger) *UploadHandler {
	if config == nil {
		config = sse.DefaultConfig()
	}
	return &UploadHandler{
		ingest: ingest,
		config: config,
		logger: logger,
	}
}

// Upload validates the batch, then streams one progress event per created
// file followed by a complete event carrying the summary. Validation errors
// and a busy ingester are answered with a plain problem response before the
// stream opens. A client disconnect stops the run between items.
// POST /api/kb/uploads
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.IngestRequest
	if !parseBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	run, err := h.ingest.Ingest(ctx, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	defer run.Close()

	stream, err := sse.NewWriter(w)
	if err != nil {
		h.logger.Error("upload stream unavailable", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	keepAlive.Start(stream, h.logger)
	defer keepAlive.Stop()

	for progress, err := range run.All(ctx) {
		if err != nil {
			h.logger.Warn("upload run stopped",
				"user_id", httputil.GetUserID(r),
				"error", err,
			)
			stream.WriteEvent(EventError, map[string]string{"message": err.Error()})
			break
		}
		if err := stream.WriteEvent(EventProgress, progress); err != nil {
			h.logger.Info("client disconnected during upload", "error", err)
			return
		}
	}

	summary := run.Summary()
	if err := stream.WriteEvent(EventComplete, summary); err != nil {
		h.logger.Info("client disconnected before upload summary", "error", err)
	}
}
