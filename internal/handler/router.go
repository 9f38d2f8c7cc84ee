package handler

import (
	"log/slog"
	"net/http"

	"kbportal/internal/handler/sse"
	serviceDocsys "kbportal/internal/service/docsystem"
)

// RouterOptions carries the optional pieces of the route table
type RouterOptions struct {
	Metrics http.Handler // mounted at GET /metrics when set
	SSE     *sse.Config
}

// NewRouter registers every portal route on a fresh ServeMux
// (Go 1.22 method and wildcard patterns)
func NewRouter(lib *serviceDocsys.Library, opts RouterOptions, logger *slog.Logger) *http.ServeMux {
	health := NewHealthHandler(lib.Store)
	browse := NewBrowseHandler(lib.Navigation, lib.Search, logger)
	folders := NewFolderHandler(lib.Folders, logger)
	uploads := NewUploadHandler(lib.Ingest, opts.SSE, logger)
	notifications := NewNotificationHandler(lib.Notifications)
	tree := NewTreeHandler(lib.Tree, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.HealthCheck)

	// Read side
	mux.HandleFunc("GET /api/kb/browse", browse.Browse)
	mux.HandleFunc("GET /api/kb/folders/{id}", browse.ListFolder)
	mux.HandleFunc("GET /api/kb/breadcrumb", browse.Breadcrumb)
	mux.HandleFunc("GET /api/kb/search", browse.Search)
	mux.HandleFunc("GET /api/kb/tree", tree.GetTree)
	mux.HandleFunc("GET /api/kb/notifications", notifications.List)

	// Navigation
	mux.HandleFunc("POST /api/kb/navigation/enter", browse.Enter)
	mux.HandleFunc("POST /api/kb/navigation/up", browse.Up)

	// Mutations
	mux.HandleFunc("POST /api/kb/folders", folders.CreateFolder)
	mux.HandleFunc("PATCH /api/kb/nodes/{id}", folders.RenameNode)
	mux.HandleFunc("DELETE /api/kb/nodes/{id}", folders.DeleteNode)
	mux.HandleFunc("POST /api/kb/uploads", uploads.Upload)

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	return mux
}
