package handler

import (
	"log/slog"
	"net/http"

	models "kbportal/internal/domain/models/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/httputil"
)

// BrowseHandler serves the read side of the portal: the open folder, its
// breadcrumb, folder listings and search
type BrowseHandler struct {
	navigation docsysSvc.NavigationService
	search     docsysSvc.SearchService
	logger     *slog.Logger
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(navigation docsysSvc.NavigationService, search docsysSvc.SearchService, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{
		navigation: navigation,
		search:     search,
		logger:     logger,
	}
}

// BrowseResponse is what the main panel renders. With a query the items
// are search results from the whole store instead of the folder listing.
type BrowseResponse struct {
	Folder     *models.Node   `json:"folder"`
	Breadcrumb []models.Crumb `json:"breadcrumb"`
	Query      string         `json:"query,omitempty"`
	Items      []*models.Node `json:"items"`
}

// SearchResponse carries search results
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []*models.Node `json:"results"`
}

// EnterRequest selects the folder to open
type EnterRequest struct {
	FolderID string `json:"folder_id"`
}

// Browse returns the current folder listing, or search results when q is present
// GET /api/kb/browse?q=
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	location, err := h.navigation.Current(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := BrowseResponse{
		Folder:     location.Folder,
		Breadcrumb: location.Breadcrumb,
		Query:      r.URL.Query().Get("q"),
	}
	// An absent q means no active query; a present but blank q searches
	// and finds nothing.
	if r.URL.Query().Has("q") {
		resp.Items, err = h.search.Search(ctx, resp.Query)
	} else {
		resp.Items, err = h.navigation.ListCurrent(ctx)
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// ListFolder lists any folder without moving there
// GET /api/kb/folders/{id}
func (h *BrowseHandler) ListFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	items, err := h.navigation.ListFolder(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Enter opens a folder
// POST /api/kb/navigation/enter
func (h *BrowseHandler) Enter(w http.ResponseWriter, r *http.Request) {
	var req EnterRequest
	if !parseBody(w, r, &req) {
		return
	}
	if req.FolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	location, err := h.navigation.Enter(r.Context(), req.FolderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, location)
}

// Up moves to the parent folder; at the root it returns the root unchanged
// POST /api/kb/navigation/up
func (h *BrowseHandler) Up(w http.ResponseWriter, r *http.Request) {
	location, err := h.navigation.Up(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, location)
}

// Breadcrumb returns the path from the root to the current folder
// GET /api/kb/breadcrumb
func (h *BrowseHandler) Breadcrumb(w http.ResponseWriter, r *http.Request) {
	crumbs, err := h.navigation.Breadcrumb(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, crumbs)
}

// Search matches names across the whole store
// GET /api/kb/search?q=
func (h *BrowseHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.search.Search(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, SearchResponse{Query: query, Results: results})
}
