package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/httputil"
)

// FolderHandler handles the mutating node requests
type FolderHandler struct {
	folderService docsysSvc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService docsysSvc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// RenameNodeRequest is the PATCH body; name is the only patchable field
type RenameNodeRequest struct {
	Name httputil.OptionalString `json:"name"`
}

// CreateFolder creates an empty folder under parent_id, or the open folder
// POST /api/kb/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateFolderRequest
	if !parseBody(w, r, &req) {
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// RenameNode renames a folder or file in place
// PATCH /api/kb/nodes/{id}
func (h *FolderHandler) RenameNode(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Node ID")
	if !ok {
		return
	}

	var req RenameNodeRequest
	if !parseBody(w, r, &req) {
		return
	}
	if !req.Name.Set() {
		httputil.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	node, err := h.folderService.Rename(r.Context(), id, &docsysSvc.RenameRequest{Name: *req.Name.Value})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

// DeleteNode removes a node. With recursive=true its whole subtree goes
// too; otherwise descendants are left detached.
// DELETE /api/kb/nodes/{id}?recursive=true
func (h *FolderHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Node ID")
	if !ok {
		return
	}

	recursive, err := httputil.QueryBool(r, "recursive")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result *docsysSvc.DeleteResult
	if recursive {
		result, err = h.folderService.DeleteRecursive(r.Context(), id)
	} else {
		result, err = h.folderService.Delete(r.Context(), id)
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
