package handler

import (
	"net/http"

	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	"kbportal/internal/httputil"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	store docsysRepo.NodeStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store docsysRepo.NodeStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthCheck reports the process as alive along with the node count
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	nodes := 0
	err := h.store.View(r.Context(), func(tree *models.Tree) error {
		nodes = tree.Len()
		return nil
	})
	if err != nil {
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  nodes,
	})
}
