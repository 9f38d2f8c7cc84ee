package handler

import (
	"net/http"

	docsysSvc "kbportal/internal/domain/services/docsystem"
	"kbportal/internal/httputil"
)

// NotificationHandler exposes the toast feed to polling clients
type NotificationHandler struct {
	feed docsysSvc.NotificationFeed
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(feed docsysSvc.NotificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List returns notifications newer than since
// GET /api/kb/notifications?since=
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	since, err := httputil.QueryUint(r, "since")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, h.feed.Since(since))
}
