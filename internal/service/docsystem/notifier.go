package docsystem

import (
	"context"
	"log/slog"
	"sync"
	"time"

	models "kbportal/internal/domain/models/docsystem"
	docsysSvc "kbportal/internal/domain/services/docsystem"
)

// notificationFeed keeps the most recent notifications in memory so hosts
// can poll them by sequence number. Every notification is also logged.
type notificationFeed struct {
	mu      sync.Mutex
	seq     uint64
	items   []models.Notification
	backlog int
	now     func() time.Time
	logger  *slog.Logger
}

// NewNotificationFeed creates a feed retaining at most backlog notifications
func NewNotificationFeed(backlog int, logger *slog.Logger) docsysSvc.NotificationFeed {
	return &notificationFeed{
		backlog: backlog,
		now:     time.Now,
		logger:  logger,
	}
}

func (f *notificationFeed) Notify(ctx context.Context, kind models.NotificationKind, message string) {
	f.mu.Lock()
	f.seq++
	n := models.Notification{
		Seq:     f.seq,
		Kind:    kind,
		Message: message,
		At:      f.now().UTC(),
	}
	f.items = append(f.items, n)
	if over := len(f.items) - f.backlog; f.backlog > 0 && over > 0 {
		f.items = append(f.items[:0:0], f.items[over:]...)
	}
	f.mu.Unlock()

	level := slog.LevelInfo
	if kind == models.NotificationError {
		level = slog.LevelWarn
	}
	f.logger.Log(ctx, level, "notification",
		"seq", n.Seq,
		"kind", n.Kind,
		"message", n.Message,
	)
}

// Since returns the retained notifications newer than seq, oldest first
func (f *notificationFeed) Since(seq uint64) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Notification{}
	for _, n := range f.items {
		if n.Seq > seq {
			out = append(out, n)
		}
	}
	return out
}
