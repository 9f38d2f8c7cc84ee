package docsystem

import (
	"context"

	"kbportal/internal/domain/models/docsystem"
)

// Notifier receives user-facing notifications (toasts) emitted by the core
type Notifier interface {
	Notify(ctx context.Context, kind docsystem.NotificationKind, message string)
}

// NotificationFeed buffers notifications for hosts that poll for them
type NotificationFeed interface {
	Notifier

	// Since returns notifications with a sequence number greater than seq
	Since(seq uint64) []docsystem.Notification
}
