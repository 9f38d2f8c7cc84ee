package docsystem

import "time"

// NotificationKind mirrors the toast variants of the portal UI
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a discrete user-facing event record
type Notification struct {
	Seq     uint64           `json:"seq"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}
