package config

const (
	// MaxNodeNameLength is the maximum length for folder and file names.
	// Matches the VARCHAR(255) limit most hosts put on display names.
	MaxNodeNameLength = 255

	// MaxUploadBatchSize caps the number of descriptors in one ingestion run.
	MaxUploadBatchSize = 500

	// MaxSearchQueryLength bounds search input; longer queries cannot match
	// any valid name anyway.
	MaxSearchQueryLength = MaxNodeNameLength

	// MaxNotificationBacklog is how many notifications the in-memory feed keeps.
	MaxNotificationBacklog = 200

	// MaxLogFiles is how many timestamped server logs SetupLogFile keeps.
	MaxLogFiles = 10
)

// DefaultSlotKey is the slot holding the serialized document tree
const DefaultSlotKey = "kb.documents"
