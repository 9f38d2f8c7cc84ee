package docsystem

// UntitledName replaces blank descriptor names during ingestion
const UntitledName = "untitled"

// Descriptor is a file handed over by the host's file picker
type Descriptor struct {
	Name              string `json:"name"`
	SizeBytes         int64  `json:"size_bytes"`
	ProvidedExtension string `json:"extension,omitempty"`
}

// Progress is emitted once per ingested descriptor
type Progress struct {
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	NodeID    string `json:"node_id"`
	Name      string `json:"name"`
}

// IngestSummary is the outcome of an ingestion run
type IngestSummary struct {
	Processed int      `json:"processed"`
	Total     int      `json:"total"`
	FolderID  string   `json:"folder_id"`
	NodeIDs   []string `json:"node_ids"`
	Cancelled bool     `json:"cancelled"`
}
