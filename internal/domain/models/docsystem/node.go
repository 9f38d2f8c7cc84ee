package docsystem

import "slices"

// NodeKind tags which variant payload a Node carries
type NodeKind string

const (
	KindFolder NodeKind = "folder"
	KindFile   NodeKind = "file"
)

// Valid reports whether k is one of the known kinds
func (k NodeKind) Valid() bool {
	return k == KindFolder || k == KindFile
}

// FolderData is the folder-only payload. ChildIDs keeps insertion order;
// display order is derived at read time and never written back.
type FolderData struct {
	ChildIDs []string `json:"child_ids"`
}

// FileData is the file-only payload
type FileData struct {
	Extension    string `json:"extension"`     // lower-cased, no leading dot
	SizeLabel    string `json:"size_label"`    // e.g. "2.5 MB"
	ModifiedDate string `json:"modified_date"` // YYYY-MM-DD
}

// Node is a folder or a file in the knowledge base tree.
// Exactly one of Folder or File is set, matching Kind.
type Node struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	ParentID *string     `json:"parent_id"` // nil only for the root
	Kind     NodeKind    `json:"kind"`
	Folder   *FolderData `json:"folder,omitempty"`
	File     *FileData   `json:"file,omitempty"`
}

// NewFolder builds a folder node with an empty child list
func NewFolder(id, name string, parentID *string) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		ParentID: parentID,
		Kind:     KindFolder,
		Folder:   &FolderData{ChildIDs: []string{}},
	}
}

// NewFile builds a file node
func NewFile(id, name string, parentID *string, data FileData) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		ParentID: parentID,
		Kind:     KindFile,
		File:     &data,
	}
}

// IsFolder reports whether the node is a folder
func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// IsRoot reports whether the node has no parent
func (n *Node) IsRoot() bool { return n.ParentID == nil }

// Parent returns the parent id, or "" for the root
func (n *Node) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// ChildIDs returns the folder's children in insertion order (nil for files)
func (n *Node) ChildIDs() []string {
	if n.Folder == nil {
		return nil
	}
	return n.Folder.ChildIDs
}

// AppendChild adds id to the end of the folder's child list
func (n *Node) AppendChild(id string) {
	n.Folder.ChildIDs = append(n.Folder.ChildIDs, id)
}

// RemoveChild drops every occurrence of id from the folder's child list.
// Returns false when id was not listed.
func (n *Node) RemoveChild(id string) bool {
	if n.Folder == nil {
		return false
	}
	before := len(n.Folder.ChildIDs)
	n.Folder.ChildIDs = slices.DeleteFunc(n.Folder.ChildIDs, func(c string) bool { return c == id })
	return len(n.Folder.ChildIDs) != before
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:   n.ID,
		Name: n.Name,
		Kind: n.Kind,
	}
	if n.ParentID != nil {
		parent := *n.ParentID
		c.ParentID = &parent
	}
	if n.Folder != nil {
		children := make([]string, len(n.Folder.ChildIDs))
		copy(children, n.Folder.ChildIDs)
		c.Folder = &FolderData{ChildIDs: children}
	}
	if n.File != nil {
		file := *n.File
		c.File = &file
	}
	return c
}

// StringPtr returns a pointer to s (helper for ParentID literals)
func StringPtr(s string) *string {
	return &s
}
