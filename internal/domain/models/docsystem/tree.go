package docsystem

import (
	"fmt"
	"sort"
)

// Tree is the complete node store state: every node keyed by id plus the
// designated root. It is the unit of persistence (a full snapshot, never a diff).
type Tree struct {
	RootID string
	Nodes  map[string]*Node
}

// NewTree creates a tree holding only the given root folder
func NewTree(root *Node) *Tree {
	return &Tree{
		RootID: root.ID,
		Nodes:  map[string]*Node{root.ID: root},
	}
}

// Root returns the root node
func (t *Tree) Root() *Node {
	return t.Nodes[t.RootID]
}

// Get returns the node with the given id
func (t *Tree) Get(id string) (*Node, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Len returns the number of node records
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Clone returns a deep copy of the tree
func (t *Tree) Clone() *Tree {
	nodes := make(map[string]*Node, len(t.Nodes))
	for id, n := range t.Nodes {
		nodes[id] = n.Clone()
	}
	return &Tree{RootID: t.RootID, Nodes: nodes}
}

// IsAttached reports whether id exists and its parent chain reaches the root.
// Nodes left behind by a non-cascading delete are detached.
func (t *Tree) IsAttached(id string) bool {
	current, ok := t.Nodes[id]
	for steps := 0; ok && steps <= len(t.Nodes); steps++ {
		if current.ID == t.RootID {
			return true
		}
		if current.ParentID == nil {
			return false
		}
		current, ok = t.Nodes[*current.ParentID]
	}
	return false
}

// Detached returns the ids of nodes whose parent chain no longer reaches the
// root, sorted for stable output.
func (t *Tree) Detached() []string {
	var ids []string
	for id := range t.Nodes {
		if !t.IsAttached(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Subtree returns id followed by all of its descendants (depth-first, child order)
func (t *Tree) Subtree(id string) []string {
	var out []string
	var walk func(string)
	walk = func(current string) {
		n, ok := t.Nodes[current]
		if !ok {
			return
		}
		out = append(out, current)
		for _, child := range n.ChildIDs() {
			walk(child)
		}
	}
	walk(id)
	return out
}

// Depth returns the number of parent links between id and the root (root = 0)
func (t *Tree) Depth(id string) (int, error) {
	depth := 0
	current, ok := t.Nodes[id]
	for ok && current.ParentID != nil {
		depth++
		if depth > len(t.Nodes) {
			return 0, fmt.Errorf("cycle detected at node %s", id)
		}
		current, ok = t.Nodes[*current.ParentID]
	}
	if !ok {
		return 0, fmt.Errorf("node %s is not attached to the root", id)
	}
	return depth, nil
}

// Validate checks the structural invariants of the store:
//   - exactly one root, which is a folder and the only node without a parent
//   - every child entry refers to an existing node whose parent is the owner
//   - every node whose parent exists is listed by that parent exactly once
//   - only folders carry children; payloads match kinds
//   - no parent cycles
//
// Nodes whose recorded parent no longer exists (left by a non-cascading
// delete) are tolerated.
func (t *Tree) Validate() error {
	root, ok := t.Nodes[t.RootID]
	if !ok {
		return fmt.Errorf("root %q missing", t.RootID)
	}
	if !root.IsFolder() || root.ParentID != nil {
		return fmt.Errorf("root %q must be a folder without a parent", t.RootID)
	}

	for id, n := range t.Nodes {
		if n.ID != id {
			return fmt.Errorf("node keyed %q carries id %q", id, n.ID)
		}
		switch n.Kind {
		case KindFolder:
			if n.Folder == nil || n.File != nil {
				return fmt.Errorf("folder %q has a mismatched payload", id)
			}
		case KindFile:
			if n.File == nil || n.Folder != nil {
				return fmt.Errorf("file %q has a mismatched payload", id)
			}
		default:
			return fmt.Errorf("node %q has unknown kind %q", id, n.Kind)
		}
		if n.ParentID == nil {
			if id != t.RootID {
				return fmt.Errorf("node %q has no parent but is not the root", id)
			}
			continue
		}
		parent, ok := t.Nodes[*n.ParentID]
		if !ok {
			continue
		}
		if !parent.IsFolder() {
			return fmt.Errorf("node %q has file %q as parent", id, parent.ID)
		}
		count := 0
		for _, c := range parent.ChildIDs() {
			if c == id {
				count++
			}
		}
		if count != 1 {
			return fmt.Errorf("node %q listed %d times by parent %q", id, count, parent.ID)
		}
	}

	for id, n := range t.Nodes {
		for _, c := range n.ChildIDs() {
			child, ok := t.Nodes[c]
			if !ok {
				return fmt.Errorf("folder %q lists missing child %q", id, c)
			}
			if child.Parent() != id {
				return fmt.Errorf("folder %q lists %q whose parent is %q", id, c, child.Parent())
			}
		}
	}

	for id := range t.Nodes {
		current := t.Nodes[id]
		for steps := 0; current.ParentID != nil; steps++ {
			if steps > len(t.Nodes) {
				return fmt.Errorf("parent cycle through node %q", id)
			}
			next, ok := t.Nodes[*current.ParentID]
			if !ok {
				break
			}
			current = next
		}
	}

	return nil
}

// TreeNode represents a folder in the nested tree view with its children
type TreeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Kind     NodeKind    `json:"kind"`
	File     *FileData   `json:"file,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Nested builds the nested view of the attached tree, children in insertion order
func (t *Tree) Nested() *TreeNode {
	var build func(n *Node, depth int) *TreeNode
	build = func(n *Node, depth int) *TreeNode {
		view := &TreeNode{ID: n.ID, Name: n.Name, Kind: n.Kind, File: n.File}
		if !n.IsFolder() || depth > len(t.Nodes) {
			return view
		}
		view.Children = []*TreeNode{}
		for _, c := range n.ChildIDs() {
			if child, ok := t.Nodes[c]; ok {
				view.Children = append(view.Children, build(child, depth+1))
			}
		}
		return view
	}
	return build(t.Root(), 0)
}
