package docsystem

import (
	"context"
	"encoding/json"
	"fmt"

	models "kbportal/internal/domain/models/docsystem"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
)

// nodeRecord is the persisted shape of one node. The snapshot is a flat
// JSON object of records keyed by id.
type nodeRecord struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         models.NodeKind `json:"kind"`
	ParentID     *string         `json:"parentId"`
	ChildIDs     []string        `json:"childIds,omitempty"`
	Extension    string          `json:"extension,omitempty"`
	SizeLabel    string          `json:"sizeLabel,omitempty"`
	ModifiedDate string          `json:"modifiedDate,omitempty"`
}

// slotPersister saves whole-tree snapshots into one slot of a KeyValueStore
type slotPersister struct {
	slot docsysRepo.KeyValueStore
	key  string
}

// NewSlotPersister creates a persister writing to key
func NewSlotPersister(slot docsysRepo.KeyValueStore, key string) docsysRepo.TreePersister {
	return &slotPersister{slot: slot, key: key}
}

// Save encodes and writes the full snapshot
func (p *slotPersister) Save(ctx context.Context, tree *models.Tree) error {
	data, err := EncodeTree(tree)
	if err != nil {
		return err
	}
	if err := p.slot.Set(ctx, p.key, data); err != nil {
		return fmt.Errorf("write slot %s: %w", p.key, err)
	}
	return nil
}

// Load reads and decodes the snapshot; found is false when the slot is empty
func (p *slotPersister) Load(ctx context.Context) (*models.Tree, bool, error) {
	data, found, err := p.slot.Get(ctx, p.key)
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", p.key, err)
	}
	if !found || len(data) == 0 {
		return nil, false, nil
	}
	tree, err := DecodeTree(data)
	if err != nil {
		return nil, false, err
	}
	return tree, true, nil
}

// EncodeTree serializes every node of tree. Map keys are emitted sorted, so
// equal trees encode to equal bytes.
func EncodeTree(tree *models.Tree) ([]byte, error) {
	records := make(map[string]nodeRecord, tree.Len())
	for id, n := range tree.Nodes {
		rec := nodeRecord{
			ID:       n.ID,
			Name:     n.Name,
			Kind:     n.Kind,
			ParentID: n.ParentID,
		}
		switch {
		case n.Folder != nil:
			rec.ChildIDs = n.Folder.ChildIDs
		case n.File != nil:
			rec.Extension = n.File.Extension
			rec.SizeLabel = n.File.SizeLabel
			rec.ModifiedDate = n.File.ModifiedDate
		}
		records[id] = rec
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeTree parses a snapshot and checks the tree invariants
func DecodeTree(data []byte) (*models.Tree, error) {
	var records map[string]nodeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	tree := &models.Tree{Nodes: make(map[string]*models.Node, len(records))}
	for key, rec := range records {
		if rec.ID == "" {
			rec.ID = key
		}
		var n *models.Node
		switch rec.Kind {
		case models.KindFolder:
			n = models.NewFolder(rec.ID, rec.Name, rec.ParentID)
			if rec.ChildIDs != nil {
				n.Folder.ChildIDs = rec.ChildIDs
			}
		case models.KindFile:
			n = models.NewFile(rec.ID, rec.Name, rec.ParentID, models.FileData{
				Extension:    rec.Extension,
				SizeLabel:    rec.SizeLabel,
				ModifiedDate: rec.ModifiedDate,
			})
		default:
			return nil, fmt.Errorf("decode snapshot: node %q has unknown kind %q", key, rec.Kind)
		}

		if n.ParentID == nil {
			if tree.RootID != "" {
				return nil, fmt.Errorf("decode snapshot: multiple roots (%q, %q)", tree.RootID, key)
			}
			tree.RootID = key
		}
		tree.Nodes[key] = n
	}

	if tree.RootID == "" {
		return nil, fmt.Errorf("decode snapshot: no root folder")
	}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return tree, nil
}
