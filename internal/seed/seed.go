// Package seed builds the demo document tree written on first run.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	models "kbportal/internal/domain/models/docsystem"
	"kbportal/internal/service/docsystem"
)

//go:embed default_tree.yaml
var defaultTreeYAML []byte

// Layout is the YAML shape of a seed tree
type Layout struct {
	Root     string  `yaml:"root"`
	Children []Entry `yaml:"children"`
}

// Entry is one folder or file. Exactly one of Folder or File is set.
type Entry struct {
	Folder    string  `yaml:"folder,omitempty"`
	File      string  `yaml:"file,omitempty"`
	SizeBytes int64   `yaml:"size_bytes,omitempty"`
	Extension string  `yaml:"extension,omitempty"`
	Modified  string  `yaml:"modified,omitempty"` // YYYY-MM-DD, defaults to today
	Children  []Entry `yaml:"children,omitempty"`
}

// DefaultTree builds the embedded demo tree
func DefaultTree(ids *docsystem.IDGenerator) (*models.Tree, error) {
	return FromYAML(defaultTreeYAML, ids)
}

// FromFile builds a tree from a YAML layout on disk
func FromFile(path string) docsystem.Seeder {
	return func(ids *docsystem.IDGenerator) (*models.Tree, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed layout: %w", err)
		}
		return FromYAML(data, ids)
	}
}

// FromYAML parses a layout and allocates fresh ids for every node
func FromYAML(data []byte, ids *docsystem.IDGenerator) (*models.Tree, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse seed layout: %w", err)
	}

	rootName := strings.TrimSpace(layout.Root)
	if rootName == "" {
		rootName = docsystem.DefaultRootName
	}

	b := &builder{ids: ids}
	root := models.NewFolder(b.nextID(models.KindFolder), rootName, nil)
	b.tree = models.NewTree(root)
	if err := b.addChildren(root, layout.Children); err != nil {
		return nil, err
	}
	return b.tree, nil
}

type builder struct {
	ids   *docsystem.IDGenerator
	tree  *models.Tree
	index int
}

// nextID uses a running index so ids from one millisecond never collide
func (b *builder) nextID(kind models.NodeKind) string {
	id := b.ids.New(kind, b.index)
	b.index++
	return id
}

func (b *builder) addChildren(parent *models.Node, entries []Entry) error {
	for _, e := range entries {
		var n *models.Node
		switch {
		case e.Folder != "" && e.File != "":
			return fmt.Errorf("seed entry %q is both a folder and a file", e.Folder)
		case e.Folder != "":
			n = models.NewFolder(b.nextID(models.KindFolder), e.Folder, models.StringPtr(parent.ID))
		case e.File != "":
			if len(e.Children) > 0 {
				return fmt.Errorf("seed file %q cannot have children", e.File)
			}
			modified := e.Modified
			if modified == "" {
				modified = b.ids.Today()
			}
			n = models.NewFile(b.nextID(models.KindFile), e.File, models.StringPtr(parent.ID), models.FileData{
				Extension:    docsystem.DeriveExtension(e.File, e.Extension),
				SizeLabel:    docsystem.SizeLabel(e.SizeBytes),
				ModifiedDate: modified,
			})
		default:
			return fmt.Errorf("seed entry under %q has neither a folder nor a file name", parent.Name)
		}

		b.tree.Nodes[n.ID] = n
		parent.AppendChild(n.ID)
		if n.IsFolder() {
			if err := b.addChildren(n, e.Children); err != nil {
				return err
			}
		}
	}
	return nil
}
