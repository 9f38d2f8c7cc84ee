package docsystem

import (
	"archive/zip"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	models "kbportal/internal/domain/models/docsystem"
)

// DescriptorSource turns a local path into upload descriptors. Only names
// and sizes are read; file contents never leave the host.
type DescriptorSource interface {
	// CanRead reports whether the source handles path
	CanRead(path string, info os.FileInfo) bool

	// Descriptors lists the files behind path in a stable order
	Descriptors(path string) ([]models.Descriptor, error)

	Name() string
}

// DescriptorSourceRegistry routes a path to the first source that can read it
type DescriptorSourceRegistry struct {
	mu      sync.RWMutex
	sources []DescriptorSource
}

// NewDescriptorSourceRegistry creates a registry with the zip and directory sources
func NewDescriptorSourceRegistry() *DescriptorSourceRegistry {
	r := &DescriptorSourceRegistry{}
	r.Register(zipSource{})
	r.Register(dirSource{})
	r.Register(singleFileSource{})
	return r
}

// Register appends a source; earlier registrations win
func (r *DescriptorSourceRegistry) Register(source DescriptorSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source)
}

// Descriptors reads path with the first matching source
func (r *DescriptorSourceRegistry) Descriptors(p string) ([]models.Descriptor, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, source := range r.sources {
		if source.CanRead(p, info) {
			return source.Descriptors(p)
		}
	}
	return nil, fmt.Errorf("no descriptor source for %s", p)
}

// zipSource lists the regular files of a zip archive, flattening folders
type zipSource struct{}

func (zipSource) Name() string { return "zip" }

func (zipSource) CanRead(p string, info os.FileInfo) bool {
	return !info.IsDir() && strings.EqualFold(filepath.Ext(p), ".zip")
}

func (zipSource) Descriptors(p string) ([]models.Descriptor, error) {
	archive, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", p, err)
	}
	defer archive.Close()

	var out []models.Descriptor
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		// Zip entries use forward slashes regardless of OS
		out = append(out, models.Descriptor{
			Name:      path.Base(entry.Name),
			SizeBytes: int64(entry.UncompressedSize64),
		})
	}
	return out, nil
}

// dirSource lists the regular files directly inside a directory, by name
type dirSource struct{}

func (dirSource) Name() string { return "directory" }

func (dirSource) CanRead(_ string, info os.FileInfo) bool {
	return info.IsDir()
}

func (dirSource) Descriptors(p string) ([]models.Descriptor, error) {
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", p, err)
	}

	var out []models.Descriptor
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		out = append(out, models.Descriptor{Name: entry.Name(), SizeBytes: info.Size()})
	}
	return out, nil
}

// singleFileSource describes one regular file
type singleFileSource struct{}

func (singleFileSource) Name() string { return "file" }

func (singleFileSource) CanRead(_ string, info os.FileInfo) bool {
	return info.Mode().IsRegular()
}

func (singleFileSource) Descriptors(p string) ([]models.Descriptor, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	return []models.Descriptor{{Name: filepath.Base(p), SizeBytes: info.Size()}}, nil
}
