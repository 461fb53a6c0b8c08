package catalog

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/qyinm/galtui/types"
)

// FileSource reads the catalog document from disk on every load.
type FileSource struct {
	path string
}

var _ types.CatalogSource = (*FileSource)(nil)

// NewFileSource creates a source for the catalog file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the catalog file path
func (s *FileSource) Path() string { return s.path }

// LoadCatalog reads and parses the catalog file.
func (s *FileSource) LoadCatalog(ctx context.Context) (types.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	catalog, dropped, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	if dropped > 0 {
		log.Printf("catalog %s: dropped %d entries without images", s.path, dropped)
	}
	return catalog, nil
}
