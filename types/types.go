package types

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

// PageContext is the normalized key of the page being viewed.
type PageContext string

// Homepage is the page that shows every category.
const Homepage PageContext = "homepage"

// String returns the raw page key
func (p PageContext) String() string { return string(p) }

// IsHomepage reports whether p is the homepage sentinel
func (p PageContext) IsHomepage() bool { return p == Homepage }

// ImageEntry is one image of the catalog
type ImageEntry struct {
	category string
	thumb    string
	full     string
	tags     []string
}

// NewImageEntry creates a new ImageEntry with the given fields.
// The tags slice is copied so the entry stays immutable.
func NewImageEntry(category, thumb, full string, tags []string) ImageEntry {
	return ImageEntry{
		category: category,
		thumb:    thumb,
		full:     full,
		tags:     append([]string(nil), tags...),
	}
}

// Getters for ImageEntry fields
func (e ImageEntry) Category() string { return e.category }
func (e ImageEntry) Thumb() string    { return e.thumb }
func (e ImageEntry) Full() string     { return e.full }
func (e ImageEntry) Tags() []string   { return append([]string(nil), e.tags...) }

// AltText is the accessible text of the thumbnail: the tags joined by ", "
func (e ImageEntry) AltText() string { return strings.Join(e.tags, ", ") }

// list.Item interface implementation
func (e ImageEntry) Title() string       { return e.AltText() }
func (e ImageEntry) Description() string { return e.thumb }
func (e ImageEntry) FilterValue() string { return e.AltText() }

// Compile-time check that ImageEntry implements list.Item
var _ list.Item = ImageEntry{}

// Catalog is the ordered list of every image of the site.
type Catalog []ImageEntry

// Categories returns the distinct lowercased categories in first-seen order.
// Empty categories are skipped.
func (c Catalog) Categories() []PageContext {
	seen := make(map[string]struct{})
	var out []PageContext
	for _, e := range c {
		cat := strings.ToLower(e.category)
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, PageContext(cat))
	}
	return out
}

// CatalogSource is the core abstraction for catalog access.
// Sync methods only, no bubbletea dependency: the TUI, the MCP server
// and tests all call it directly.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (Catalog, error)
}
