package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/types"
)

// HTMLSource imports the catalog from an already rendered static gallery
// page. Every thumbnail of the page gets the page's own category.
type HTMLSource struct {
	path string
}

var _ types.CatalogSource = (*HTMLSource)(nil)

// NewHTMLSource creates a source for the gallery page at path
func NewHTMLSource(path string) *HTMLSource {
	return &HTMLSource{path: path}
}

// Path returns the gallery page path
func (s *HTMLSource) Path() string { return s.path }

// LoadCatalog parses the gallery page.
func (s *HTMLSource) LoadCatalog(ctx context.Context) (types.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open gallery page: %w", err)
	}
	defer f.Close()

	category := string(gallery.ResolvePage("/" + filepath.Base(s.path)))
	return ParseGalleryHTML(f, category)
}

// ParseGalleryHTML extracts catalog entries from gallery markup:
//
//	<div class="galleryImage"><img src="thumb" alt="tag1, tag2" data-full="full"></div>
//
// The full image comes from data-full, then from an enclosing link,
// then falls back to the thumbnail.
func ParseGalleryHTML(reader io.Reader, category string) (types.Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	catalog := make(types.Catalog, 0)
	doc.Find(".galleryImage img").Each(func(_ int, img *goquery.Selection) {
		thumb := strings.TrimSpace(img.AttrOr("src", ""))
		if thumb == "" {
			thumb = strings.TrimSpace(img.AttrOr("data-src", ""))
		}

		full := strings.TrimSpace(img.AttrOr("data-full", ""))
		if full == "" {
			full = strings.TrimSpace(img.Closest("a").AttrOr("href", ""))
		}

		if thumb == "" && full == "" {
			return
		}
		if full == "" {
			full = thumb
		}
		if thumb == "" {
			thumb = full
		}

		catalog = append(catalog, types.NewImageEntry(category, thumb, full, splitTags(img.AttrOr("alt", ""))))
	})

	return catalog, nil
}

func splitTags(alt string) []string {
	var tags []string
	for _, part := range strings.Split(alt, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
