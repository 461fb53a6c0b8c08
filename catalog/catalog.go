package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/qyinm/galtui/types"
)

// CatalogFile is the name of the catalog document next to the site pages.
const CatalogFile = "images.json"

// MaxCatalogSize caps how many bytes Decode reads from a catalog document.
const MaxCatalogSize = 8 << 20

var (
	// ErrMalformed is returned when the catalog document is not a JSON array
	// of image objects.
	ErrMalformed = errors.New("malformed catalog")
	// ErrTooLarge is returned when the document exceeds MaxCatalogSize.
	ErrTooLarge = errors.New("catalog too large")
)

type rawEntry struct {
	Category string   `json:"category"`
	Thumb    string   `json:"thumb"`
	Full     string   `json:"full"`
	Tags     []string `json:"tags"`
}

// Parse decodes a catalog document.
func Parse(reader io.Reader) (types.Catalog, error) {
	catalog, _, err := Decode(reader)
	return catalog, err
}

// Decode decodes a catalog document and reports how many entries were
// dropped for having neither a thumbnail nor a full image.
// A missing full path falls back to the thumbnail and vice versa.
// Categories are kept verbatim; page matching only folds case.
func Decode(reader io.Reader) (types.Catalog, int, error) {
	raw, err := io.ReadAll(io.LimitReader(reader, MaxCatalogSize+1))
	if err != nil {
		return nil, 0, fmt.Errorf("read catalog: %w", err)
	}
	if len(raw) > MaxCatalogSize {
		return nil, 0, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxCatalogSize)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, 0, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	var entries []rawEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	catalog := make(types.Catalog, 0, len(entries))
	dropped := 0
	for _, e := range entries {
		thumb := strings.TrimSpace(e.Thumb)
		full := strings.TrimSpace(e.Full)
		if thumb == "" && full == "" {
			dropped++
			continue
		}
		if full == "" {
			full = thumb
		}
		if thumb == "" {
			thumb = full
		}
		catalog = append(catalog, types.NewImageEntry(e.Category, thumb, full, e.Tags))
	}
	return catalog, dropped, nil
}

// Open returns the source for a catalog location: an http(s) URL, a
// static gallery page (.html/.htm), or a local catalog file.
func Open(location string) (types.CatalogSource, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("catalog location is required")
	}

	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPSource(location), nil
	}

	lower := strings.ToLower(location)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return NewHTMLSource(location), nil
	}
	return NewFileSource(location), nil
}
