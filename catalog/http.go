package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/qyinm/galtui/types"
)

const userAgent = "galtui/1.0 (+https://github.com/qyinm/galtui)"

// HTTPSource implements types.CatalogSource using HTTP client and in-memory cache.
type HTTPSource struct {
	url    string
	client *http.Client
	cache  map[string]types.Catalog
	mu     sync.Mutex
}

// Compile-time interface check
var _ types.CatalogSource = (*HTTPSource)(nil)

// NewHTTPSource creates a source for the catalog at location. A location
// that does not name a .json document is treated as the site base and
// the catalog is fetched from <base>/images.json.
func NewHTTPSource(location string) *HTTPSource {
	u := location
	if !strings.HasSuffix(strings.ToLower(u), ".json") {
		u = strings.TrimSuffix(u, "/") + "/" + CatalogFile
	}
	return &HTTPSource{
		url: u,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: make(map[string]types.Catalog),
	}
}

// URL returns the catalog address
func (s *HTTPSource) URL() string { return s.url }

// LoadCatalog fetches and parses the catalog document.
func (s *HTTPSource) LoadCatalog(ctx context.Context) (types.Catalog, error) {
	s.mu.Lock()
	if cached, ok := s.cache[s.url]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	catalog, dropped, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if dropped > 0 {
		log.Printf("catalog %s: dropped %d entries without images", s.url, dropped)
	}

	s.mu.Lock()
	s.cache[s.url] = catalog
	s.mu.Unlock()
	return catalog, nil
}

// ClearCache clears the in-memory cache.
func (s *HTTPSource) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]types.Catalog)
}
