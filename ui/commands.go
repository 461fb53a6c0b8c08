package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/types"
)

const fetchTimeout = 15 * time.Second

// Message types for async operations

type catalogMsg struct {
	requestID int
	catalog   types.Catalog
	err       error
}

// CatalogChangedMsg asks the model to reload the catalog, e.g. after the
// catalog file changed on disk.
type CatalogChangedMsg struct{}

// fetchCatalog returns a tea.Cmd that fetches the catalog asynchronously.
// Only the fetch runs off the update loop; the result is applied in Update.
func fetchCatalog(controller *gallery.Controller, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		catalog, err := controller.Fetch(ctx)
		return catalogMsg{requestID: requestID, catalog: catalog, err: err}
	}
}

type copiedMsg struct {
	path string
	err  error
}

func copyPath(write func(string) error, path string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{path: path, err: write(path)}
	}
}
