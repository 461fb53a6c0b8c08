package gallery

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/qyinm/galtui/types"
)

// LoadErrorMessage prefixes every catalog failure written to the log.
const LoadErrorMessage = "could not load image catalog"

// Key is a keyboard input the viewer reacts to.
type Key int

const (
	KeyCancel Key = iota
	KeyPrev
	KeyNext
)

// Target is the element a pointer activation landed on.
type Target int

const (
	TargetClose Target = iota
	TargetBackdrop
	TargetContent
)

// Options configures a Controller.
type Options struct {
	Path      string // navigation path of the page view
	AssetBase string // prefix for thumb and full paths
	Logger    *log.Logger
}

// Controller owns the catalog, view and viewer state of one page view.
type Controller struct {
	id        string
	source    types.CatalogSource
	surface   Surface
	assetBase string
	logger    *log.Logger

	loadMu sync.Mutex

	mu      sync.Mutex
	path    string
	catalog types.Catalog
	view    ViewState
	thumbs  []Thumbnail
	term    string
	modal   Modal
}

// NewController creates a Controller rendering into surface.
func NewController(source types.CatalogSource, surface Surface, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		id:        uuid.NewString(),
		source:    source,
		surface:   surface,
		assetBase: opts.AssetBase,
		logger:    logger,
		path:      opts.Path,
		view:      ViewState{Page: ResolvePage(opts.Path)},
	}
}

// ID identifies the page view in logs.
func (c *Controller) ID() string { return c.id }

// Ready reports whether the surface has a thumbnail container.
func (c *Controller) Ready() bool { return c.surface.Container != nil }

// Navigate changes the path used by the next load.
func (c *Controller) Navigate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = path
}

// Path returns the current navigation path
func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Page returns the page key of the current navigation path
func (c *Controller) Page() types.PageContext {
	return ResolvePage(c.Path())
}

// Load fetches the catalog and renders it for the current page.
// Without a container it does nothing. On failure the error is logged,
// the surface is left as it was and the error is returned.
// Loads on one controller run one at a time.
func (c *Controller) Load(ctx context.Context) (ViewState, error) {
	if !c.Ready() {
		return ViewState{}, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	catalog, err := c.Fetch(ctx)
	if err != nil {
		c.ReportLoadError(err)
		return ViewState{}, err
	}
	return c.Apply(catalog), nil
}

// Fetch retrieves the catalog without touching any state.
func (c *Controller) Fetch(ctx context.Context) (types.Catalog, error) {
	return c.source.LoadCatalog(ctx)
}

// ReportLoadError writes a failed load to the log.
func (c *Controller) ReportLoadError(err error) {
	c.logger.Printf("%s: %v (view %s)", LoadErrorMessage, err, c.id)
}

// Apply replaces the catalog, re-renders the container for the current
// page and search term, and closes the viewer.
func (c *Controller) Apply(catalog types.Catalog) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = catalog
	c.view = Project(catalog, ResolvePage(c.path), c.term)
	c.thumbs = Thumbnails(c.view, c.assetBase)
	c.closeModal()

	if ct := c.surface.Container; ct != nil {
		ct.Clear()
		ct.Append(c.thumbs...)
		ct.SetVisible(c.view.Visible)
	}
	return c.view
}

// Search hides the rendered thumbnails whose tags do not contain term.
func (c *Controller) Search(term string) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.term = term
	c.view = c.view.WithTerm(term)
	if ct := c.surface.Container; ct != nil {
		ct.SetVisible(c.view.Visible)
	}
	return c.view
}

// View returns the current projection
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Catalog returns the last loaded catalog
func (c *Controller) Catalog() types.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Thumbnails returns the rendered thumbnails
func (c *Controller) Thumbnails() []Thumbnail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Thumbnail(nil), c.thumbs...)
}

// Modal returns the viewer state
func (c *Controller) Modal() Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// Current returns the thumbnail shown by the viewer.
func (c *Controller) Current() (Thumbnail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.modal.IsOpen() {
		return Thumbnail{}, false
	}
	return c.thumbs[c.modal.Index()], true
}

// Activate opens the viewer on the thumbnail at rendered position index.
func (c *Controller) Activate(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.surface.Modal == nil || index < 0 || index >= len(c.thumbs) {
		return false
	}
	c.openModal(index)
	return true
}

// Click handles a pointer activation and reports whether the viewer closed.
func (c *Controller) Click(target Target) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch target {
	case TargetClose, TargetBackdrop:
		return c.closeModal()
	default:
		return false
	}
}

// Key handles a key press and reports whether the viewer state changed.
// Keys are ignored while the viewer is closed.
func (c *Controller) Key(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.modal.IsOpen() {
		return false
	}
	switch k {
	case KeyCancel:
		return c.closeModal()
	case KeyNext:
		return c.step(Next)
	case KeyPrev:
		return c.step(Prev)
	default:
		return false
	}
}

func (c *Controller) step(dir Direction) bool {
	from := c.modal.Index()
	to := StepIndex(from, dir, c.view.Visible)
	if to == from {
		return false
	}
	c.openModal(to)
	return true
}

func (c *Controller) openModal(index int) {
	src := c.thumbs[index].Full
	c.modal.Open(index, src)
	if mv := c.surface.Modal; mv != nil {
		mv.Show(src)
	}
}

func (c *Controller) closeModal() bool {
	if !c.modal.Close() {
		return false
	}
	if mv := c.surface.Modal; mv != nil {
		mv.Hide()
	}
	return true
}
