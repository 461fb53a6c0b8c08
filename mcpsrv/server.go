package mcpsrv

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/mcpsrv/dto"
	"github.com/qyinm/galtui/types"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type pageResolveArgs struct {
	Path string `json:"path" jsonschema:"Navigation path, e.g. /cats.html or /"`
}

type galleryViewArgs struct {
	Path  string `json:"path,omitempty" jsonschema:"Navigation path selecting the page; empty means the homepage"`
	Term  string `json:"term,omitempty" jsonschema:"Optional search term matched against image tags"`
	Limit int    `json:"limit,omitempty" jsonschema:"Optional maximum number of images"`
}

type imageNavigateArgs struct {
	Path      string `json:"path,omitempty" jsonschema:"Navigation path selecting the page"`
	Term      string `json:"term,omitempty" jsonschema:"Optional search term; hidden images are skipped"`
	Index     int    `json:"index" jsonschema:"Rendered position of the image to open"`
	Direction string `json:"direction,omitempty" jsonschema:"next or prev; empty opens the image without moving"`
	Steps     int    `json:"steps,omitempty" jsonschema:"Number of moves in direction (default 1)"`
}

type tagsSuggestArgs struct {
	Query string `json:"query,omitempty" jsonschema:"Partially typed tag"`
	Limit int    `json:"limit,omitempty" jsonschema:"Optional maximum number of tags"`
}

type pageResolveOutput struct {
	Item dto.Page `json:"item"`
}

type pageListOutput struct {
	Total int        `json:"total"`
	Items []dto.Page `json:"items"`
}

type galleryViewOutput struct {
	Page     string      `json:"page"`
	Term     string      `json:"term"`
	Rendered int         `json:"rendered"`
	Visible  int         `json:"visible"`
	Items    []dto.Image `json:"items"`
}

type imageNavigateOutput struct {
	Page     string    `json:"page"`
	Position int       `json:"position"`
	Visible  int       `json:"visible"`
	Item     dto.Image `json:"item"`
}

type tagsSuggestOutput struct {
	Query string   `json:"query"`
	Items []string `json:"items"`
}

type cacheClearOutput struct {
	Status string `json:"status"`
}

type ServerOptions struct {
	AssetBase     string
	EnableSuggest bool
	EnableAdmin   bool
	APIKey        string
	Logger        *log.Logger
}

type cacheClearSource interface {
	ClearCache()
}

// headless is a surface with a container and a viewer that draw nothing.
// Each tool call renders one page view into it.
type headless struct{}

func (headless) Clear() {}
func (headless) Append(...gallery.Thumbnail) {}
func (headless) SetVisible([]bool) {}
func (headless) Show(string) {}
func (headless) Hide() {}

func NewServer(source types.CatalogSource, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "galtui", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "page_resolve",
		Description: "Resolve a navigation path to its gallery page key.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args pageResolveArgs) (*mcp.CallToolResult, pageResolveOutput, error) {
		return pageResolveHandler(ctx, req, args)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "page_list",
		Description: "List the gallery pages: the homepage and one page per catalog category.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, pageListOutput, error) {
		return pageListHandler(ctx, req, source)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gallery_view",
		Description: "Render the gallery of a page. With a tag search term only the matching images are listed.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args galleryViewArgs) (*mcp.CallToolResult, galleryViewOutput, error) {
		return galleryViewHandler(ctx, req, args, source, opts)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "image_navigate",
		Description: "Open an image in the viewer and step to the next or previous visible image, wrapping around.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args imageNavigateArgs) (*mcp.CallToolResult, imageNavigateOutput, error) {
		return imageNavigateHandler(ctx, req, args, source, opts)
	})

	if opts.EnableSuggest {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "tags_suggest",
			Description: "Suggest catalog tags for a partially typed search term.",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args tagsSuggestArgs) (*mcp.CallToolResult, tagsSuggestOutput, error) {
			return tagsSuggestHandler(ctx, req, args, source)
		})
	}

	if opts.EnableAdmin && strings.TrimSpace(opts.APIKey) != "" {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the catalog cache (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return cacheClearHandler(ctx, req, source)
		})
	}

	return server
}

func pageResolveHandler(_ context.Context, _ *mcp.CallToolRequest, args pageResolveArgs) (*mcp.CallToolResult, pageResolveOutput, error) {
	return nil, pageResolveOutput{Item: dto.FromPage(gallery.ResolvePage(args.Path))}, nil
}

func pageListHandler(ctx context.Context, _ *mcp.CallToolRequest, source types.CatalogSource) (*mcp.CallToolResult, pageListOutput, error) {
	catalog, err := source.LoadCatalog(ctx)
	if err != nil {
		return errorToolResult("load catalog failed"), pageListOutput{}, nil
	}
	pages := []types.PageContext{types.Homepage}
	for _, p := range catalog.Categories() {
		if !p.IsHomepage() {
			pages = append(pages, p)
		}
	}
	return nil, pageListOutput{Total: len(pages), Items: dto.FromPages(pages)}, nil
}

func galleryViewHandler(ctx context.Context, _ *mcp.CallToolRequest, args galleryViewArgs, source types.CatalogSource, opts *ServerOptions) (*mcp.CallToolResult, galleryViewOutput, error) {
	if args.Limit < 0 {
		return errorToolResult("limit must not be negative"), galleryViewOutput{}, nil
	}

	c := newPageView(source, args.Path, args.Term, opts)
	view, err := c.Load(ctx)
	if err != nil {
		return errorToolResult("load catalog failed"), galleryViewOutput{}, nil
	}

	items := dto.FromThumbnails(c.Thumbnails(), view.Visible)
	if view.Term != "" {
		items = visibleOnly(items)
	}
	items = applyLimit(items, args.Limit)

	return nil, galleryViewOutput{
		Page:     view.Page.String(),
		Term:     view.Term,
		Rendered: len(view.Rendered),
		Visible:  len(view.VisibleIndexes()),
		Items:    items,
	}, nil
}

func imageNavigateHandler(ctx context.Context, _ *mcp.CallToolRequest, args imageNavigateArgs, source types.CatalogSource, opts *ServerOptions) (*mcp.CallToolResult, imageNavigateOutput, error) {
	key, err := parseDirection(args.Direction)
	if err != nil {
		return errorToolResult(err.Error()), imageNavigateOutput{}, nil
	}
	steps := args.Steps
	if steps == 0 {
		steps = 1
	}
	if steps < 0 || steps > maxLimit {
		return errorToolResult(fmt.Sprintf("steps must be between 1 and %d", maxLimit)), imageNavigateOutput{}, nil
	}

	c := newPageView(source, args.Path, args.Term, opts)
	view, err := c.Load(ctx)
	if err != nil {
		return errorToolResult("load catalog failed"), imageNavigateOutput{}, nil
	}
	if !c.Activate(args.Index) {
		return errorToolResult(fmt.Sprintf("index %d out of range; page %q renders %d images", args.Index, view.Page, len(view.Rendered))), imageNavigateOutput{}, nil
	}
	if args.Direction != "" {
		for i := 0; i < steps; i++ {
			if !c.Key(key) {
				break
			}
		}
	}

	current, _ := c.Current()
	visible := view.VisibleIndexes()
	position := 0
	for i, idx := range visible {
		if idx == current.Index {
			position = i + 1
			break
		}
	}
	shown := current.Index >= len(view.Visible) || view.Visible[current.Index]

	return nil, imageNavigateOutput{
		Page:     view.Page.String(),
		Position: position,
		Visible:  len(visible),
		Item:     dto.FromThumbnail(current, shown),
	}, nil
}

func tagsSuggestHandler(ctx context.Context, _ *mcp.CallToolRequest, args tagsSuggestArgs, source types.CatalogSource) (*mcp.CallToolResult, tagsSuggestOutput, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	catalog, err := source.LoadCatalog(ctx)
	if err != nil {
		return errorToolResult("load catalog failed"), tagsSuggestOutput{}, nil
	}

	tags := gallery.SuggestTags(catalog, args.Query, limit)
	if tags == nil {
		tags = []string{}
	}
	return nil, tagsSuggestOutput{Query: args.Query, Items: tags}, nil
}

func cacheClearHandler(_ context.Context, _ *mcp.CallToolRequest, source types.CatalogSource) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := source.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()
	return nil, cacheClearOutput{Status: "ok"}, nil
}

// newPageView starts a page view for one tool call. The term is set
// before loading so the first render is already filtered.
func newPageView(source types.CatalogSource, path, term string, opts *ServerOptions) *gallery.Controller {
	c := gallery.NewController(source, gallery.Surface{Container: headless{}, Modal: headless{}}, gallery.Options{
		Path:      path,
		AssetBase: opts.AssetBase,
		Logger:    opts.Logger,
	})
	c.Search(strings.TrimSpace(term))
	return c
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// visibleOnly drops hidden images. Each kept image retains its rendered Index.
func visibleOnly(items []dto.Image) []dto.Image {
	out := make([]dto.Image, 0, len(items))
	for _, it := range items {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}

func applyLimit(items []dto.Image, limit int) []dto.Image {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if limit >= len(items) {
		return items
	}
	return items[:limit]
}

func parseDirection(raw string) (gallery.Key, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", "next":
		return gallery.KeyNext, nil
	case "prev", "previous":
		return gallery.KeyPrev, nil
	default:
		return gallery.KeyNext, fmt.Errorf("invalid direction %q; expected next|prev", raw)
	}
}
