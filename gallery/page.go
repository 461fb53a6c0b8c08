package gallery

import (
	"path"
	"strings"

	"github.com/qyinm/galtui/types"
)

// ResolvePage maps a navigation path to its page key.
//
// "/folder/gallery.html" -> "gallery"
// "/folder/page"         -> "page"
// "", "/", "/folder/"    -> "homepage"
func ResolvePage(p string) types.PageContext {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return types.Homepage
	}

	file := p[strings.LastIndex(p, "/")+1:]
	name := strings.TrimSuffix(file, path.Ext(file))
	if name == "" {
		return types.Homepage
	}
	return types.PageContext(strings.ToLower(name))
}

// PagePath is the navigation path that resolves back to page.
func PagePath(page types.PageContext) string {
	if page == "" || page.IsHomepage() {
		return "/"
	}
	return "/" + string(page) + ".html"
}
