package gallery

import (
	"path"
	"strings"

	"github.com/qyinm/galtui/types"
)

// Thumbnail is a rendered gallery item.
type Thumbnail struct {
	Index int // position in the rendered sequence
	Thumb string
	Full  string
	Alt   string
	Lazy  bool
	Entry types.ImageEntry
}

// Container holds the rendered thumbnails.
type Container interface {
	Clear()
	Append(thumbs ...Thumbnail)
	SetVisible(visible []bool)
}

// ModalView displays one full-size image.
type ModalView interface {
	Show(src string)
	Hide()
}

// Surface is what the controller renders into. A nil member means the
// host does not provide that element and the dependent feature is skipped.
type Surface struct {
	Container Container
	Modal     ModalView
}

// Thumbnails materializes the rendered entries of v, prefixing image
// paths with assetBase.
func Thumbnails(v ViewState, assetBase string) []Thumbnail {
	out := make([]Thumbnail, 0, len(v.Rendered))
	for i, e := range v.Rendered {
		out = append(out, Thumbnail{
			Index: i,
			Thumb: AssetPath(assetBase, e.Thumb()),
			Full:  AssetPath(assetBase, e.Full()),
			Alt:   e.AltText(),
			Lazy:  true,
			Entry: e,
		})
	}
	return out
}

// AssetPath joins an image path onto base. Absolute URLs are left alone.
func AssetPath(base, p string) string {
	if base == "" || isURL(p) {
		return p
	}
	if isURL(base) {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(p, "/")
	}
	return path.Join(base, p)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
