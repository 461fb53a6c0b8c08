package dto

import (
	"github.com/qyinm/galtui/gallery"
	"github.com/qyinm/galtui/types"
)

func FromThumbnail(t gallery.Thumbnail, visible bool) Image {
	tags := t.Entry.Tags()
	if tags == nil {
		tags = []string{}
	}
	return Image{
		Index:    t.Index,
		Category: t.Entry.Category(),
		Thumb:    t.Thumb,
		Full:     t.Full,
		Alt:      t.Alt,
		Tags:     tags,
		Visible:  visible,
	}
}

// FromThumbnails pairs thumbnails with the visibility flags of a view.
// Missing flags count as visible.
func FromThumbnails(thumbs []gallery.Thumbnail, visible []bool) []Image {
	out := make([]Image, 0, len(thumbs))
	for i, t := range thumbs {
		v := i >= len(visible) || visible[i]
		out = append(out, FromThumbnail(t, v))
	}
	return out
}

func FromPage(p types.PageContext) Page {
	return Page{Page: p.String(), Path: gallery.PagePath(p)}
}

func FromPages(pages []types.PageContext) []Page {
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, FromPage(p))
	}
	return out
}
