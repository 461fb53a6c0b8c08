package ui

import "github.com/qyinm/galtui/gallery"

// surface is the terminal rendering target of the controller. The
// controller only calls it from Update, so no locking is needed.
type surface struct {
	thumbs     []gallery.Thumbnail
	visible    []bool
	modalShown bool
	modalSrc   string
	dirty      bool
}

var (
	_ gallery.Container = (*surface)(nil)
	_ gallery.ModalView = (*surface)(nil)
)

func (s *surface) Clear() {
	s.thumbs = nil
	s.visible = nil
	s.dirty = true
}

func (s *surface) Append(thumbs ...gallery.Thumbnail) {
	s.thumbs = append(s.thumbs, thumbs...)
	s.dirty = true
}

func (s *surface) SetVisible(visible []bool) {
	s.visible = append([]bool(nil), visible...)
	s.dirty = true
}

func (s *surface) Show(src string) {
	s.modalShown = true
	s.modalSrc = src
}

func (s *surface) Hide() {
	s.modalShown = false
	s.modalSrc = ""
}

// visibleThumbs returns the thumbnails not hidden by the search term.
func (s *surface) visibleThumbs() []gallery.Thumbnail {
	out := make([]gallery.Thumbnail, 0, len(s.thumbs))
	for i, t := range s.thumbs {
		if i < len(s.visible) && !s.visible[i] {
			continue
		}
		out = append(out, t)
	}
	return out
}
