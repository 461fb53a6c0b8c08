package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/qyinm/galtui/gallery"
)

// thumbItem adapts a rendered thumbnail to list.Item
type thumbItem struct {
	thumb gallery.Thumbnail
}

func (i thumbItem) Title() string       { return i.thumb.Alt }
func (i thumbItem) Description() string { return i.thumb.Thumb }
func (i thumbItem) FilterValue() string { return i.thumb.Alt }

var _ list.Item = thumbItem{}

// ThumbnailDelegate is a custom list delegate for rendering thumbnails
type ThumbnailDelegate struct{}

// Height returns the height of a list item (2 lines)
func (d ThumbnailDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between list items
func (d ThumbnailDelegate) Spacing() int {
	return 1
}

// Update handles updates for the delegate (no-op for thumbnails)
func (d ThumbnailDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single thumbnail item
func (d ThumbnailDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(thumbItem)
	if !ok {
		return
	}
	thumb := it.thumb
	isSelected := index == m.Index()

	// Line 1: position + tags
	posStr := fmt.Sprintf("%3d ", thumb.Index+1)
	alt := thumb.Alt
	if alt == "" {
		alt = "(untagged)"
	}
	alt = fit(alt, m.Width()-runewidth.StringWidth(posStr))

	// Line 2: thumbnail path + category (indented, dimmed)
	indent := "    "
	meta := thumb.Thumb
	if cat := thumb.Entry.Category(); cat != "" {
		meta += " · " + cat
	}
	meta = fit(meta, m.Width()-len(indent))

	var line1, line2 string
	if isSelected {
		posStyle := lipgloss.NewStyle().Foreground(DraculaCyan).Bold(true)
		altStyle := lipgloss.NewStyle().Foreground(DraculaPink).Bold(true)
		line1 = posStyle.Render(posStr) + altStyle.Render(alt)
		line2 = indent + lipgloss.NewStyle().Foreground(DraculaForeground).Render(meta)
	} else {
		posStyle := lipgloss.NewStyle().Foreground(DraculaComment)
		altStyle := lipgloss.NewStyle().Foreground(DraculaCyan)
		line1 = posStyle.Render(posStr) + altStyle.Render(alt)
		line2 = indent + lipgloss.NewStyle().Foreground(DraculaComment).Render(meta)
	}

	fmt.Fprint(w, line1+"\n"+line2)
}

// fit truncates s to width cells, keeping it untouched when width is
// unknown (zero or negative).
func fit(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
