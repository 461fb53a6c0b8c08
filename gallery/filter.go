package gallery

import (
	"strings"

	"github.com/qyinm/galtui/types"
)

// MatchesCategory reports whether an entry of category belongs on page.
// The homepage shows everything.
func MatchesCategory(category string, page types.PageContext) bool {
	return page.IsHomepage() || strings.EqualFold(category, string(page))
}

// MatchesTerm reports whether some tag contains term, ignoring case.
// The empty term matches everything, including entries without tags.
func MatchesTerm(tags []string, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// FilterImages returns the entries whose tags match term, in order.
func FilterImages(entries []types.ImageEntry, term string) []types.ImageEntry {
	out := make([]types.ImageEntry, 0, len(entries))
	for _, e := range entries {
		if MatchesTerm(e.Tags(), term) {
			out = append(out, e)
		}
	}
	return out
}

// ViewState is the projection of a catalog onto a page and search term.
// Rendered holds the category-filtered entries in catalog order and
// Visible[i] tells whether Rendered[i] survives the search term.
type ViewState struct {
	Page     types.PageContext
	Term     string
	Rendered []types.ImageEntry
	Visible  []bool
}

// Project filters catalog by page, then marks the entries matching term.
func Project(catalog types.Catalog, page types.PageContext, term string) ViewState {
	rendered := make([]types.ImageEntry, 0, len(catalog))
	for _, e := range catalog {
		if MatchesCategory(e.Category(), page) {
			rendered = append(rendered, e)
		}
	}
	return ViewState{
		Page:     page,
		Term:     term,
		Rendered: rendered,
		Visible:  visibility(rendered, term),
	}
}

// WithTerm re-applies the search layer over the rendered entries.
func (v ViewState) WithTerm(term string) ViewState {
	v.Term = term
	v.Visible = visibility(v.Rendered, term)
	return v
}

// VisibleEntries returns the rendered entries that pass the search term.
func (v ViewState) VisibleEntries() []types.ImageEntry {
	out := make([]types.ImageEntry, 0, len(v.Rendered))
	for i, e := range v.Rendered {
		if v.Visible[i] {
			out = append(out, e)
		}
	}
	return out
}

// VisibleIndexes returns the positions in Rendered that are visible.
func (v ViewState) VisibleIndexes() []int {
	out := make([]int, 0, len(v.Rendered))
	for i := range v.Rendered {
		if v.Visible[i] {
			out = append(out, i)
		}
	}
	return out
}

func visibility(entries []types.ImageEntry, term string) []bool {
	visible := make([]bool, len(entries))
	for i, e := range entries {
		visible[i] = MatchesTerm(e.Tags(), term)
	}
	return visible
}
