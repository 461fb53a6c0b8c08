package gallery

import (
	"strings"

	"github.com/qyinm/galtui/types"
	"github.com/sahilm/fuzzy"
)

// Tags returns the distinct lowercased tags of entries in first-seen order.
func Tags(entries []types.ImageEntry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		for _, tag := range e.Tags() {
			t := strings.ToLower(strings.TrimSpace(tag))
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// SuggestTags ranks the tags of entries against a partially typed query.
// An empty query returns the tags in catalog order.
func SuggestTags(entries []types.ImageEntry, query string, limit int) []string {
	tags := Tags(entries)
	query = strings.ToLower(strings.TrimSpace(query))

	var out []string
	if query == "" {
		out = tags
	} else {
		for _, m := range fuzzy.Find(query, tags) {
			out = append(out, m.Str)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
