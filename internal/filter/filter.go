// Package filter derives the visible subset of the collection.
package filter

import (
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// All disables the category filter.
const All = "all"

// State is the transient filter input. It is never persisted.
type State struct {
	Search   string
	Category string
}

// Default is the state every session starts with.
func Default() State { return State{Category: All} }

// Normalize fills in the "all" category when unset.
func (s State) Normalize() State {
	if s.Category == "" {
		s.Category = All
	}
	return s
}

// Active reports whether s hides anything.
func (s State) Active() bool {
	s = s.Normalize()
	return s.Category != All || strings.TrimSpace(s.Search) != ""
}

// Visible returns the items matching s in their source order.
// The input slice is not modified.
func Visible(items []model.Item, s State) []model.Item {
	s = s.Normalize()
	q := strings.ToLower(strings.TrimSpace(s.Search))

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if s.Category != All && it.Category != s.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Text), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Counts returns the number of items per category.
func Counts(items []model.Item) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		counts[it.Category]++
	}
	return counts
}
