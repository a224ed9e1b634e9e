// Package render turns the visible set into display rows. Every row and
// control carries the item id, so an interaction on a row can be routed
// back to the item it came from.
package render

import (
	"time"

	"github.com/idilsaglam/tada/internal/filter"
	"github.com/idilsaglam/tada/internal/model"
)

// Action tags a per-row control.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Control is an interactive element on a row.
type Control struct {
	Action Action
	ItemID string
	Label  string
}

// Row is the display form of one item.
type Row struct {
	ID       string
	Text     string
	Category string
	Created  string
	Controls []Control
}

// Display is the complete output of one render pass.
type Display struct {
	Rows   []Row
	Count  int  // visible items
	Total  int  // items in the collection
	Empty  bool // true iff Count == 0
	Filter filter.State
}

// Row returns the row tagged with id.
func (d Display) Row(id string) (Row, bool) {
	for _, r := range d.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// Control resolves the control with the given action on the row at index.
func (d Display) Control(index int, action Action) (Control, bool) {
	if index < 0 || index >= len(d.Rows) {
		return Control{}, false
	}
	for _, c := range d.Rows[index].Controls {
		if c.Action == action {
			return c, true
		}
	}
	return Control{}, false
}

// IDs lists row ids in display order.
func (d Display) IDs() []string {
	ids := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		ids[i] = r.ID
	}
	return ids
}

const DefaultTimeFormat = "2006-01-02 15:04"

// Renderer builds Displays. It keeps no state between passes.
type Renderer struct {
	loc    *time.Location
	layout string
}

type Option func(*Renderer)

func WithLocation(loc *time.Location) Option { return func(r *Renderer) { r.loc = loc } }

func WithTimeFormat(layout string) Option { return func(r *Renderer) { r.layout = layout } }

func New(opts ...Option) *Renderer {
	r := &Renderer{loc: time.Local, layout: DefaultTimeFormat}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render filters items with f and builds a fresh Display for the result.
func (r *Renderer) Render(items []model.Item, f filter.State) Display {
	f = f.Normalize()
	visible := filter.Visible(items, f)

	d := Display{
		Rows:   make([]Row, 0, len(visible)),
		Count:  len(visible),
		Total:  len(items),
		Empty:  len(visible) == 0,
		Filter: f,
	}
	for _, it := range visible {
		d.Rows = append(d.Rows, r.row(it))
	}
	return d
}

func (r *Renderer) row(it model.Item) Row {
	return Row{
		ID:       it.ID,
		Text:     it.Text,
		Category: it.Category,
		Created:  "Created: " + it.Created().In(r.loc).Format(r.layout),
		Controls: []Control{
			{Action: ActionEdit, ItemID: it.ID, Label: "Edit"},
			{Action: ActionDelete, ItemID: it.ID, Label: "Delete"},
		},
	}
}
