package controller

import "github.com/idilsaglam/tada/internal/render"

// Intent is a discrete user action. The concrete types below are the
// only implementations.
type Intent interface{ intent() }

// Submit carries the pending-entry form fields.
type Submit struct {
	Text     string
	Category string
}

type Delete struct{ ID string }

type Edit struct{ ID string }

type SearchChanged struct{ Text string }

type CategoryChanged struct{ Value string }

type ClearAll struct{}

func (Submit) intent()          {}
func (Delete) intent()          {}
func (Edit) intent()            {}
func (SearchChanged) intent()   {}
func (CategoryChanged) intent() {}
func (ClearAll) intent()        {}

// FromControl maps a row control to the intent it triggers.
func FromControl(c render.Control) (Intent, bool) {
	switch c.Action {
	case render.ActionEdit:
		return Edit{ID: c.ItemID}, true
	case render.ActionDelete:
		return Delete{ID: c.ItemID}, true
	}
	return nil, false
}
