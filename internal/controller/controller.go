// Package controller turns user intents into store operations, user
// feedback, and a re-render of the visible set.
package controller

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/filter"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/render"
	"github.com/idilsaglam/tada/internal/store"
)

// User-facing texts.
const (
	MsgEmptyTitle   = "Title cannot be empty."
	MsgItemAdded    = "Item added."
	PromptEditTitle = "Edit title:"
	ConfirmClearAll = "Clear ALL items? This cannot be undone."
)

var MsgTitleTooLong = fmt.Sprintf("Title too long (max %d chars).", model.MaxTitleLen)

type MessageKind int

const (
	KindNone MessageKind = iota
	KindSuccess
	KindError
)

// Message is the feedback line next to the entry form.
type Message struct {
	Text string
	Kind MessageKind
}

// View is the render target.
type View interface {
	Draw(render.Display)
	SetMessage(Message)
	// ResetForm clears the pending-entry fields after a successful submit.
	ResetForm()
}

// Dialogs are the modal primitives. Prompt reports ok=false when the
// user cancels.
type Dialogs interface {
	Confirm(message string) bool
	Prompt(message, initial string) (string, bool)
	Alert(message string)
}

// Controller owns the transient filter state and drives the store.
type Controller struct {
	store      *store.Store
	renderer   *render.Renderer
	view       View
	dialogs    Dialogs
	categories []string
	filter     filter.State
	log        *zap.Logger
}

type Option func(*Controller)

// WithCategories sets the options offered by the entry form. The first
// one is the default.
func WithCategories(c []string) Option {
	return func(ctl *Controller) { ctl.categories = append([]string(nil), c...) }
}

func WithLogger(l *zap.Logger) Option { return func(ctl *Controller) { ctl.log = l } }

func New(s *store.Store, r *render.Renderer, v View, d Dialogs, opts ...Option) *Controller {
	c := &Controller{
		store:      s,
		renderer:   r,
		view:       v,
		dialogs:    d,
		categories: append([]string(nil), model.DefaultCategories...),
		filter:     filter.Default(),
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Categories returns the offered categories.
func (c *Controller) Categories() []string { return append([]string(nil), c.categories...) }

// DefaultCategory is what the entry form resets to.
func (c *Controller) DefaultCategory() string {
	if len(c.categories) == 0 {
		return ""
	}
	return c.categories[0]
}

func (c *Controller) Filter() filter.State { return c.filter }

// Store exposes the item store for read access.
func (c *Controller) Store() *store.Store { return c.store }

// Refresh draws the current state.
func (c *Controller) Refresh() {
	c.view.Draw(c.renderer.Render(c.store.Items(), c.filter))
}

// Dispatch runs one intent to completion. Validation failures and
// cancellations are reported through the view and dialogs; only
// persistence failures come back as errors.
func (c *Controller) Dispatch(in Intent) error {
	c.log.Debug("intent", zap.String("type", fmt.Sprintf("%T", in)))

	switch in := in.(type) {
	case Submit:
		return c.submit(in)
	case Edit:
		return c.edit(in.ID)
	case Delete:
		return c.mutated(c.store.Remove(in.ID))
	case ClearAll:
		if !c.dialogs.Confirm(ConfirmClearAll) {
			return nil
		}
		return c.mutated(c.store.Clear())
	case SearchChanged:
		c.filter.Search = in.Text
		c.Refresh()
		return nil
	case CategoryChanged:
		c.filter.Category = in.Value
		c.filter = c.filter.Normalize()
		c.Refresh()
		return nil
	case nil:
		return errors.New("nil intent")
	}
	return fmt.Errorf("unknown intent %T", in)
}

func (c *Controller) submit(in Submit) error {
	c.view.SetMessage(Message{})

	category := in.Category
	if category == "" {
		category = c.DefaultCategory()
	}
	if err := model.ValidateCategory(category, c.categories); err != nil {
		c.view.SetMessage(Message{Text: fmt.Sprintf("Unknown category %q.", category), Kind: KindError})
		return nil
	}

	it, err := c.store.Add(in.Text, category)
	if err != nil {
		if model.IsValidation(err) {
			c.view.SetMessage(Message{Text: userText(err), Kind: KindError})
			return nil
		}
		return c.mutated(err)
	}
	c.log.Info("item added", zap.String("id", it.ID), zap.String("category", it.Category))

	c.Refresh()
	c.view.SetMessage(Message{Text: MsgItemAdded, Kind: KindSuccess})
	c.view.ResetForm()
	return nil
}

func (c *Controller) edit(id string) error {
	it, ok := c.store.Get(id)
	if !ok {
		return nil
	}
	text, ok := c.dialogs.Prompt(PromptEditTitle, it.Text)
	if !ok {
		return nil
	}
	if _, err := c.store.Update(id, text); err != nil {
		if model.IsValidation(err) {
			c.dialogs.Alert(userText(err))
			return nil
		}
		return c.mutated(err)
	}
	c.Refresh()
	return nil
}

// mutated finishes a store mutation: re-render on success, surface the
// persistence error otherwise.
func (c *Controller) mutated(err error) error {
	if err != nil {
		c.log.Error("persist failed", zap.Error(err))
		c.view.SetMessage(Message{Text: "Could not save: " + err.Error(), Kind: KindError})
		return err
	}
	c.Refresh()
	return nil
}

func userText(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyTitle):
		return MsgEmptyTitle
	case errors.Is(err, model.ErrTitleTooLong):
		return MsgTitleTooLong
	}
	return err.Error()
}
