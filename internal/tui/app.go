package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/filter"
	"github.com/idilsaglam/tada/internal/render"
	"github.com/idilsaglam/tada/internal/store"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeConfirm
)

// screen is the controller's View. Bubble Tea copies the model on every
// update, so the drawn state lives behind a pointer.
type screen struct {
	display   render.Display
	message   controller.Message
	formReset bool
	draws     int
}

func (s *screen) Draw(d render.Display) {
	s.display = d
	s.draws++
}

func (s *screen) SetMessage(m controller.Message) { s.message = m }
func (s *screen) ResetForm()                      { s.formReset = true }

// modal answers the controller's dialogs with what the user already
// typed or pressed in the inline modal.
type modal struct {
	confirm bool
	text    string
	ok      bool
	alert   string
}

func (m *modal) Confirm(string) bool               { return m.confirm }
func (m *modal) Prompt(_, _ string) (string, bool) { return m.text, m.ok }
func (m *modal) Alert(msg string)                  { m.alert = msg }

// listItem adapts a rendered row to bubbles/list.Item
type listItem struct {
	row render.Row
}

func (i listItem) Title() string       { return i.row.Text }
func (i listItem) Description() string { return i.row.Created }
func (i listItem) FilterValue() string { return i.row.Text }

// Custom delegate: title + badge on the first line, metadata below.
type rowDelegate struct {
	categories []string
}

func (d rowDelegate) Height() int                               { return 2 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	badge := badgeStyle(indexOf(d.categories, it.row.Category)).Render("[" + it.row.Category + "]")

	prefix := "  "
	text := it.row.Text
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		text = titleStyle.Render(text)
	}
	fmt.Fprintf(w, "%s%s %s\n", prefix, text, badge)
	fmt.Fprint(w, "    "+mutedStyle.Render(it.row.Created))
}

var (
	addBind      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind     = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	searchBind   = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	categoryBind = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category"))
	clearBind    = key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all"))
)

// Model is the Bubble Tea model for the interactive list.
type Model struct {
	ctl    *controller.Controller
	screen *screen
	modal  *modal

	list  list.Model
	input textinput.Model // shared by add, edit and search
	mode  mode

	editID   string
	category int // form category, index into ctl.Categories()
	log      *zap.Logger
}

// New builds the model and draws the initial state of s.
func New(s *store.Store, r *render.Renderer, categories []string, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	scr := &screen{}
	mdl := &modal{}
	opts := []controller.Option{controller.WithLogger(log)}
	if len(categories) > 0 {
		opts = append(opts, controller.WithCategories(categories))
	}
	ctl := controller.New(s, r, scr, mdl, opts...)

	l := list.New(nil, rowDelegate{categories: ctl.Categories()}, 80, 18)
	l.SetShowTitle(true)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.DisableQuitKeybindings()

	extra := func() []key.Binding {
		return []key.Binding{addBind, editBind, deleteBind, searchBind, categoryBind, clearBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		ctl:    ctl,
		screen: scr,
		modal:  mdl,
		list:   l,
		input:  ti,
		log:    log,
	}
	ctl.Refresh()
	m.sync()
	return m
}

// Run starts the interactive list. Every change is saved as it happens.
func Run(s *store.Store, r *render.Renderer, categories []string, log *zap.Logger) error {
	p := tea.NewProgram(New(s, r, categories, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(ws.Width-4, max(4, ws.Height-8))
		return m, nil
	}

	k, isKey := msg.(tea.KeyMsg)
	switch m.mode {
	case modeAdd:
		if isKey {
			return m.updateAdd(k)
		}
	case modeEdit:
		if isKey {
			return m.updateEdit(k)
		}
	case modeSearch:
		if isKey {
			return m.updateSearch(k)
		}
	case modeConfirm:
		if isKey {
			return m.updateConfirm(k), nil
		}
		return m, nil
	}
	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if isKey {
		switch k.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.screen.message = controller.Message{}
			return m.openInput(modeAdd, "", "New item title...")
		case "e":
			if c, ok := m.screen.display.Control(m.list.Index(), render.ActionEdit); ok {
				row, _ := m.screen.display.Row(c.ItemID)
				m.editID = c.ItemID
				return m.openInput(modeEdit, row.Text, "Edit item title...")
			}
			return m, nil
		case "d":
			if c, ok := m.screen.display.Control(m.list.Index(), render.ActionDelete); ok {
				m.dispatchControl(c)
			}
			return m, nil
		case "/":
			return m.openInput(modeSearch, m.ctl.Filter().Search, "Search...")
		case "c":
			m.dispatch(controller.CategoryChanged{Value: m.nextCategoryFilter()})
			return m, nil
		case "X":
			m.mode = modeConfirm
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := m.ctl.Categories()
	switch k.String() {
	case "enter":
		m.dispatch(controller.Submit{Text: m.input.Value(), Category: cats[m.category]})
		if m.screen.formReset {
			m.screen.formReset = false
			m.category = 0
			m.closeInput()
		}
		return m, nil
	case "tab":
		m.category = (m.category + 1) % len(cats)
		return m, nil
	case "shift+tab":
		m.category = (m.category - 1 + len(cats)) % len(cats)
		return m, nil
	case "esc":
		m.screen.message = controller.Message{}
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

func (m Model) updateEdit(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "enter", "esc":
		m.modal.text, m.modal.ok = m.input.Value(), k.String() == "enter"
		m.modal.alert = ""
		m.dispatch(controller.Edit{ID: m.editID})
		if m.modal.alert != "" {
			m.screen.message = controller.Message{Text: m.modal.alert, Kind: controller.KindError}
		}
		m.editID = ""
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

func (m Model) updateSearch(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "enter":
		m.closeInput()
		return m, nil
	case "esc":
		m.dispatch(controller.SearchChanged{Text: ""})
		m.closeInput()
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	if v := m.input.Value(); v != before {
		m.dispatch(controller.SearchChanged{Text: v})
	}
	return m, cmd
}

func (m Model) updateConfirm(k tea.KeyMsg) Model {
	switch k.String() {
	case "y", "Y":
		m.modal.confirm = true
	case "n", "N", "esc":
		m.modal.confirm = false
	default:
		return m
	}
	m.dispatch(controller.ClearAll{})
	m.modal.confirm = false
	m.mode = modeBrowse
	return m
}

func (m *Model) openInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return *m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) dispatchControl(c render.Control) {
	if in, ok := controller.FromControl(c); ok {
		m.dispatch(in)
	}
}

// dispatch runs an intent and resyncs the list when the controller drew.
// Persistence errors are already on screen as a message.
func (m *Model) dispatch(in controller.Intent) {
	draws := m.screen.draws
	if err := m.ctl.Dispatch(in); err != nil {
		m.log.Warn("intent failed", zap.Error(err))
	}
	if m.screen.draws != draws {
		m.sync()
	}
}

// sync replaces every list entry with the latest rendered rows.
func (m *Model) sync() {
	d := m.screen.display
	items := make([]list.Item, len(d.Rows))
	for i, r := range d.Rows {
		items[i] = listItem{row: r}
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = m.header()
}

func (m Model) header() string {
	d := m.screen.display
	h := fmt.Sprintf("Items   %s %d/%d", accentStyle.Render("shown"), d.Count, d.Total)
	if d.Filter.Category != filter.All {
		h += "   " + accentStyle.Render("category") + " " + d.Filter.Category
	}
	if s := strings.TrimSpace(d.Filter.Search); s != "" {
		h += "   " + accentStyle.Render("search") + " " + fmt.Sprintf("%q", s)
	}
	counts := filter.Counts(m.ctl.Store().Items())
	parts := make([]string, 0, len(m.ctl.Categories()))
	for i, c := range m.ctl.Categories() {
		parts = append(parts, badgeStyle(i).Render(c)+" "+strconv.Itoa(counts[c]))
	}
	if len(parts) > 0 {
		h += "   " + strings.Join(parts, " · ")
	}
	return h
}

func (m Model) nextCategoryFilter() string {
	options := append([]string{filter.All}, m.ctl.Categories()...)
	i := indexOf(options, m.ctl.Filter().Category)
	return options[(i+1)%len(options)]
}

func (m Model) View() string {
	var b strings.Builder

	d := m.screen.display
	if d.Empty {
		b.WriteString(titleStyle.Render(m.header()) + "\n\n")
		if d.Filter.Active() {
			b.WriteString(emptyStyle.Render("Nothing matches the current filter."))
		} else {
			b.WriteString(emptyStyle.Render("No items yet. Press a to add one."))
		}
		b.WriteString("\n\n" + m.list.Help.ShortHelpView(m.list.ShortHelp()))
	} else {
		b.WriteString(m.list.View())
	}

	if msg := m.screen.message; msg.Text != "" {
		style := mutedStyle
		switch msg.Kind {
		case controller.KindSuccess:
			style = successStyle
		case controller.KindError:
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(msg.Text))
	}

	if box := m.modalView(); box != "" {
		b.WriteString("\n" + box)
	}
	return panelString(b.String())
}

func (m Model) modalView() string {
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	switch m.mode {
	case modeAdd:
		cats := m.ctl.Categories()
		parts := make([]string, len(cats))
		for i, c := range cats {
			if i == m.category {
				parts[i] = badgeStyle(i).Bold(true).Render("[" + c + "]")
			} else {
				parts[i] = mutedStyle.Render(c)
			}
		}
		return bar.Render("Add new item   " + strings.Join(parts, " ") + "\n" + m.input.View() +
			"\n" + helpStyle.Render("enter: add | tab: category | esc: cancel"))
	case modeEdit:
		return bar.Render(controller.PromptEditTitle + "\n" + m.input.View() +
			"\n" + helpStyle.Render("enter: save | esc: cancel"))
	case modeSearch:
		return bar.Render("Search\n" + m.input.View() +
			"\n" + helpStyle.Render("enter: keep | esc: clear"))
	case modeConfirm:
		return bar.Render(errorStyle.Render(controller.ConfirmClearAll) +
			"\n" + helpStyle.Render("y: confirm | n: cancel"))
	}
	return ""
}

func indexOf(xs []string, s string) int {
	for i, v := range xs {
		if v == s {
			return i
		}
	}
	return -1
}
