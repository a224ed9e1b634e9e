package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/filter"
	"github.com/idilsaglam/tada/internal/render"
	"github.com/idilsaglam/tada/internal/store"
)

func newTestStore(t *testing.T, seed ...[2]string) *store.Store {
	t.Helper()
	n := 0
	s := store.New(store.NewMemoryKV(), "items", store.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	for _, it := range seed {
		_, err := s.Add(it[0], it[1])
		require.NoError(t, err)
	}
	return s
}

func newTestModel(t *testing.T, s *store.Store) Model {
	t.Helper()
	return New(s, render.New(render.WithLocation(time.UTC)), nil, zaptest.NewLogger(t))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func TestInitialDrawShowsStoredItems(t *testing.T) {
	s := newTestStore(t, [2]string{"Buy milk", "general"}, [2]string{"Report", "work"})
	m := newTestModel(t, s)

	assert.Equal(t, []string{"id-2", "id-1"}, m.screen.display.IDs())
	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "Report")
}

func TestAddItem(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s)

	m = press(t, m, "a")
	assert.Equal(t, modeAdd, m.mode)

	m = press(t, m, "Buy milk", "enter")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Empty(t, m.input.Value())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.Equal(t, "general", items[0].Category)
	assert.Equal(t, controller.KindSuccess, m.screen.message.Kind)
	assert.Len(t, m.list.Items(), 1)
}

func TestAddCyclesCategory(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s)

	m = press(t, m, "a", "tab", "Report", "enter")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "work", items[0].Category)
	assert.Zero(t, m.category)
}

func TestAddEmptyStaysOpen(t *testing.T) {
	s := newTestStore(t)
	m := newTestModel(t, s)

	m = press(t, m, "a", "   ", "enter")

	assert.Equal(t, modeAdd, m.mode)
	assert.Zero(t, s.Len())
	assert.Equal(t, controller.Message{Text: controller.MsgEmptyTitle, Kind: controller.KindError}, m.screen.message)
	assert.Contains(t, m.View(), controller.MsgEmptyTitle)

	m = press(t, m, "esc")
	assert.Equal(t, modeBrowse, m.mode)
}

func TestTypingInAddModeDoesNotTriggerShortcuts(t *testing.T) {
	s := newTestStore(t, [2]string{"keep", "general"})
	m := newTestModel(t, s)

	m = press(t, m, "a", "q", "d", "X", "enter")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "qdX", s.Items()[0].Text)
}

func TestDeleteSelected(t *testing.T) {
	s := newTestStore(t, [2]string{"a", "general"}, [2]string{"b", "general"})
	m := newTestModel(t, s)

	m = press(t, m, "d")

	assert.Equal(t, []string{"id-1"}, m.screen.display.IDs())
	assert.Len(t, m.list.Items(), 1)
	_, ok := s.Get("id-2")
	assert.False(t, ok)
}

func TestDeleteLastRowKeepsSelectionInRange(t *testing.T) {
	s := newTestStore(t, [2]string{"a", "general"}, [2]string{"b", "general"})
	m := newTestModel(t, s)
	m.list.Select(1)

	m = press(t, m, "d")
	assert.Equal(t, 0, m.list.Index())
	assert.Equal(t, []string{"id-2"}, m.screen.display.IDs())
}

func TestDeleteOnEmptyListIsNoop(t *testing.T) {
	m := newTestModel(t, newTestStore(t))
	m = press(t, m, "d", "e")
	assert.Equal(t, modeBrowse, m.mode)
}

func TestEditSelected(t *testing.T) {
	s := newTestStore(t, [2]string{"old", "work"})
	m := newTestModel(t, s)

	m = press(t, m, "e")
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "old", m.input.Value())

	m = press(t, m, " title", "enter")
	assert.Equal(t, modeBrowse, m.mode)

	it, _ := s.Get("id-1")
	assert.Equal(t, "old title", it.Text)
	assert.Equal(t, "work", it.Category)
	assert.Equal(t, "old title", m.screen.display.Rows[0].Text)
}

func TestEditCancel(t *testing.T) {
	s := newTestStore(t, [2]string{"old", "work"})
	m := newTestModel(t, s)

	m = press(t, m, "e", "zzz", "esc")

	it, _ := s.Get("id-1")
	assert.Equal(t, "old", it.Text)
	assert.Equal(t, modeBrowse, m.mode)
}

func TestEditEmptyShowsAlert(t *testing.T) {
	s := newTestStore(t, [2]string{"old", "work"})
	m := newTestModel(t, s)

	m = press(t, m, "e")
	m.input.SetValue("   ")
	m = press(t, m, "enter")

	it, _ := s.Get("id-1")
	assert.Equal(t, "old", it.Text)
	assert.Equal(t, controller.Message{Text: controller.MsgEmptyTitle, Kind: controller.KindError}, m.screen.message)
}

func TestSearchFiltersLive(t *testing.T) {
	s := newTestStore(t, [2]string{"Buy milk", "general"}, [2]string{"Report", "work"})
	m := newTestModel(t, s)

	m = press(t, m, "/", "MILK")
	assert.Equal(t, modeSearch, m.mode)
	assert.Equal(t, "MILK", m.ctl.Filter().Search)
	assert.Equal(t, []string{"id-1"}, m.screen.display.IDs())

	m = press(t, m, "enter")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 1, m.screen.display.Count)

	m = press(t, m, "/", "esc")
	assert.Empty(t, m.ctl.Filter().Search)
	assert.Equal(t, 2, m.screen.display.Count)
}

func TestSearchNoMatchShowsEmptyState(t *testing.T) {
	s := newTestStore(t, [2]string{"Buy milk", "general"})
	m := newTestModel(t, s)

	m = press(t, m, "/", "bread", "enter")

	assert.True(t, m.screen.display.Empty)
	assert.Contains(t, m.View(), "Nothing matches the current filter.")
}

func TestCategoryCycle(t *testing.T) {
	s := newTestStore(t, [2]string{"Buy milk", "general"}, [2]string{"Report", "work"})
	m := newTestModel(t, s)

	m = press(t, m, "c")
	assert.Equal(t, "general", m.ctl.Filter().Category)
	assert.Equal(t, []string{"id-1"}, m.screen.display.IDs())

	m = press(t, m, "c")
	assert.Equal(t, []string{"id-2"}, m.screen.display.IDs())

	m = press(t, m, "c", "c")
	assert.Equal(t, filter.All, m.ctl.Filter().Category)
	assert.Equal(t, 2, m.screen.display.Count)
}

func TestClearAllConfirm(t *testing.T) {
	s := newTestStore(t, [2]string{"a", "general"})
	m := newTestModel(t, s)

	m = press(t, m, "X")
	assert.Equal(t, modeConfirm, m.mode)
	assert.Contains(t, m.View(), controller.ConfirmClearAll)

	m = press(t, m, "n")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 1, s.Len())

	m = press(t, m, "X", "y")
	assert.Zero(t, s.Len())
	assert.True(t, m.screen.display.Empty)
	assert.Contains(t, m.View(), "No items yet")
}

func TestHeaderShowsCategoryCounts(t *testing.T) {
	s := newTestStore(t,
		[2]string{"Buy milk", "general"},
		[2]string{"Report", "work"},
		[2]string{"Slides", "work"},
	)
	m := newTestModel(t, s)

	h := m.header()
	assert.Contains(t, h, "3/3")
	assert.Contains(t, h, "general 1")
	assert.Contains(t, h, "work 2")
	assert.Contains(t, h, "personal 0")

	m = press(t, m, "d")
	assert.Contains(t, m.header(), "work 1")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, newTestStore(t))
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, newTestStore(t))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 116, m.list.Width())
}
