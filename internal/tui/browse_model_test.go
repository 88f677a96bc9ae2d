package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/virtuallist/internal/ingest"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(m *BrowseModel) *BrowseModel {
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// TestNewBrowseModel tests BrowseModel initialization.
func TestNewBrowseModel(t *testing.T) {
	t.Run("starts in list state with items", func(t *testing.T) {
		m := NewBrowseModel("generated", ingest.Generate(100, "row"), 3)

		require.NotNil(t, m)
		assert.Equal(t, ViewStateList, m.State())
		assert.Equal(t, 100, m.List().ItemCount())
		assert.Nil(t, m.Init())
	})

	t.Run("resize leaves room for header, status and help", func(t *testing.T) {
		m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

		assert.Equal(t, 21, m.List().Height())
		assert.Equal(t, 80, m.List().Width())
	})

	t.Run("tiny terminal keeps one list row", func(t *testing.T) {
		m := NewBrowseModel("generated", ingest.Generate(10, "row"), 3)
		m.Update(tea.WindowSizeMsg{Width: 20, Height: 2})

		assert.Equal(t, 1, m.List().Height())
	})
}

// TestBrowseModel_Jump tests the jump-to-index prompt.
func TestBrowseModel_Jump(t *testing.T) {
	t.Run("valid index scrolls to top", func(t *testing.T) {
		m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

		m.Update(runeKey(":"))
		require.True(t, m.showJump)
		m.Update(runeKey("5"))
		m.Update(runeKey("0"))
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.False(t, m.showJump)
		assert.Equal(t, 50, m.List().Selected())
		assert.InDelta(t, 50.0, m.List().Offset(), 0)
		assert.Contains(t, m.View(), "row 50")
	})

	t.Run("index near the end clamps to max offset", func(t *testing.T) {
		m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

		m.applyJump("95")

		assert.Equal(t, 95, m.List().Selected())
		assert.InDelta(t, 79.0, m.List().Offset(), 0)
	})

	t.Run("invalid input shows an error", func(t *testing.T) {
		m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

		m.applyJump("abc")
		assert.Contains(t, m.View(), "no item")
		assert.InDelta(t, 0.0, m.List().Offset(), 0)

		m.applyJump("100")
		assert.Contains(t, m.View(), "0-99")
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

		m.Update(runeKey(":"))
		m.Update(runeKey("9"))
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.False(t, m.showJump)
		assert.Equal(t, 0, m.List().Selected())
	})

	t.Run("q is typed into the prompt, not quit", func(t *testing.T) {
		m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

		m.Update(runeKey(":"))
		_, cmd := m.Update(runeKey("q"))

		assert.Equal(t, ViewStateList, m.State())
		if cmd != nil {
			assert.NotEqual(t, tea.QuitMsg{}, cmd())
		}
	})
}

// TestBrowseModel_WheelSettlesWhileJumpOpen tests that an overshooting wheel
// scroll is clamped back even when the jump prompt opened in between.
func TestBrowseModel_WheelSettlesWhileJumpOpen(t *testing.T) {
	m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))

	m.Update(runeKey("G"))
	require.InDelta(t, 79.0, m.List().Offset(), 0)

	_, settle := m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	require.NotNil(t, settle)
	require.InDelta(t, 82.0, m.List().Offset(), 0)

	m.Update(runeKey(":"))
	require.True(t, m.showJump)
	m.Update(settle())
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.InDelta(t, 79.0, m.List().Offset(), 0)
}

// TestBrowseModel_Navigation tests that list keys reach the virtual list.
func TestBrowseModel_Navigation(t *testing.T) {
	m := sized(NewBrowseModel("generated", ingest.Generate(1000, "row"), 3))

	m.Update(runeKey("G"))
	assert.Equal(t, 999, m.List().Selected())

	r := m.List().VisibleRange()
	assert.Equal(t, 999, r.End)
	assert.Contains(t, m.View(), "of 1,000")
}

// TestBrowseModel_Help tests the help toggle.
func TestBrowseModel_Help(t *testing.T) {
	m := sized(NewBrowseModel("generated", ingest.Generate(100, "row"), 3))
	before := m.List().Height()

	m.Update(runeKey("?"))

	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.List().Height(), before)
}

// TestBrowseModel_Loading tests the asynchronous loading flow.
func TestBrowseModel_Loading(t *testing.T) {
	t.Run("loaded items switch to list", func(t *testing.T) {
		loader := func(context.Context) ([]string, error) {
			return ingest.Generate(5, "row"), nil
		}
		m := NewBrowseModelWithLoading(context.Background(), "stdin", 3, loader)
		assert.Equal(t, ViewStateLoading, m.State())
		assert.NotNil(t, m.Init())
		assert.Contains(t, m.View(), "Loading stdin")

		msg := m.loadCmd()
		m.Update(msg)

		assert.Equal(t, ViewStateList, m.State())
		assert.Equal(t, 5, m.List().ItemCount())
	})

	t.Run("load error shows error view", func(t *testing.T) {
		boom := errors.New("boom")
		loader := func(context.Context) ([]string, error) { return nil, boom }
		m := NewBrowseModelWithLoading(context.Background(), "items.json", 3, loader)

		m.Update(m.loadCmd())

		assert.Equal(t, ViewStateError, m.State())
		require.ErrorIs(t, m.Err(), boom)
		assert.Contains(t, m.View(), "boom")
	})

	t.Run("quit while loading", func(t *testing.T) {
		m := NewBrowseModelWithLoading(context.Background(), "stdin", 3,
			func(context.Context) ([]string, error) { return nil, nil })

		_, cmd := m.Update(runeKey("q"))

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, ViewStateQuitting, m.State())
	})
}

// TestBrowseModel_Quit tests quitting from the list.
func TestBrowseModel_Quit(t *testing.T) {
	m := sized(NewBrowseModel("generated", ingest.Generate(10, "row"), 3))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

// TestBrowseModel_EmptyList tests rendering with no items.
func TestBrowseModel_EmptyList(t *testing.T) {
	m := sized(NewBrowseModel("empty", nil, 3))

	view := m.View()
	assert.Contains(t, view, "no items")
	assert.Contains(t, view, "nothing to show")
}
