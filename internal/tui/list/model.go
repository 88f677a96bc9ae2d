package listview

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/virtuallist/internal/window"
)

// rowHeight is the height of one item in terminal rows.
const rowHeight = 1.0

// wheelDelta is the number of rows scrolled per mouse wheel notch.
const wheelDelta = 3

// settleDelay is how long an overshooting wheel scroll is shown before it snaps back into range.
const settleDelay = 120 * time.Millisecond

// RenderFunc renders one item. The item carries its absolute index; selected
// reports whether it is the current selection.
type RenderFunc[T any] func(item window.Item[T], selected bool) string

// settleMsg asks the list to clamp its scroll offset back into range.
type settleMsg struct {
	offset float64
}

// VirtualListModel implements virtual scrolling for large lists.
// It renders only the window computed for the current scroll offset, so
// scrolling stays smooth with 10,000+ items.
type VirtualListModel[T any] struct {
	// items contains all list items
	items []T

	// renderFunc renders a single item
	renderFunc RenderFunc[T]

	// calc retains the scroll offset in rows
	calc *window.Calculator[T]

	// result is the window for the current offset, recomputed on every change
	result window.Result[T]

	// selected is the currently selected item index (0-based)
	selected int

	// height is the viewport height in rows
	height int

	// width is the viewport width in columns
	width int

	// overscan is the number of extra rows computed above/below the viewport
	overscan int

	keys KeyMap
}

// NewVirtualListModel creates a new virtual list model.
// items: the complete list of items to display.
// height: viewport height in rows.
// width: viewport width in columns.
// renderFunc: function to render each item.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		calc:       window.New[T](),
		height:     max(height, 0),
		width:      width,
		overscan:   window.DefaultOverscan,
		keys:       DefaultKeyMap(),
	}

	m.recompute()
	return m
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard, mouse and resize messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKeyMsg(msg)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouseMsg(msg)
	case settleMsg:
		// Ignore stale settles; the user has scrolled since.
		if msg.offset == m.calc.ScrollOffset() {
			m.setOffset(window.ClampOffset(msg.offset, len(m.items), m.params()))
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg processes keyboard input for navigation.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.SetSelected(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.SetSelected(m.selected + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.SetSelected(m.selected - max(m.height, 1))
	case key.Matches(msg, m.keys.PageDown):
		m.SetSelected(m.selected + max(m.height, 1))
	case key.Matches(msg, m.keys.Home):
		m.SetSelected(0)
	case key.Matches(msg, m.keys.End):
		m.SetSelected(len(m.items) - 1)
	}
}

// handleMouseMsg scrolls on wheel events. The new offset is taken from the
// in-range position plus one notch, so it may overshoot by at most one notch;
// a settle command then pulls it back.
func (m *VirtualListModel[T]) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	var delta float64
	switch msg.Button { //nolint:exhaustive // Only wheel buttons scroll.
	case tea.MouseButtonWheelUp:
		delta = -wheelDelta
	case tea.MouseButtonWheelDown:
		delta = wheelDelta
	default:
		return nil
	}

	base := window.ClampOffset(m.calc.ScrollOffset(), len(m.items), m.params())
	next := base + delta
	m.setOffset(next)

	if next == window.ClampOffset(next, len(m.items), m.params()) {
		return nil
	}
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleMsg{offset: next}
	})
}

// params returns the calculator parameters for the current viewport.
func (m *VirtualListModel[T]) params() window.Params {
	return window.Params{
		ItemHeight:      rowHeight,
		ContainerHeight: float64(m.height),
		Overscan:        m.overscan,
	}
}

// setOffset forwards a scroll offset to the calculator and recomputes the window.
func (m *VirtualListModel[T]) setOffset(offset float64) {
	m.calc.SetScrollOffset(offset)
	m.recompute()
}

// recompute refreshes the cached window. It must run after every change of
// offset, size, overscan or items.
func (m *VirtualListModel[T]) recompute() {
	m.result = m.calc.Compute(m.items, m.params())
}

// scrollSelectedIntoView moves the offset the minimum amount needed to show the selection.
func (m *VirtualListModel[T]) scrollSelectedIntoView() {
	p := m.params()
	offset := window.ClampOffset(m.calc.ScrollOffset(), len(m.items), p)
	top := math.Floor(offset)
	sel := float64(m.selected)

	switch {
	case sel < top:
		offset = sel
	case m.height > 0 && sel >= top+float64(m.height):
		offset = sel - float64(m.height) + 1
	}
	m.setOffset(window.ClampOffset(offset, len(m.items), p))
}

// View renders the rows of the computed window that fall inside the viewport.
// The window is positioned at its OffsetTop; rows above the content (after a
// bounce past the top) render blank.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 || m.height == 0 {
		return ""
	}

	top := int(math.Floor(m.calc.ScrollOffset()))
	origin := int(window.OffsetTop(m.result.Range, rowHeight))
	clip := lipgloss.NewStyle().MaxWidth(m.width)

	lines := make([]string, 0, m.height)
	for row := top; row < top+m.height; row++ {
		if row < 0 {
			lines = append(lines, "")
			continue
		}
		if row >= len(m.items) {
			break
		}
		if !m.result.Range.Contains(row) {
			lines = append(lines, "")
			continue
		}
		item := m.result.Items[row-origin]
		line := m.renderFunc(item, item.Index == m.selected)
		if m.width > 0 {
			line = clip.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// SetItems replaces the collection, keeping the selection and offset in range.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds, and
// scrolls it into view.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		m.setOffset(0)
		return
	}

	switch {
	case index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.scrollSelectedIntoView()
}

// ScrollTo places item index at the top of the viewport (or as close as the
// content allows) and selects it.
func (m *VirtualListModel[T]) ScrollTo(index int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = min(max(index, 0), len(m.items)-1)
	m.setOffset(window.ScrollToIndex(m.selected, len(m.items), m.params()))
}

// SetSize updates the viewport dimensions.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = max(height, 0)
	m.scrollSelectedIntoView()
}

// SetOverscan sets the number of rows computed beyond each edge of the viewport.
func (m *VirtualListModel[T]) SetOverscan(overscan int) {
	m.overscan = max(overscan, 0)
	m.recompute()
}

// SetKeyMap replaces the navigation bindings.
func (m *VirtualListModel[T]) SetKeyMap(keys KeyMap) {
	m.keys = keys
}

// KeyMap returns the navigation bindings.
func (m *VirtualListModel[T]) KeyMap() KeyMap {
	return m.keys
}

// Offset returns the current scroll offset in rows.
func (m *VirtualListModel[T]) Offset() float64 {
	return m.calc.ScrollOffset()
}

// Result returns the window computed for the current offset.
func (m *VirtualListModel[T]) Result() window.Result[T] {
	return m.result
}

// VisibleRange returns the computed index range, including overscan.
func (m *VirtualListModel[T]) VisibleRange() window.Range {
	return m.result.Range
}

// ViewportRange returns the first and last item indices actually on screen.
// ok is false when nothing is shown.
func (m *VirtualListModel[T]) ViewportRange() (first, last int, ok bool) { //nolint:nonamedreturns // Names document the pair.
	if len(m.items) == 0 || m.height == 0 {
		return 0, 0, false
	}
	offset := window.ClampOffset(m.calc.ScrollOffset(), len(m.items), m.params())
	first = int(math.Floor(offset))
	last = min(first+m.height, len(m.items)) - 1
	return first, last, true
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the currently selected item.
// Returns nil if list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
