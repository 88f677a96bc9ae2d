package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/virtuallist/internal/output"
	listview "github.com/rshade/virtuallist/internal/tui/list"
	"github.com/rshade/virtuallist/internal/window"
)

// ViewState represents the current screen of the browse model.
type ViewState int

const (
	// ViewStateLoading shows a spinner while items are loaded.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the virtualized list.
	ViewStateList
	// ViewStateError shows a load error.
	ViewStateError
	// ViewStateQuitting is set once the user quits.
	ViewStateQuitting
)

// Layout defaults.
const (
	defaultWidth  = 80
	defaultHeight = 24
	minHeight     = 1

	// chromeLines is the number of non-list lines: header and status.
	chromeLines = 2

	jumpInputCharLimit = 12
	jumpInputWidth     = 14
)

// Loader fetches the collection to browse. It should honor ctx cancellation.
type Loader func(ctx context.Context) ([]string, error)

// itemsLoadedMsg carries the result of a Loader.
type itemsLoadedMsg struct {
	items []string
	err   error
}

// browseKeyMap adds screen-level bindings to the list navigation bindings.
type browseKeyMap struct {
	listview.KeyMap

	Jump key.Binding
	Help key.Binding
	Quit key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		KeyMap: listview.DefaultKeyMap(),
		Jump: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "jump to index"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k browseKeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Jump, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Jump, k.Help, k.Quit})
}

// BrowseModel is the Bubble Tea model for interactively browsing a collection.
type BrowseModel struct {
	state  ViewState
	source string
	items  []string

	list     *listview.VirtualListModel[string]
	overscan int

	jumpInput textinput.Model
	showJump  bool
	jumpErr   string

	help    help.Model
	keys    browseKeyMap
	spinner spinner.Model

	loadCmd tea.Cmd

	width  int
	height int

	err error
}

// NewBrowseModel creates a browse model over items that are already loaded.
func NewBrowseModel(source string, items []string, overscan int) *BrowseModel {
	m := newBrowseModel(source, overscan)
	m.state = ViewStateList
	m.setItems(items)
	return m
}

// NewBrowseModelWithLoading creates a model that starts in the loading state
// and runs loader when the program starts.
func NewBrowseModelWithLoading(ctx context.Context, source string, overscan int, loader Loader) *BrowseModel {
	m := newBrowseModel(source, overscan)
	m.state = ViewStateLoading
	m.loadCmd = func() tea.Msg {
		items, err := loader(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
	return m
}

func newBrowseModel(source string, overscan int) *BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "index"
	ti.CharLimit = jumpInputCharLimit
	ti.Width = jumpInputWidth
	ti.Prompt = ": "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &BrowseModel{
		source:    source,
		overscan:  overscan,
		jumpInput: ti,
		help:      help.New(),
		keys:      newBrowseKeyMap(),
		spinner:   sp,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.list = m.newList(nil)
	return m
}

// newList builds the virtual list with this model's renderer and geometry.
func (m *BrowseModel) newList(items []string) *listview.VirtualListModel[string] {
	l := listview.NewVirtualListModel(items, m.listHeight(), m.width, m.renderItem)
	l.SetOverscan(m.overscan)
	l.SetKeyMap(m.keys.KeyMap)
	return l
}

func (m *BrowseModel) setItems(items []string) {
	m.items = items
	m.list.SetItems(items)
}

// Init starts loading (if needed) and the spinner.
func (m *BrowseModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.spinner.Tick, m.loadCmd)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.help.Width = winMsg.Width
		m.layout()
		return m, nil
	}

	if loadMsg, ok := msg.(itemsLoadedMsg); ok {
		return m.handleLoadingComplete(loadMsg)
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		if m.showJump {
			return m.handleJumpInput(msg)
		}
		return m.handleListUpdate(msg)
	case ViewStateError, ViewStateQuitting:
		return m.handleQuitUpdate(msg)
	default:
		return m, nil
	}
}

func (m *BrowseModel) handleLoadingComplete(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}
	m.state = ViewStateList
	m.setItems(msg.items)
	return m, nil
}

func (m *BrowseModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Quit) {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *BrowseModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.state = ViewStateQuitting
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Jump):
			m.showJump = true
			m.jumpErr = ""
			m.jumpInput.SetValue("")
			return m, m.jumpInput.Focus()
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *BrowseModel) handleJumpInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Timers such as the wheel settle still belong to the list.
		_, listCmd := m.list.Update(msg)
		var inputCmd tea.Cmd
		m.jumpInput, inputCmd = m.jumpInput.Update(msg)
		return m, tea.Batch(listCmd, inputCmd)
	}
	switch keyMsg.Type { //nolint:exhaustive // Other keys go to the text input.
	case tea.KeyEnter:
		m.showJump = false
		m.jumpInput.Blur()
		m.applyJump(m.jumpInput.Value())
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.showJump = false
		m.jumpInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	return m, cmd
}

// applyJump scrolls the list so the requested index is at the top.
func (m *BrowseModel) applyJump(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	index, err := strconv.Atoi(value)
	if err != nil || index < 0 || index >= len(m.items) {
		m.jumpErr = fmt.Sprintf("no item %q (0-%d)", value, max(len(m.items)-1, 0))
		return
	}
	m.jumpErr = ""
	m.list.ScrollTo(index)
}

func (m *BrowseModel) handleQuitUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Quit) || keyMsg.Type == tea.KeyEsc {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

// listHeight is the number of rows left for the list after header, status and help.
func (m *BrowseModel) listHeight() int {
	helpLines := lipgloss.Height(m.help.View(m.keys))
	return max(m.height-chromeLines-helpLines, minHeight)
}

// layout resizes the list to the current screen.
func (m *BrowseModel) layout() {
	m.list.SetSize(m.width, m.listHeight())
}

// renderItem renders one row with a right-aligned index gutter.
func (m *BrowseModel) renderItem(item window.Item[string], selected bool) string {
	digits := len(strconv.Itoa(max(len(m.items)-1, 0)))
	gutter := fmt.Sprintf("%*d │ ", digits, item.Index)
	if selected {
		return SelectedStyle.Render(gutter + item.Value)
	}
	return GutterStyle.Render(gutter) + item.Value
}

// View renders the current screen.
func (m *BrowseModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return ErrorStyle.Render(fmt.Sprintf("Error loading %s: %v", m.source, m.err)) + "\n" +
			SubtleStyle.Render("Press q to quit")
	case ViewStateLoading:
		return fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.source)
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *BrowseModel) renderListView() string {
	header := HeaderStyle.Render(fmt.Sprintf("%s · %s items · height %s",
		m.source,
		output.FormatNumber(int64(len(m.items))),
		output.FormatFloat(m.list.Result().TotalHeight, 0),
	))

	body := m.list.View()
	if len(m.items) == 0 {
		body = SubtleStyle.Render("(no items)")
	}
	// Keep the status line pinned below the list area.
	if pad := m.list.Height() - lipgloss.Height(body); pad > 0 {
		body += strings.Repeat("\n", pad)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderStatusLine(),
		m.help.View(m.keys),
	)
}

func (m *BrowseModel) renderStatusLine() string {
	if m.showJump {
		return LabelStyle.Render("Jump") + m.jumpInput.View()
	}
	if m.jumpErr != "" {
		return ErrorStyle.Render(m.jumpErr)
	}

	first, last, ok := m.list.ViewportRange()
	if !ok {
		return SubtleStyle.Render("nothing to show")
	}
	r := m.list.VisibleRange()
	return SubtleStyle.Render(fmt.Sprintf("rows %d-%d of %s · window %d-%d · offset %s",
		first, last,
		output.FormatNumber(int64(len(m.items))),
		r.Start, r.End,
		output.FormatFloat(m.list.Offset(), 0),
	))
}

// State returns the current view state.
func (m *BrowseModel) State() ViewState {
	return m.state
}

// List returns the underlying virtual list.
func (m *BrowseModel) List() *listview.VirtualListModel[string] {
	return m.list
}

// Err returns the load error, if any.
func (m *BrowseModel) Err() error {
	return m.err
}
