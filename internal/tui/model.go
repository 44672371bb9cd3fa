// Package tui hosts the grid widget in a terminal with bubbletea.
package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

type focus int

const (
	focusTable focus = iota
	focusPopup
	focusSearch
	focusColumnSearch
)

// Model is the bubbletea model of the terminal host. The widget is only
// touched from Update, which bubbletea runs on a single goroutine.
type Model struct {
	widget *grid.Widget
	view   grid.View

	focus  focus
	col    int
	cursor int

	input textinput.Model
	help  help.Model

	status string
	width  int
	height int
}

// New creates a model for w.
func New(w *grid.Widget) Model {
	input := textinput.New()
	input.Prompt = "/ "
	input.CharLimit = 256

	return Model{
		widget: w,
		view:   w.View(),
		input:  input,
		help:   help.New(),
		width:  100,
	}
}

// Run starts the terminal host and blocks until the user quits or ctx ends.
func Run(ctx context.Context, w *grid.Widget, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	_, err := tea.NewProgram(New(w), opts...).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// GridView returns the widget's current view.
func (m Model) GridView() grid.View {
	return m.view
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusSearch, focusColumnSearch:
			return m.updateInput(msg)
		case focusPopup:
			return m.updatePopup(msg)
		default:
			return m.updateTable(msg)
		}
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, keys.Right):
		if m.col < len(m.view.Columns)-1 {
			m.col++
		}
	case key.Matches(msg, keys.Open):
		if len(m.view.Columns) > 0 {
			m.focus = focusPopup
			m.cursor = 0
		}
	case key.Matches(msg, keys.Search):
		m.focus = focusSearch
		m.input.SetValue(m.view.Search)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, keys.SortAsc):
		m.apply(grid.Command{Op: grid.OpSortAsc, Column: m.col})
	case key.Matches(msg, keys.SortDesc):
		m.apply(grid.Command{Op: grid.OpSortDesc, Column: m.col})
	case key.Matches(msg, keys.Clear):
		m.apply(grid.Command{Op: grid.OpClearFilter, Column: m.col})
	case key.Matches(msg, keys.ClearAll):
		m.apply(grid.Command{Op: grid.OpClearAll, Column: -1})
	case key.Matches(msg, keys.NextPage):
		m.page(grid.ButtonNext)
	case key.Matches(msg, keys.PrevPage):
		m.page(grid.ButtonPrev)
	case key.Matches(msg, keys.FirstPage):
		m.page(grid.ButtonFirst)
	case key.Matches(msg, keys.LastPage):
		m.page(grid.ButtonLast)
	}
	return m, nil
}

func (m Model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	items := m.items()
	switch {
	case key.Matches(msg, keys.Close), msg.String() == "q":
		m.focus = focusTable
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if it, ok := m.item(items); ok {
			if it.selectAll {
				m.apply(grid.Command{Op: grid.OpToggleAll, Column: m.col, Checked: !it.checked})
			} else {
				m.apply(grid.Command{Op: grid.OpToggle, Column: m.col, Key: it.key, Checked: !it.checked})
			}
		}
	case key.Matches(msg, keys.Expand):
		if it, ok := m.item(items); ok && it.expandable {
			m.apply(grid.Command{Op: grid.OpExpand, Column: m.col, Key: it.key})
		}
	case key.Matches(msg, keys.Mode):
		mode := grid.ModeNotContains
		if m.column().Mode == grid.ModeNotContains {
			mode = grid.ModeContains
		}
		m.apply(grid.Command{Op: grid.OpSetMode, Column: m.col, Mode: mode})
	case key.Matches(msg, keys.Search):
		m.focus = focusColumnSearch
		m.input.SetValue(m.column().Search)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, keys.SortAsc):
		m.apply(grid.Command{Op: grid.OpSortAsc, Column: m.col})
	case key.Matches(msg, keys.SortDesc):
		m.apply(grid.Command{Op: grid.OpSortDesc, Column: m.col})
	case key.Matches(msg, keys.Clear):
		m.apply(grid.Command{Op: grid.OpClearFilter, Column: m.col})
	}
	m.cursor = min(m.cursor, max(0, len(m.items())-1))
	return m, nil
}

// updateInput feeds the search box and applies the search on every edit.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	back := focusTable
	if m.focus == focusColumnSearch {
		back = focusPopup
	}
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.input.Blur()
		m.focus = back
		m.cursor = 0
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != before {
		if m.focus == focusSearch {
			m.apply(grid.Command{Op: grid.OpSetSearch, Column: -1, Text: text})
		} else {
			m.apply(grid.Command{Op: grid.OpSetColumnSearch, Column: m.col, Text: text})
		}
	}
	return m, cmd
}

func (m *Model) apply(cmd grid.Command) {
	if err := m.widget.Apply(cmd); err != nil {
		m.status = err.Error()
	}
	m.view = m.widget.View()
}

func (m *Model) page(kind grid.ButtonKind) {
	m.apply(grid.Command{Op: grid.OpPage, Column: -1, Page: string(kind)})
}

func (m Model) column() grid.ColumnView {
	return m.view.Columns[m.col]
}

// popupItem is one selectable line of the filter popup.
type popupItem struct {
	key        string
	label      string
	depth      int
	checked    bool
	selectAll  bool
	expandable bool
	expanded   bool
}

// items lists the select-all entry and the visible options of the
// current column.
func (m Model) items() []popupItem {
	if len(m.view.Columns) == 0 {
		return nil
	}
	c := m.column()
	var out []popupItem
	if !c.SelectAll.Hidden && !c.SelectAll.Filtered {
		out = append(out, popupItem{label: c.SelectAll.Label, checked: c.SelectAll.Checked, selectAll: true})
	}
	for _, o := range c.Options {
		if !o.Visible() {
			continue
		}
		out = append(out, popupItem{
			key:        o.Key,
			label:      o.Label,
			depth:      o.Depth,
			checked:    o.Checked,
			expandable: o.Expandable,
			expanded:   o.Expanded,
		})
	}
	return out
}

func (m Model) item(items []popupItem) (popupItem, bool) {
	if m.cursor < 0 || m.cursor >= len(items) {
		return popupItem{}, false
	}
	return items[m.cursor], true
}
