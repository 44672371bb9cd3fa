package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the table and the filter popup.
type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Close     key.Binding
	Toggle    key.Binding
	Expand    key.Binding
	Mode      key.Binding
	Search    key.Binding
	SortAsc   key.Binding
	SortDesc  key.Binding
	Clear     key.Binding
	ClearAll  key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:      key.NewBinding(key.WithKeys("enter", "f"), key.WithHelp("enter/f", "filter column")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "check/uncheck")),
	Expand:    key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "expand")),
	Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "contains/not")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	SortAsc:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort A-Z")),
	SortDesc:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort Z-A")),
	Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filter")),
	ClearAll:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
	NextPage:  key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
	FirstPage: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
	LastPage:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Open, k.Search, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Open, k.Search},
		{k.SortAsc, k.SortDesc, k.Clear, k.ClearAll},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage},
		{k.Up, k.Down, k.Toggle, k.Expand, k.Mode, k.Close},
		{k.Help, k.Quit},
	}
}
