package tui

import (
	"fmt"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridview/pkg/grid"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestModel(t *testing.T, rows int) Model {
	t.Helper()
	cells := make([][]string, rows)
	for i := range cells {
		country := "US"
		if i%2 == 1 {
			country = "UK"
		}
		cells[i] = []string{fmt.Sprintf("Project %02d", i), country, fmt.Sprintf("$%d", 10+i), fmt.Sprintf("2023-%02d-01", 1+i%12)}
	}
	w := grid.New(grid.NewDatasetFromCells(grid.DefaultColumns(), cells), grid.Options{}, nil)
	return New(w)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_ColumnCursor(t *testing.T) {
	m := newTestModel(t, 5)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.col, "cursor stays on the first column")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("l"), runes("l"), runes("l"))
	assert.Equal(t, 3, m.col, "cursor stops on the last column")

	m = press(t, m, runes("h"))
	assert.Equal(t, 2, m.col)
}

func TestModel_Paging(t *testing.T) {
	m := newTestModel(t, 60)
	assert.Equal(t, "Page 1 of 3", m.GridView().Pager.Label)

	m = press(t, m, runes("n"))
	assert.Equal(t, 2, m.GridView().Pager.Current)

	m = press(t, m, runes("G"))
	assert.Equal(t, 3, m.GridView().Pager.Current)

	m = press(t, m, runes("p"), runes("g"))
	assert.Equal(t, 1, m.GridView().Pager.Current)
}

func TestModel_Sort(t *testing.T) {
	m := newTestModel(t, 5)

	m = press(t, m, runes("S"))
	assert.Equal(t, "Project 04", m.GridView().Rows[0].Cells[0])

	m = press(t, m, runes("s"))
	assert.Equal(t, "Project 00", m.GridView().Rows[0].Cells[0])
}

func TestModel_PopupToggle(t *testing.T) {
	m := newTestModel(t, 10)

	// Open the Country popup: (Select All), UK, US.
	m = press(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, focusPopup, m.focus)
	items := m.items()
	require.Len(t, items, 3)
	assert.True(t, items[0].selectAll)

	// Uncheck UK.
	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 5, m.GridView().VisibleCount)
	assert.True(t, m.GridView().Columns[1].Filtered)
	assert.False(t, m.items()[0].checked, "select-all is unchecked")

	// Select all again.
	m = press(t, m, runes("k"), tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 10, m.GridView().VisibleCount)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusTable, m.focus)
}

func TestModel_PopupColumnSearch(t *testing.T) {
	m := newTestModel(t, 10)

	m = press(t, m, runes("l"), runes("f"), runes("/"))
	require.Equal(t, focusColumnSearch, m.focus)

	m = press(t, m, runes("u"), runes("k"))
	assert.Equal(t, "uk", m.GridView().Columns[1].Search)
	assert.Equal(t, 5, m.GridView().VisibleCount)

	// Switch to not-contains after returning to the list.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("m"))
	assert.Equal(t, focusPopup, m.focus)
	assert.Equal(t, grid.ModeNotContains, m.GridView().Columns[1].Mode)
	assert.Equal(t, 5, m.GridView().VisibleCount)

	// Clear the column filter.
	m = press(t, m, runes("c"))
	assert.Equal(t, 10, m.GridView().VisibleCount)
}

func TestModel_DateExpand(t *testing.T) {
	m := newTestModel(t, 12)

	m = press(t, m, runes("l"), runes("l"), runes("l"), runes("f"))
	// (Select All), 2023.
	items := m.items()
	require.Len(t, items, 2)
	assert.True(t, items[1].expandable)

	m = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.items(), 14, "the year lists its twelve months")
}

func TestModel_GlobalSearch(t *testing.T) {
	m := newTestModel(t, 20)

	m = press(t, m, runes("/"))
	require.Equal(t, focusSearch, m.focus)
	m = press(t, m, runes("Project 1"))
	assert.Equal(t, "Project 1", m.GridView().Search)
	assert.Equal(t, 10, m.GridView().VisibleCount)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("C"))
	assert.Equal(t, focusTable, m.focus)
	assert.Equal(t, 20, m.GridView().VisibleCount)
	assert.Empty(t, m.GridView().Search)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, 1)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, 30)
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := ansiPattern.ReplaceAllString(m.View(), "")
	assert.Contains(t, out, "Project Name")
	assert.Contains(t, out, "30 of 30 rows")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "Project 24")
	assert.NotContains(t, out, "Project 25")

	m = press(t, m, runes("l"), runes("f"))
	out = ansiPattern.ReplaceAllString(m.View(), "")
	assert.Contains(t, out, "[x] (Select All)")
	assert.Contains(t, out, "[x] UK")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abc…", pad("abcdef", 4))
}
