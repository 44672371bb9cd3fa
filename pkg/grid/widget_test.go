package grid

import (
	"fmt"
	"testing"

	"github.com/leapstack-labs/gridview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	colProject = 0
	colCountry = 1
	colPrice   = 2
	colDate    = 3
)

func newTestWidget(t *testing.T, cells [][]string) *Widget {
	t.Helper()
	return New(NewDatasetFromCells(DefaultColumns(), cells), Options{}, testutil.NewTestLogger(t))
}

func exampleRows() [][]string {
	return [][]string{
		{"A", "US", "$10", "2023-01-01"},
		{"B", "US", "$20", "2023-02-01"},
		{"A", "UK", "$10", "2023-01-01"},
	}
}

func visibleIDs(w *Widget) []int {
	var ids []int
	for i, v := range w.Visible() {
		if v {
			ids = append(ids, i)
		}
	}
	return ids
}

func option(t *testing.T, w *Widget, col int, key string) OptionView {
	t.Helper()
	for _, o := range w.View().Columns[col].Options {
		if o.Key == key {
			return o
		}
	}
	t.Fatalf("option %q not found in column %d", key, col)
	return OptionView{}
}

// assertSelectAllConsistent checks that select-all is checked exactly when
// every visible top-level option is checked.
func assertSelectAllConsistent(t *testing.T, w *Widget) {
	t.Helper()
	for _, cv := range w.View().Columns {
		all, seen := true, false
		for _, o := range cv.Options {
			if o.Depth != 0 || o.Hidden || o.Filtered {
				continue
			}
			seen = true
			all = all && o.Checked
		}
		if seen {
			assert.Equal(t, all, cv.SelectAll.Checked, "column %s", cv.Name)
		}
	}
}

func TestWidget_InitialState(t *testing.T) {
	w := newTestWidget(t, exampleRows())
	v := w.View()

	assert.Equal(t, 3, v.VisibleCount)
	assert.Equal(t, 3, v.TotalCount)
	assert.False(t, v.ClearAllEnabled)
	assert.Equal(t, "Page 1 of 1", v.Pager.Label)
	require.Len(t, v.Columns, 4)
	for _, cv := range v.Columns {
		assert.True(t, cv.SelectAll.Checked, cv.Name)
		assert.False(t, cv.ClearEnabled, cv.Name)
		assert.Equal(t, ModeContains, cv.Mode)
		for _, o := range cv.Options {
			assert.True(t, o.Checked, "%s/%s", cv.Name, o.Key)
			assert.False(t, o.Hidden, "%s/%s", cv.Name, o.Key)
		}
	}
}

func TestWidget_CrossColumnApproval(t *testing.T) {
	t.Run("country UK unchecked", func(t *testing.T) {
		w := newTestWidget(t, exampleRows())
		require.NoError(t, w.ToggleValue(colCountry, "UK", false))

		approved, err := w.Approved(colProject)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, approved)
		assert.Equal(t, []int{0, 1}, visibleIDs(w))
	})

	t.Run("project B unchecked", func(t *testing.T) {
		w := newTestWidget(t, exampleRows())
		require.NoError(t, w.ToggleValue(colProject, "B", false))

		approved, err := w.Approved(colCountry)
		require.NoError(t, err)
		assert.Equal(t, []string{"UK", "US"}, approved)
	})

	t.Run("both unchecked", func(t *testing.T) {
		w := newTestWidget(t, exampleRows())
		require.NoError(t, w.ToggleValue(colCountry, "UK", false))
		require.NoError(t, w.ToggleValue(colProject, "B", false))

		assert.Equal(t, []int{0}, visibleIDs(w))
		assert.True(t, option(t, w, colPrice, "$20").Hidden)
		assert.False(t, option(t, w, colPrice, "$10").Hidden)
		// The column's own filter never hides its options.
		assert.False(t, option(t, w, colCountry, "UK").Hidden)
		assert.False(t, option(t, w, colProject, "B").Hidden)
		assertSelectAllConsistent(t, w)
	})
}

func TestWidget_GlobalSearch(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	w.SetGlobalSearch("us")
	assert.Equal(t, []int{0, 1}, visibleIDs(w))
	assert.True(t, w.ClearAllEnabled())

	w.SetGlobalSearch("US")
	assert.Equal(t, []int{0, 1}, visibleIDs(w))

	w.SetGlobalSearch("2023-02")
	assert.Equal(t, []int{1}, visibleIDs(w))
	assert.True(t, option(t, w, colCountry, "UK").Hidden)

	w.SetGlobalSearch("")
	assert.Equal(t, []int{0, 1, 2}, visibleIDs(w))
	assert.False(t, w.ClearAllEnabled())
}

func TestWidget_Pagination(t *testing.T) {
	var cells [][]string
	for i := 0; i < 30; i++ {
		cells = append(cells, []string{fmt.Sprintf("P%02d", i), "US", "$1", "2023-01-01"})
	}
	w := newTestWidget(t, cells)

	assert.Equal(t, 2, w.Page().Count)
	assert.Len(t, w.PageRows(), 25)

	w.GoToPage(PageTarget{Kind: ButtonNext})
	assert.Equal(t, 2, w.Page().Current)
	assert.Equal(t, "Page 2 of 2", w.Page().Label)
	rows := w.PageRows()
	require.Len(t, rows, 5)
	assert.Equal(t, 25, rows[0].ID)

	w.GoToPage(PageTarget{Kind: ButtonNext})
	assert.Equal(t, 2, w.Page().Current, "next clamps at the last page")

	// Any filter mutation returns to page 1.
	require.NoError(t, w.SetColumnSearch(colProject, "P0"))
	assert.Equal(t, 1, w.Page().Current)
	assert.Equal(t, 10, w.VisibleCount())
}

func TestWidget_SelectAll(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	require.NoError(t, w.ToggleSelectAll(colCountry, false))
	assert.Empty(t, visibleIDs(w))
	cv := w.View().Columns[colCountry]
	assert.False(t, cv.SelectAll.Checked)
	assert.True(t, cv.ClearEnabled)
	for _, o := range cv.Options {
		assert.False(t, o.Checked)
	}
	// Nothing else can be reached, so other columns hide every option.
	assert.True(t, w.View().Columns[colProject].SelectAll.Hidden)

	require.NoError(t, w.ToggleValue(colCountry, "US", true))
	assert.False(t, w.View().Columns[colCountry].SelectAll.Checked)
	require.NoError(t, w.ToggleValue(colCountry, "UK", true))
	assert.True(t, w.View().Columns[colCountry].SelectAll.Checked)
	assert.Equal(t, []int{0, 1, 2}, visibleIDs(w))
	assertSelectAllConsistent(t, w)
}

func TestWidget_SelectAllFollowsVisibleOptions(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	require.NoError(t, w.ToggleValue(colCountry, "UK", false))
	require.NoError(t, w.ToggleValue(colProject, "B", false))
	assertSelectAllConsistent(t, w)

	// Price $20 is hidden and unchecking it leaves all visible options checked.
	require.NoError(t, w.ToggleValue(colPrice, "$20", false))
	assert.True(t, w.View().Columns[colPrice].SelectAll.Checked)
	assert.Equal(t, []int{0}, visibleIDs(w))
	assertSelectAllConsistent(t, w)

	// Re-checking B makes $20 visible again and unchecked.
	require.NoError(t, w.ToggleValue(colProject, "B", true))
	assert.False(t, option(t, w, colPrice, "$20").Hidden)
	assert.False(t, w.View().Columns[colPrice].SelectAll.Checked)
	assert.Equal(t, []int{0}, visibleIDs(w))
	assertSelectAllConsistent(t, w)
}

func TestWidget_ColumnSearch(t *testing.T) {
	rows := append(exampleRows(), []string{"Alpha", "", "$5", "2023-03-01"})

	tests := []struct {
		name         string
		mode         FilterMode
		text         string
		wantVisible  []int
		wantFiltered []string
	}{
		{
			name:         "contains keeps matches",
			mode:         ModeContains,
			text:         "u",
			wantVisible:  []int{0, 1, 2},
			wantFiltered: []string{""},
		},
		{
			name:         "contains matches blanks label",
			mode:         ModeContains,
			text:         "blank",
			wantVisible:  []int{3},
			wantFiltered: []string{"UK", "US"},
		},
		{
			name:         "not-contains drops matches",
			mode:         ModeNotContains,
			text:         "k",
			wantVisible:  []int{0, 1},
			wantFiltered: []string{"", "UK"},
		},
		{
			name:         "not-contains with empty text keeps all",
			mode:         ModeNotContains,
			text:         "",
			wantVisible:  []int{0, 1, 2, 3},
			wantFiltered: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWidget(t, rows)
			require.NoError(t, w.SetFilterMode(colCountry, tt.mode))
			require.NoError(t, w.SetColumnSearch(colCountry, tt.text))

			assert.Equal(t, tt.wantVisible, visibleIDs(w))
			var filtered []string
			for _, o := range w.View().Columns[colCountry].Options {
				if o.Filtered {
					filtered = append(filtered, o.Key)
				}
			}
			assert.ElementsMatch(t, tt.wantFiltered, filtered)
			assert.Equal(t, tt.text != "", w.View().Columns[colCountry].ClearEnabled)
		})
	}
}

func TestWidget_ClearFilter(t *testing.T) {
	w := newTestWidget(t, exampleRows())
	fresh := newTestWidget(t, exampleRows())

	require.NoError(t, w.SetFilterMode(colCountry, ModeNotContains))
	require.NoError(t, w.SetColumnSearch(colCountry, "us"))
	require.NoError(t, w.ToggleValue(colCountry, "UK", false))
	assert.Empty(t, visibleIDs(w))

	require.NoError(t, w.ClearFilter(colCountry))
	assert.Equal(t, fresh.View(), w.View())
}

func TestWidget_ClearAllRestoresDefaults(t *testing.T) {
	rows := append(exampleRows(),
		[]string{"C", "FR", "", "2022-12-31"},
		[]string{"", "US", "$7", ""},
	)
	w := newTestWidget(t, rows)
	fresh := newTestWidget(t, rows)

	require.NoError(t, w.SetFilterMode(colProject, ModeNotContains))
	require.NoError(t, w.SetColumnSearch(colProject, "a"))
	require.NoError(t, w.ToggleValue(colCountry, "FR", false))
	require.NoError(t, w.ToggleValue(colDate, "2023-02", false))
	require.NoError(t, w.ToggleExpanded(colDate, "2022"))
	require.NoError(t, w.ToggleSelectAll(colPrice, false))
	w.SetGlobalSearch("x")
	assert.True(t, w.ClearAllEnabled())

	w.ClearAllFilters()
	assert.Equal(t, fresh.View(), w.View())
	assert.False(t, w.ClearAllEnabled())
}

func TestWidget_UncheckSelectAllHidesEveryRow(t *testing.T) {
	w := newTestWidget(t, exampleRows())
	require.NoError(t, w.ToggleSelectAll(colCountry, false))
	assert.Equal(t, 0, w.VisibleCount())
	assert.Empty(t, w.PageRows())
	assert.True(t, w.ClearAllEnabled())

	require.NoError(t, w.ToggleSelectAll(colCountry, true))
	assert.Equal(t, len(exampleRows()), w.VisibleCount())
}

func TestWidget_Idempotence(t *testing.T) {
	commands := []Command{
		{Op: OpToggle, Column: colCountry, Key: "UK", Checked: false},
		{Op: OpToggle, Column: colDate, Key: "2023", Checked: false},
		{Op: OpToggleAll, Column: colPrice, Checked: true},
		{Op: OpSetMode, Column: colProject, Mode: ModeNotContains},
		{Op: OpSetColumnSearch, Column: colProject, Text: "b"},
		{Op: OpSetSearch, Column: -1, Text: "us"},
		{Op: OpClearFilter, Column: colCountry},
		{Op: OpClearAll, Column: -1},
	}
	for _, cmd := range commands {
		t.Run(string(cmd.Op), func(t *testing.T) {
			w := newTestWidget(t, exampleRows())
			require.NoError(t, w.Apply(cmd))
			once := w.View()
			require.NoError(t, w.Apply(cmd))
			assert.Equal(t, once, w.View())
		})
	}
}

func TestWidget_Apply_Errors(t *testing.T) {
	w := newTestWidget(t, exampleRows())

	err := w.Apply(Command{Op: OpToggle, Column: 9, Key: "A"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, OpToggle, cmdErr.Op)

	assert.ErrorIs(t, w.Apply(Command{Op: OpToggle, Column: colCountry, Key: "DE"}), ErrUnknownOption)
	assert.ErrorIs(t, w.Apply(Command{Op: OpExpand, Column: colCountry, Key: "US"}), ErrNotDateColumn)
	assert.ErrorIs(t, w.Apply(Command{Op: "explode"}), ErrUnknownCommand)
	assert.Error(t, w.Apply(Command{Op: OpSetMode, Column: colCountry, Mode: "fuzzy"}))
	assert.Error(t, w.Apply(Command{Op: OpPage, Page: "zero"}))
}

func TestWidget_EmptyDataset(t *testing.T) {
	w := newTestWidget(t, nil)
	v := w.View()

	assert.Equal(t, 0, v.VisibleCount)
	assert.Equal(t, 1, v.Pager.Count)
	assert.Equal(t, "Page 1 of 1", v.Pager.Label)
	assert.Empty(t, v.Rows)
	for _, cv := range v.Columns {
		assert.Empty(t, cv.Options)
		assert.True(t, cv.SelectAll.Hidden)
	}
}
