package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateRows() [][]string {
	return [][]string{
		{"A", "US", "$1", "2023-01-01"},
		{"B", "US", "$2", "2023-01-15"},
		{"C", "UK", "$3", "2023-02-01"},
		{"D", "UK", "$4", "2022-12-31"},
		{"E", "FR", "$5", ""},
		{"F", "FR", "$6", "garbage"},
	}
}

func optionKeys(cv ColumnView) []string {
	keys := make([]string, 0, len(cv.Options))
	for _, o := range cv.Options {
		keys = append(keys, o.Key)
	}
	return keys
}

func TestDateColumn_Hierarchy(t *testing.T) {
	w := newTestWidget(t, dateRows())
	cv := w.View().Columns[colDate]

	assert.Equal(t, []string{
		"2023", "2023-01", "2023-01-01", "2023-01-15", "2023-02", "2023-02-01",
		"2022", "2022-12", "2022-12-31",
		"",
	}, optionKeys(cv))

	labels := make([]string, 0, len(cv.Options))
	for _, o := range cv.Options {
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []string{
		"2023", "January", "01", "15", "February", "01",
		"2022", "December", "31",
		BlanksLabel,
	}, labels)

	// Collapsed by default: only years and blanks are shown.
	for _, o := range cv.Options {
		assert.Equal(t, o.Depth == 0, o.Shown, o.Key)
	}
	// The malformed date does not break anything and stays visible.
	assert.Equal(t, 6, w.VisibleCount())
}

func TestDateColumn_Cascade(t *testing.T) {
	w := newTestWidget(t, dateRows())

	require.NoError(t, w.ToggleValue(colDate, "2023", false))
	for _, key := range []string{"2023", "2023-01", "2023-01-01", "2023-01-15", "2023-02", "2023-02-01"} {
		assert.False(t, option(t, w, colDate, key).Checked, key)
	}
	assert.True(t, option(t, w, colDate, "2022").Checked)
	assert.False(t, w.View().Columns[colDate].SelectAll.Checked)
	assert.Equal(t, []int{3, 4}, visibleIDs(w))

	// Checking one day of January leaves the month unchecked.
	require.NoError(t, w.ToggleValue(colDate, "2023-01-01", true))
	assert.False(t, option(t, w, colDate, "2023-01").Checked)
	assert.False(t, option(t, w, colDate, "2023").Checked)

	// Completing January checks the month but not the year.
	require.NoError(t, w.ToggleValue(colDate, "2023-01-15", true))
	assert.True(t, option(t, w, colDate, "2023-01").Checked)
	assert.False(t, option(t, w, colDate, "2023").Checked)

	// Completing the year checks the year and select-all.
	require.NoError(t, w.ToggleValue(colDate, "2023-02", true))
	assert.True(t, option(t, w, colDate, "2023-02-01").Checked)
	assert.True(t, option(t, w, colDate, "2023").Checked)
	assert.True(t, w.View().Columns[colDate].SelectAll.Checked)
	assertSelectAllConsistent(t, w)

	// Unchecking a day unchecks its month and year.
	require.NoError(t, w.ToggleValue(colDate, "2022-12-31", false))
	assert.False(t, option(t, w, colDate, "2022-12").Checked)
	assert.False(t, option(t, w, colDate, "2022").Checked)
	assert.False(t, w.View().Columns[colDate].SelectAll.Checked)
}

func TestDateColumn_MalformedRows(t *testing.T) {
	w := newTestWidget(t, dateRows())

	// Constraining the date column drops the malformed row.
	require.NoError(t, w.ToggleValue(colDate, "", false))
	assert.Equal(t, []int{0, 1, 2, 3}, visibleIDs(w))

	require.NoError(t, w.ToggleValue(colDate, "", true))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, visibleIDs(w))

	// Other columns still filter it.
	require.NoError(t, w.ToggleValue(colProject, "F", false))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, visibleIDs(w))
}

func TestDateColumn_Search(t *testing.T) {
	tests := []struct {
		name         string
		mode         FilterMode
		text         string
		wantVisible  []int
		wantFiltered []string
	}{
		{
			name:        "contains month name keeps the year",
			mode:        ModeContains,
			text:        "jan",
			wantVisible: []int{0, 1},
			wantFiltered: []string{
				"2023-02", "2023-02-01",
				"2022", "2022-12", "2022-12-31",
				"",
			},
		},
		{
			name:        "contains year keeps the whole year",
			mode:        ModeContains,
			text:        "2022",
			wantVisible: []int{3},
			wantFiltered: []string{
				"2023", "2023-01", "2023-01-01", "2023-01-15", "2023-02", "2023-02-01",
				"",
			},
		},
		{
			name:        "contains day label keeps ancestors",
			mode:        ModeContains,
			text:        "15",
			wantVisible: []int{1},
			wantFiltered: []string{
				"2023-01-01", "2023-02", "2023-02-01",
				"2022", "2022-12", "2022-12-31",
				"",
			},
		},
		{
			name:         "not-contains year drops its subtree",
			mode:         ModeNotContains,
			text:         "2022",
			wantVisible:  []int{0, 1, 2, 4},
			wantFiltered: []string{"2022", "2022-12", "2022-12-31"},
		},
		{
			name:         "not-contains day drops matching days only",
			mode:         ModeNotContains,
			text:         "01",
			wantVisible:  []int{1, 3, 4},
			wantFiltered: []string{"2023-01-01", "2023-02-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWidget(t, dateRows())
			require.NoError(t, w.SetFilterMode(colDate, tt.mode))
			require.NoError(t, w.SetColumnSearch(colDate, tt.text))

			assert.Equal(t, tt.wantVisible, visibleIDs(w))
			var filtered []string
			for _, o := range w.View().Columns[colDate].Options {
				if o.Filtered {
					filtered = append(filtered, o.Key)
				}
				if o.Depth > 0 {
					assert.True(t, o.Shown, "search expands %s", o.Key)
				}
			}
			assert.Equal(t, tt.wantFiltered, filtered)
		})
	}
}

func TestDateColumn_SearchClearCollapses(t *testing.T) {
	w := newTestWidget(t, dateRows())

	require.NoError(t, w.SetColumnSearch(colDate, "20"))
	assert.True(t, option(t, w, colDate, "2023-01-01").Shown)

	require.NoError(t, w.SetColumnSearch(colDate, ""))
	assert.False(t, option(t, w, colDate, "2023-01").Shown)
	assert.False(t, option(t, w, colDate, "2023").Expanded)
}

func TestDateColumn_ToggleExpanded(t *testing.T) {
	w := newTestWidget(t, dateRows())

	require.NoError(t, w.ToggleExpanded(colDate, "2023"))
	assert.True(t, option(t, w, colDate, "2023-01").Shown)
	assert.False(t, option(t, w, colDate, "2023-01-01").Shown)

	require.NoError(t, w.ToggleExpanded(colDate, "2023-01"))
	assert.True(t, option(t, w, colDate, "2023-01-01").Shown)

	// Collapsing the year collapses its months.
	require.NoError(t, w.ToggleExpanded(colDate, "2023"))
	assert.False(t, option(t, w, colDate, "2023-01").Shown)
	assert.False(t, option(t, w, colDate, "2023-01").Expanded)

	assert.ErrorIs(t, w.ToggleExpanded(colDate, "2023-01-01"), ErrUnknownOption)
	assert.ErrorIs(t, w.ToggleExpanded(colDate, ""), ErrUnknownOption)
}

func TestDateColumn_HiddenByOtherColumns(t *testing.T) {
	w := newTestWidget(t, dateRows())

	require.NoError(t, w.ToggleValue(colCountry, "UK", false))
	assert.True(t, option(t, w, colDate, "2023-02-01").Hidden)
	assert.True(t, option(t, w, colDate, "2023-02").Hidden, "month without visible days")
	assert.False(t, option(t, w, colDate, "2023").Hidden)
	assert.True(t, option(t, w, colDate, "2022").Hidden, "year without visible months")
	assert.False(t, option(t, w, colDate, "").Hidden)
}

func TestDateColumn_Blanks(t *testing.T) {
	rows := [][]string{{"A", "US", "$1", "2023-01-01"}}

	t.Run("gated on a blank existing", func(t *testing.T) {
		w := newTestWidget(t, rows)
		assert.Equal(t, []string{"2023", "2023-01", "2023-01-01"}, optionKeys(w.View().Columns[colDate]))
	})

	t.Run("always shown", func(t *testing.T) {
		w := New(NewDatasetFromCells(DefaultColumns(), rows), Options{AlwaysShowDateBlanks: true}, nil)
		cv := w.View().Columns[colDate]
		assert.Equal(t, []string{"2023", "2023-01", "2023-01-01", ""}, optionKeys(cv))
		// Nothing is blank, so the option is never approved.
		assert.True(t, cv.Options[3].Hidden)
		assert.True(t, cv.SelectAll.Checked)
	})
}
