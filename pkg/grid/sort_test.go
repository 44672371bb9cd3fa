package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageColumn(w *Widget, col int) []string {
	var out []string
	for _, r := range w.PageRows() {
		out = append(out, r.Cells[col])
	}
	return out
}

func sortRowsFixture() [][]string {
	return [][]string{
		{"beta", "US", "$10", "2023-03-01"},
		{"", "US", "$5", "2021-01-01"},
		{"Alpha", "UK", "", "2023-01-15"},
		{"alpha", "FR", "$100", ""},
		{"Gamma", "DE", "$20", "2022-06-30"},
	}
}

func TestWidget_Sort(t *testing.T) {
	tests := []struct {
		name string
		col  int
		dir  SortDirection
		want []string
	}{
		{"strings ascending", colProject, SortAscending, []string{"Alpha", "Gamma", "alpha", "beta", ""}},
		{"strings descending", colProject, SortDescending, []string{"beta", "alpha", "Gamma", "Alpha", ""}},
		{"numbers ascending", colPrice, SortAscending, []string{"$5", "$10", "$20", "$100", ""}},
		{"numbers descending", colPrice, SortDescending, []string{"$100", "$20", "$10", "$5", ""}},
		{"dates ascending", colDate, SortAscending, []string{"2021-01-01", "2022-06-30", "2023-01-15", "2023-03-01", ""}},
		{"dates descending", colDate, SortDescending, []string{"2023-03-01", "2023-01-15", "2022-06-30", "2021-01-01", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWidget(t, sortRowsFixture())
			require.NoError(t, w.Sort(tt.col, tt.dir))
			assert.Equal(t, tt.want, pageColumn(w, tt.col))
		})
	}
}

func TestWidget_SortKeepsFiltersAndResetsPage(t *testing.T) {
	var cells [][]string
	for i := 0; i < 60; i++ {
		country := "US"
		if i%2 == 1 {
			country = "UK"
		}
		cells = append(cells, []string{"P", country, "$" + string(rune('1'+i%9)), "2023-01-01"})
	}
	w := newTestWidget(t, cells)
	require.NoError(t, w.ToggleValue(colCountry, "UK", false))
	w.GoToPage(PageTarget{Kind: ButtonLast})
	require.Equal(t, 2, w.Page().Current)

	require.NoError(t, w.Sort(colPrice, SortDescending))
	assert.Equal(t, 1, w.Page().Current)
	assert.Equal(t, 30, w.VisibleCount())
	for _, r := range w.PageRows() {
		assert.Equal(t, "US", r.Cells[colCountry])
	}
	assert.Equal(t, "$9", w.PageRows()[0].Cells[colPrice])
}

func TestWidget_SortIsStable(t *testing.T) {
	w := newTestWidget(t, [][]string{
		{"a", "US", "$1", "2023-01-01"},
		{"b", "UK", "$1", "2023-01-01"},
		{"c", "US", "$1", "2023-01-01"},
		{"d", "UK", "$1", "2023-01-01"},
	})
	require.NoError(t, w.Sort(colCountry, SortAscending))
	assert.Equal(t, []string{"b", "d", "a", "c"}, pageColumn(w, colProject))
}

func TestComparator_FirstRowDecides(t *testing.T) {
	// A leading zero price is not treated as numeric, so the column
	// compares as text.
	w := newTestWidget(t, [][]string{
		{"a", "US", "$0", "2023-01-01"},
		{"b", "US", "$100", "2023-01-01"},
		{"c", "US", "$20", "2023-01-01"},
	})
	require.NoError(t, w.Sort(colPrice, SortAscending))
	assert.Equal(t, []string{"$0", "$100", "$20"}, pageColumn(w, colPrice))

	assert.ErrorIs(t, w.Sort(7, SortAscending), ErrColumnOutOfRange)
}

func TestCompareNumbers_LeadingPrefix(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"trailing text", "12abc", "11", 1},
		{"dollar", "$12", "12", 0},
		{"dollar with text", "$5 each", "$40", -1},
		{"fraction", "12.5kg", "12", 1},
		{"unreadable is zero", "n/a", "0", 0},
		{"negative", "-3", "$1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareNumbers(tt.a, tt.b))
			assert.Equal(t, -tt.want, compareNumbers(tt.b, tt.a))
		})
	}
}

func TestCompareDates_MalformedAfterValid(t *testing.T) {
	assert.Equal(t, -1, compareDates("2023-01-01", "2023-13-45"))
	assert.Equal(t, 1, compareDates("soon", "1999-12-31"))
	assert.Equal(t, 0, compareDates("soon", "later"))
	assert.Equal(t, -1, compareDates("2021-01-01", "2022-01-01"))

	w := newTestWidget(t, [][]string{
		{"a", "US", "$1", "soon"},
		{"b", "US", "$1", "2023-05-01"},
		{"c", "US", "$1", ""},
		{"d", "US", "$1", "2021-02-03"},
		{"e", "US", "$1", "later"},
	})
	require.NoError(t, w.Sort(colDate, SortAscending))
	assert.Equal(t, []string{"d", "b", "a", "e", "c"}, pageColumn(w, colProject))
}

func TestWidget_SortNumericReadsLeadingNumber(t *testing.T) {
	w := newTestWidget(t, [][]string{
		{"a", "US", "$30", "2023-01-01"},
		{"b", "US", "120 approx", "2023-01-01"},
		{"c", "US", "$4", "2023-01-01"},
	})
	require.NoError(t, w.Sort(colPrice, SortAscending))
	assert.Equal(t, []string{"c", "a", "b"}, pageColumn(w, colProject))
}
