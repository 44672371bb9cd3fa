package grid

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// BlanksLabel is the option label shown for empty cells.
const BlanksLabel = "(Blanks)"

// SelectAllLabel is the label of the synthetic select-all option.
const SelectAllLabel = "(Select All)"

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ColumnValues is the distinct-value index of one column.
type ColumnValues struct {
	Kind Kind
	// Values holds the sorted distinct non-blank values of a categorical column.
	Values []string
	// Years holds the date hierarchy of a date column, newest year first.
	Years     []YearValues
	HasBlanks bool
}

// YearValues is one year of a date hierarchy.
type YearValues struct {
	Year   string
	Months []MonthValues
}

// MonthValues is one month of a date hierarchy. Month is the two-digit number.
type MonthValues struct {
	Month string
	Days  []string
}

// Index derives the distinct values of every column.
func Index(ds *Dataset) []ColumnValues {
	out := make([]ColumnValues, len(ds.Columns))
	for i, def := range ds.Columns {
		if def.Kind == KindDate {
			out[i] = indexDates(ds.Rows, i)
		} else {
			out[i] = indexValues(ds.Rows, i)
		}
	}
	return out
}

func indexValues(rows []Row, col int) ColumnValues {
	cv := ColumnValues{Kind: KindCategorical}
	seen := make(map[string]struct{})
	for _, r := range rows {
		v := r.Cells[col]
		if v == "" {
			cv.HasBlanks = true
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cv.Values = append(cv.Values, v)
	}
	sort.Strings(cv.Values)
	return cv
}

// indexDates builds year -> month -> day. Cells that do not parse as
// YYYY-MM-DD are left out of the hierarchy.
func indexDates(rows []Row, col int) ColumnValues {
	cv := ColumnValues{Kind: KindDate}
	tree := make(map[string]map[string]map[string]struct{})
	for _, r := range rows {
		v := r.Cells[col]
		if v == "" {
			cv.HasBlanks = true
			continue
		}
		y, m, d, ok := splitDate(v)
		if !ok {
			continue
		}
		months, ok := tree[y]
		if !ok {
			months = make(map[string]map[string]struct{})
			tree[y] = months
		}
		days, ok := months[m]
		if !ok {
			days = make(map[string]struct{})
			months[m] = days
		}
		days[d] = struct{}{}
	}

	years := sortedKeys(tree)
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	for _, y := range years {
		yv := YearValues{Year: y}
		for _, m := range sortedKeys(tree[y]) {
			yv.Months = append(yv.Months, MonthValues{Month: m, Days: sortedKeys(tree[y][m])})
		}
		cv.Years = append(cv.Years, yv)
	}
	return cv
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitDate parses a YYYY-MM-DD cell into its zero-padded parts.
func splitDate(v string) (year, month, day string, ok bool) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return "", "", "", false
	}
	s := t.Format(dateLayout)
	return s[:4], s[5:7], s[8:10], true
}

// MonthName returns the English name of a two-digit month number.
func MonthName(month string) string {
	n, err := strconv.Atoi(month)
	if err != nil || n < 1 || n > 12 {
		return month
	}
	return monthNames[n-1]
}

// fold lower-cases text for case-insensitive matching.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}
