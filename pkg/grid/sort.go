package grid

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortDirection orders a column sort.
type SortDirection string

// Sort directions.
const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

type compareFunc func(a, b string) int

// sortRows stably reorders order by column col. Blank cells always go last.
func sortRows(rows []Row, order []int, col int, kind Kind, dir SortDirection) {
	cmp := comparator(rows, order, col, kind)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := rows[order[i]].Cells[col], rows[order[j]].Cells[col]
		switch {
		case a == "" && b != "":
			return false
		case a != "" && b == "":
			return true
		}
		if dir == SortDescending {
			return cmp(a, b) > 0
		}
		return cmp(a, b) < 0
	})
}

// comparator picks date comparison for date columns, numeric comparison
// when the first row in the current order holds a non-zero number, and
// byte-wise string comparison otherwise.
func comparator(rows []Row, order []int, col int, kind Kind) compareFunc {
	if kind == KindDate {
		return compareDates
	}
	if len(order) > 0 {
		if d, ok := parseNumber(rows[order[0]].Cells[col]); ok && !d.IsZero() {
			return compareNumbers
		}
	}
	return strings.Compare
}

// parseNumber reads a whole cell as a number, allowing a leading "$".
// It decides whether a column sorts numerically.
func parseNumber(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var numberPrefix = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// leadingNumber reads the longest numeric prefix of s, so "12abc" is 12.
// A zero or missing prefix retries without the first character, which
// lets "$12" read as 12. Anything else is 0.
func leadingNumber(s string) decimal.Decimal {
	for _, c := range []string{s, dropFirst(s)} {
		m := numberPrefix.FindString(c)
		if m == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(m))
		if err == nil && !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

func dropFirst(s string) string {
	for i := range s {
		if i > 0 {
			return s[i:]
		}
	}
	return ""
}

func compareNumbers(a, b string) int {
	return leadingNumber(a).Cmp(leadingNumber(b))
}

// compareDates orders malformed dates after every valid one. Malformed
// dates compare equal to each other and keep their relative order.
func compareDates(a, b string) int {
	ta, errA := time.Parse(dateLayout, a)
	tb, errB := time.Parse(dateLayout, b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ta.Compare(tb)
}
