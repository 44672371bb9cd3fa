package grid

import "strings"

// matchGlobal reports whether each row's text contains the global search.
func matchGlobal(rows []Row, search string) []bool {
	out := make([]bool, len(rows))
	needle := fold(search)
	for i := range rows {
		out[i] = needle == "" || strings.Contains(rows[i].text, needle)
	}
	return out
}

// evaluate decides row visibility: the global search must match and every
// column must select the row's cell. A column whose select-all is checked,
// with no search text and nothing actually unchecked, is skipped.
func evaluate(cols []*column, matches []bool, selected [][]bool) []bool {
	skip := make([]bool, len(cols))
	for j, c := range cols {
		skip[j] = !c.constrained() && c.fullySelected()
	}

	visible := make([]bool, len(matches))
	for r := range matches {
		if !matches[r] {
			continue
		}
		ok := true
		for j := range cols {
			if !skip[j] && !selected[r][j] {
				ok = false
				break
			}
		}
		visible[r] = ok
	}
	return visible
}
