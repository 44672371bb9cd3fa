package grid

// approve computes, for every column i, the raw values that occur in rows
// matching the global search and selected by every column other than i.
//
// selected[r][j] is IsSelected(j, row r). A row failing no column
// contributes all its cells; a row failing exactly one column k contributes
// only its cell in k. Rows failing two or more columns contribute nothing.
func approve(rows []Row, matches []bool, selected [][]bool, ncols int) []map[string]struct{} {
	approved := make([]map[string]struct{}, ncols)
	for i := range approved {
		approved[i] = make(map[string]struct{})
	}
	for r, row := range rows {
		if !matches[r] {
			continue
		}
		failed, fails := -1, 0
		for j := 0; j < ncols; j++ {
			if !selected[r][j] {
				failed = j
				fails++
				if fails > 1 {
					break
				}
			}
		}
		switch fails {
		case 0:
			for j := 0; j < ncols; j++ {
				approved[j][row.Cells[j]] = struct{}{}
			}
		case 1:
			approved[failed][row.Cells[failed]] = struct{}{}
		}
	}
	return approved
}

// selection evaluates IsSelected for every cell.
func selection(cols []*column, rows []Row) [][]bool {
	out := make([][]bool, len(rows))
	for r, row := range rows {
		sel := make([]bool, len(cols))
		for j, c := range cols {
			sel[j] = c.isSelected(row.Cells[j])
		}
		out[r] = sel
	}
	return out
}

// applyApproved hides options whose value is not approved. A month or year
// is hidden once none of its children is both unhidden and unfiltered.
func (c *column) applyApproved(approved map[string]struct{}) {
	for i := range c.nodes {
		n := &c.nodes[i]
		if n.level.leaf() {
			_, ok := approved[n.key]
			n.hidden = !ok
		}
	}
	if c.isDate() {
		for _, yi := range c.roots {
			year := &c.nodes[yi]
			if year.level != levelYear {
				continue
			}
			anyMonth := false
			for _, mi := range year.children {
				month := &c.nodes[mi]
				anyDay := false
				for _, di := range month.children {
					if c.nodes[di].visible() {
						anyDay = true
						break
					}
				}
				month.hidden = !anyDay
				if month.visible() {
					anyMonth = true
				}
			}
			year.hidden = !anyMonth
		}
	}

	c.selectAll.hidden = len(approved) == 0
	c.selectAll.filtered = true
	for i := range c.nodes {
		if c.nodes[i].level.leaf() && c.nodes[i].visible() {
			c.selectAll.filtered = false
			break
		}
	}
}

// updateClearEnabled enables the clear-filter action when an unhidden option
// is unchecked or the column has search text.
func (c *column) updateClearEnabled() {
	enabled := c.search != ""
	if !enabled && !c.selectAll.hidden && !c.selectAll.checked {
		enabled = true
	}
	for i := 0; !enabled && i < len(c.nodes); i++ {
		if !c.nodes[i].hidden && !c.nodes[i].checked {
			enabled = true
		}
	}
	c.clearEnabled = enabled
}
