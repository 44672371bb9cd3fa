package grid

import "fmt"

// FilterMode decides whether a column search keeps or drops matching options.
type FilterMode string

// Filter modes.
const (
	ModeContains    FilterMode = "contains"
	ModeNotContains FilterMode = "not-contains"
)

// ParseFilterMode accepts the mode names plus the short forms used by the REPL.
func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "contains", "c", "":
		return ModeContains, nil
	case "not-contains", "notcontains", "nc", "!":
		return ModeNotContains, nil
	}
	return "", fmt.Errorf("invalid filter mode %q", s)
}

type level uint8

const (
	levelValue level = iota
	levelYear
	levelMonth
	levelDay
	levelBlank
)

func (l level) leaf() bool {
	return l == levelValue || l == levelDay || l == levelBlank
}

// node is one checkbox of a column popup. Categorical columns hold a flat
// list of value nodes; date columns hold a year/month/day arena.
type node struct {
	key      string
	label    string
	level    level
	parent   int
	children []int

	checked  bool
	hidden   bool
	filtered bool
	expanded bool
}

func (n *node) visible() bool {
	return !n.hidden && !n.filtered
}

// column is the filter state of one column.
type column struct {
	def    ColumnDef
	mode   FilterMode
	search string

	nodes []node
	// roots are the top-level nodes: values, or years plus blanks.
	roots []int
	byKey map[string]int

	selectAll    node
	clearEnabled bool
}

// Options tune widget construction.
type Options struct {
	// AlwaysShowDateBlanks adds a (Blanks) option to every date column even
	// when no row has an empty date.
	AlwaysShowDateBlanks bool
}

func newColumn(def ColumnDef, cv ColumnValues, opts Options) *column {
	c := &column{
		def:       def,
		mode:      ModeContains,
		byKey:     make(map[string]int),
		selectAll: node{label: SelectAllLabel, parent: -1, checked: true},
	}
	if def.Kind == KindDate {
		for _, y := range cv.Years {
			yi := c.add(node{key: y.Year, label: y.Year, level: levelYear, parent: -1})
			c.roots = append(c.roots, yi)
			for _, m := range y.Months {
				mk := y.Year + "-" + m.Month
				mi := c.add(node{key: mk, label: MonthName(m.Month), level: levelMonth, parent: yi})
				c.nodes[yi].children = append(c.nodes[yi].children, mi)
				for _, d := range m.Days {
					di := c.add(node{key: mk + "-" + d, label: d, level: levelDay, parent: mi})
					c.nodes[mi].children = append(c.nodes[mi].children, di)
				}
			}
		}
		if cv.HasBlanks || opts.AlwaysShowDateBlanks {
			c.roots = append(c.roots, c.add(node{label: BlanksLabel, level: levelBlank, parent: -1}))
		}
		return c
	}

	for _, v := range cv.Values {
		c.roots = append(c.roots, c.add(node{key: v, label: v, level: levelValue, parent: -1}))
	}
	if cv.HasBlanks {
		c.roots = append(c.roots, c.add(node{label: BlanksLabel, level: levelBlank, parent: -1}))
	}
	return c
}

func (c *column) add(n node) int {
	n.checked = true
	c.nodes = append(c.nodes, n)
	i := len(c.nodes) - 1
	c.byKey[n.key] = i
	return i
}

func (c *column) isDate() bool {
	return c.def.Kind == KindDate
}

// constrained reports whether rows must be tested against this column.
func (c *column) constrained() bool {
	return !c.selectAll.checked || c.search != ""
}

// fullySelected reports whether every leaf is checked and unfiltered.
func (c *column) fullySelected() bool {
	for i := range c.nodes {
		n := &c.nodes[i]
		if n.level.leaf() && (!n.checked || n.filtered) {
			return false
		}
	}
	return true
}

// isSelected reports whether a raw cell value is in the column's effective
// checked set: checked and not hidden by the column search.
func (c *column) isSelected(raw string) bool {
	if !c.isDate() {
		i, ok := c.byKey[raw]
		if !ok {
			return false
		}
		n := &c.nodes[i]
		return n.checked && !n.filtered
	}

	if raw == "" {
		i, ok := c.byKey[""]
		return ok && c.nodes[i].checked && !c.nodes[i].filtered
	}
	y, m, d, ok := splitDate(raw)
	if !ok {
		return c.fullySelected()
	}
	di, ok := c.byKey[y+"-"+m+"-"+d]
	if !ok {
		return false
	}
	day := &c.nodes[di]
	month := &c.nodes[day.parent]
	year := &c.nodes[month.parent]
	return day.checked && !day.filtered && !month.filtered && !year.filtered
}

// toggle sets one option and cascades down to its descendants.
func (c *column) toggle(key string, checked bool) error {
	i, ok := c.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	c.setSubtree(i, checked)
	return nil
}

func (c *column) setSubtree(i int, checked bool) {
	c.nodes[i].checked = checked
	for _, ch := range c.nodes[i].children {
		c.setSubtree(ch, checked)
	}
}

// toggleAll checks or unchecks every option, hidden ones included.
func (c *column) toggleAll(checked bool) {
	c.selectAll.checked = checked
	for i := range c.nodes {
		c.nodes[i].checked = checked
	}
}

func (c *column) setMode(mode FilterMode) {
	c.mode = mode
}

// setSearch stores the option search text. Typing expands the whole date
// tree; clearing the text collapses it.
func (c *column) setSearch(text string) {
	c.search = text
	expand := text != ""
	for i := range c.nodes {
		if c.nodes[i].level == levelYear || c.nodes[i].level == levelMonth {
			c.nodes[i].expanded = expand
		}
	}
}

// toggleExpanded opens or closes a year or month. Closing a year closes
// its months too.
func (c *column) toggleExpanded(key string) error {
	if !c.isDate() {
		return ErrNotDateColumn
	}
	i, ok := c.byKey[key]
	if !ok || key == "" {
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	n := &c.nodes[i]
	if n.level != levelYear && n.level != levelMonth {
		return fmt.Errorf("%w: %q has no children", ErrUnknownOption, key)
	}
	n.expanded = !n.expanded
	if n.level == levelYear && !n.expanded {
		for _, m := range n.children {
			c.nodes[m].expanded = false
		}
	}
	return nil
}

// shown reports whether a node is rendered given its ancestors' expansion.
func (c *column) shown(i int) bool {
	for p := c.nodes[i].parent; p >= 0; p = c.nodes[p].parent {
		if !c.nodes[p].expanded {
			return false
		}
	}
	return true
}

// clear restores the column to its initial state.
func (c *column) clear() {
	c.mode = ModeContains
	c.search = ""
	c.selectAll.checked = true
	c.selectAll.filtered = false
	for i := range c.nodes {
		c.nodes[i].checked = true
		c.nodes[i].filtered = false
		c.nodes[i].expanded = false
	}
}

// applySearch recomputes the filtered flag of every option from the mode
// and search text.
func (c *column) applySearch() {
	text := c.search
	match := func(label string) bool { return containsFold(label, text) }

	if !c.isDate() {
		for i := range c.nodes {
			c.nodes[i].filtered = c.filterLeaf(match(c.nodes[i].label))
		}
		return
	}

	for _, r := range c.roots {
		n := &c.nodes[r]
		if n.level == levelBlank {
			n.filtered = c.filterLeaf(match(n.label))
			continue
		}
		if c.mode == ModeNotContains {
			c.excludeYear(r, match)
		} else {
			c.includeYear(r, match)
		}
	}
}

func (c *column) filterLeaf(matched bool) bool {
	if c.mode == ModeNotContains {
		return c.search != "" && matched
	}
	return !matched
}

// includeYear keeps a year when it or any descendant matches. A matching
// year or month keeps its whole subtree.
func (c *column) includeYear(yi int, match func(string) bool) {
	year := &c.nodes[yi]
	if match(year.label) {
		c.setFiltered(yi, false)
		return
	}
	year.filtered = true
	for _, mi := range year.children {
		month := &c.nodes[mi]
		if match(month.label) {
			year.filtered = false
			c.setFiltered(mi, false)
			continue
		}
		month.filtered = true
		for _, di := range month.children {
			day := &c.nodes[di]
			if match(day.label) {
				year.filtered = false
				month.filtered = false
				day.filtered = false
			} else {
				day.filtered = true
			}
		}
	}
}

// excludeYear drops a matching year or month with its subtree, and
// matching days.
func (c *column) excludeYear(yi int, match func(string) bool) {
	active := c.search != ""
	year := &c.nodes[yi]
	if active && match(year.label) {
		c.setFiltered(yi, true)
		return
	}
	year.filtered = false
	for _, mi := range year.children {
		month := &c.nodes[mi]
		if active && match(month.label) {
			c.setFiltered(mi, true)
			continue
		}
		month.filtered = false
		for _, di := range month.children {
			c.nodes[di].filtered = active && match(c.nodes[di].label)
		}
	}
}

func (c *column) setFiltered(i int, filtered bool) {
	c.nodes[i].filtered = filtered
	for _, ch := range c.nodes[i].children {
		c.setFiltered(ch, filtered)
	}
}
