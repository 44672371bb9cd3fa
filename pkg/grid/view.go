package grid

// View is a render snapshot of a widget. Hosts apply it; it never feeds
// back into the widget.
type View struct {
	Columns         []ColumnView `json:"columns"`
	Rows            []RowView    `json:"rows"`
	Visible         []bool       `json:"visible"`
	VisibleCount    int          `json:"visible_count"`
	TotalCount      int          `json:"total_count"`
	Pager           Pager        `json:"pager"`
	Search          string       `json:"search"`
	ClearAllEnabled bool         `json:"clear_all_enabled"`
}

// ColumnView is the popup state of one column.
type ColumnView struct {
	Index        int          `json:"index"`
	Name         string       `json:"name"`
	Kind         Kind         `json:"kind"`
	Mode         FilterMode   `json:"mode"`
	Search       string       `json:"search"`
	SelectAll    OptionView   `json:"select_all"`
	Options      []OptionView `json:"options"`
	ClearEnabled bool         `json:"clear_enabled"`
	// Filtered is true while the column narrows the visible rows.
	Filtered bool `json:"filtered"`
}

// OptionView is one checkbox. Date options are flattened depth first with
// Depth 0 for years, 1 for months and 2 for days.
type OptionView struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Depth    int    `json:"depth"`
	Checked  bool   `json:"checked"`
	Hidden   bool   `json:"hidden"`
	Filtered bool   `json:"filtered"`
	// Expandable marks years and months; Expanded is their open state.
	Expandable bool `json:"expandable,omitempty"`
	Expanded   bool `json:"expanded,omitempty"`
	// Shown is false while an ancestor is collapsed.
	Shown bool `json:"shown"`
}

// Visible reports whether the option is rendered in the popup list.
func (o OptionView) Visible() bool {
	return !o.Hidden && !o.Filtered && o.Shown
}

// RowView is one row of the current page.
type RowView struct {
	ID    int      `json:"id"`
	Cells []string `json:"cells"`
}

// View snapshots the widget for rendering.
func (w *Widget) View() View {
	v := View{
		Visible:         w.Visible(),
		VisibleCount:    w.VisibleCount(),
		TotalCount:      len(w.ds.Rows),
		Pager:           w.pager,
		Search:          w.search,
		ClearAllEnabled: w.clearAllEnabled,
	}
	v.Pager.Buttons = append([]PageButton(nil), w.pager.Buttons...)
	for i, c := range w.cols {
		v.Columns = append(v.Columns, c.view(i))
	}
	for _, r := range w.PageRows() {
		v.Rows = append(v.Rows, RowView{ID: r.ID, Cells: append([]string(nil), r.Cells...)})
	}
	return v
}

func (c *column) view(index int) ColumnView {
	cv := ColumnView{
		Index:        index,
		Name:         c.def.Name,
		Kind:         c.def.Kind,
		Mode:         c.mode,
		Search:       c.search,
		ClearEnabled: c.clearEnabled,
		Filtered:     c.constrained() || !c.fullySelected(),
		SelectAll: OptionView{
			Label:    c.selectAll.label,
			Checked:  c.selectAll.checked,
			Hidden:   c.selectAll.hidden,
			Filtered: c.selectAll.filtered,
			Shown:    true,
		},
	}
	for _, r := range c.roots {
		cv.Options = c.appendView(cv.Options, r, 0)
	}
	return cv
}

func (c *column) appendView(out []OptionView, i, depth int) []OptionView {
	n := &c.nodes[i]
	expandable := n.level == levelYear || n.level == levelMonth
	out = append(out, OptionView{
		Key:        n.key,
		Label:      n.label,
		Depth:      depth,
		Checked:    n.checked,
		Hidden:     n.hidden,
		Filtered:   n.filtered,
		Expandable: expandable,
		Expanded:   expandable && n.expanded,
		Shown:      c.shown(i),
	})
	for _, ch := range n.children {
		out = c.appendView(out, ch, depth+1)
	}
	return out
}
