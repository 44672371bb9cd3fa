package grid

import (
	"fmt"
	"log/slog"
)

// Widget is one table instance: an immutable dataset plus its filter, sort
// and page state. A Widget is not safe for concurrent use; hosts serialise
// commands.
type Widget struct {
	ds     *Dataset
	cols   []*column
	logger *slog.Logger

	// order is the current display order as indexes into ds.Rows.
	order   []int
	search  string
	visible []bool
	pager   Pager

	clearAllEnabled bool
}

// New indexes the dataset and builds a widget in its initial state: every
// option checked, contains mode, no search text, page 1. A nil logger
// discards output.
func New(ds *Dataset, opts Options, logger *slog.Logger) *Widget {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if ds == nil {
		ds = &Dataset{}
	}
	w := &Widget{
		ds:     ds,
		logger: logger,
		order:  make([]int, len(ds.Rows)),
	}
	for i := range w.order {
		w.order[i] = i
	}
	for i, cv := range Index(ds) {
		w.cols = append(w.cols, newColumn(ds.Columns[i], cv, opts))
	}
	w.refresh(1)
	logger.Debug("widget created", "rows", len(ds.Rows), "columns", len(ds.Columns))
	return w
}

// Columns returns the column definitions.
func (w *Widget) Columns() []ColumnDef {
	return w.ds.Columns
}

// Apply executes one command.
func (w *Widget) Apply(cmd Command) error {
	var err error
	switch cmd.Op {
	case OpSortAsc:
		err = w.Sort(cmd.Column, SortAscending)
	case OpSortDesc:
		err = w.Sort(cmd.Column, SortDescending)
	case OpSetMode:
		err = w.SetFilterMode(cmd.Column, cmd.Mode)
	case OpSetColumnSearch:
		err = w.SetColumnSearch(cmd.Column, cmd.Text)
	case OpToggle:
		err = w.ToggleValue(cmd.Column, cmd.Key, cmd.Checked)
	case OpToggleAll:
		err = w.ToggleSelectAll(cmd.Column, cmd.Checked)
	case OpExpand:
		err = w.ToggleExpanded(cmd.Column, cmd.Key)
	case OpSetSearch:
		w.SetGlobalSearch(cmd.Text)
	case OpClearFilter:
		err = w.ClearFilter(cmd.Column)
	case OpClearAll:
		w.ClearAllFilters()
	case OpPage:
		var target PageTarget
		target, err = ParsePageTarget(cmd.Page)
		if err == nil {
			w.GoToPage(target)
		}
	default:
		return &CommandError{Op: cmd.Op, Column: -1, Err: ErrUnknownCommand}
	}
	if err != nil {
		return &CommandError{Op: cmd.Op, Column: cmd.Column, Err: err}
	}
	w.logger.Debug("command applied", "op", cmd.Op, "column", cmd.Column, "visible", w.VisibleCount())
	return nil
}

func (w *Widget) column(i int) (*column, error) {
	if i < 0 || i >= len(w.cols) {
		return nil, fmt.Errorf("%w: %d", ErrColumnOutOfRange, i)
	}
	return w.cols[i], nil
}

// Sort reorders every row by a column and returns to page 1.
func (w *Widget) Sort(col int, dir SortDirection) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	sortRows(w.ds.Rows, w.order, col, c.def.Kind, dir)
	w.pager = Paginate(w.VisibleCount(), 1)
	return nil
}

// SetFilterMode switches a column between contains and not-contains.
func (w *Widget) SetFilterMode(col int, mode FilterMode) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	if mode != ModeContains && mode != ModeNotContains {
		return fmt.Errorf("invalid filter mode %q", mode)
	}
	c.setMode(mode)
	w.refresh(1)
	return nil
}

// SetColumnSearch sets the option search text of a column.
func (w *Widget) SetColumnSearch(col int, text string) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	c.setSearch(text)
	w.refresh(1)
	return nil
}

// ToggleValue checks or unchecks one option. For date columns key is a
// year (YYYY), month (YYYY-MM) or day (YYYY-MM-DD); "" is the blanks option.
func (w *Widget) ToggleValue(col int, key string, checked bool) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	if err := c.toggle(key, checked); err != nil {
		return err
	}
	w.refresh(1)
	return nil
}

// ToggleSelectAll checks or unchecks every option of a column.
func (w *Widget) ToggleSelectAll(col int, checked bool) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	c.toggleAll(checked)
	w.refresh(1)
	return nil
}

// ToggleExpanded opens or closes a year or month of a date column. Row
// visibility and the page are unchanged.
func (w *Widget) ToggleExpanded(col int, key string) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	return c.toggleExpanded(key)
}

// SetGlobalSearch sets the case-insensitive row search.
func (w *Widget) SetGlobalSearch(text string) {
	w.search = text
	w.refresh(1)
}

// ClearFilter restores one column to its initial state.
func (w *Widget) ClearFilter(col int) error {
	c, err := w.column(col)
	if err != nil {
		return err
	}
	c.clear()
	w.refresh(1)
	return nil
}

// ClearAllFilters restores every column and empties the global search.
func (w *Widget) ClearAllFilters() {
	for _, c := range w.cols {
		c.clear()
	}
	w.search = ""
	w.refresh(1)
}

// GoToPage moves to a page relative to the current one.
func (w *Widget) GoToPage(target PageTarget) {
	page := Navigate(w.pager.Current, w.pager.Count, target)
	w.pager = Paginate(w.VisibleCount(), page)
}

// refresh recomputes everything derived from the selection state.
func (w *Widget) refresh(page int) {
	for _, c := range w.cols {
		c.applySearch()
	}

	rows := w.ds.Rows
	matches := matchGlobal(rows, w.search)
	selected := selection(w.cols, rows)
	approved := approve(rows, matches, selected, len(w.cols))

	w.clearAllEnabled = w.search != ""
	for i, c := range w.cols {
		c.applyApproved(approved[i])
		c.synchronize()
		c.updateClearEnabled()
		if c.clearEnabled {
			w.clearAllEnabled = true
		}
	}

	w.visible = evaluate(w.cols, matches, selected)
	w.pager = Paginate(w.VisibleCount(), page)
}

// VisibleCount returns the number of rows passing every filter.
func (w *Widget) VisibleCount() int {
	n := 0
	for _, v := range w.visible {
		if v {
			n++
		}
	}
	return n
}

// Visible reports per original row whether it passes every filter.
func (w *Widget) Visible() []bool {
	return append([]bool(nil), w.visible...)
}

// IsSelected reports whether a raw cell value is in a column's effective
// checked set.
func (w *Widget) IsSelected(col int, raw string) (bool, error) {
	c, err := w.column(col)
	if err != nil {
		return false, err
	}
	return c.isSelected(raw), nil
}

// Approved returns the values of a column reachable under every other
// column's filter and the global search, sorted.
func (w *Widget) Approved(col int) ([]string, error) {
	if _, err := w.column(col); err != nil {
		return nil, err
	}
	rows := w.ds.Rows
	approved := approve(rows, matchGlobal(rows, w.search), selection(w.cols, rows), len(w.cols))
	return sortedKeys(approved[col]), nil
}

// Page returns the current pager state.
func (w *Widget) Page() Pager {
	return w.pager
}

// PageRows returns the visible rows of the current page in display order.
func (w *Widget) PageRows() []Row {
	var out []Row
	n := 0
	for _, idx := range w.order {
		if !w.visible[idx] {
			continue
		}
		if n >= w.pager.Start && n < w.pager.End {
			out = append(out, w.ds.Rows[idx])
		}
		n++
		if n >= w.pager.End {
			break
		}
	}
	return out
}

// SearchText returns the global search.
func (w *Widget) SearchText() string {
	return w.search
}

// ClearAllEnabled reports whether any filter or the global search is active.
func (w *Widget) ClearAllEnabled() bool {
	return w.clearAllEnabled
}
