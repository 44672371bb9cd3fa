// Package components provides the templ components of the table page.
package components

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/gridview/pkg/grid"
)

// Element IDs patched by the SSE handlers.
const (
	AppID  = "app"
	GridID = "grid"
)

const actionsURL = "/table/actions"

const resetAction = "@post('/table/reset')"

// initialSignals are the client signals a command is assembled from.
// open is the index of the column whose filter popup is shown, or -1.
const initialSignals = `{op: '', column: 0, key: '', text: '', checked: false, mode: '', page: '', open: -1}`

// FilterModeOption is one entry of a column's mode select.
type FilterModeOption struct {
	Mode  grid.FilterMode
	Label string
}

var filterModes = []FilterModeOption{
	{grid.ModeContains, "Contains"},
	{grid.ModeNotContains, "Does not contain"},
}

// jsValue renders v as a JavaScript literal for a datastar expression.
func jsValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// action builds a datastar expression that sets the command signals and
// posts them. Pairs alternate signal name and JavaScript expression.
func action(op grid.Op, column int, pairs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "$op = %s; $column = %d; ", jsValue(string(op)), column)
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "$%s = %s; ", pairs[i], pairs[i+1])
	}
	fmt.Fprintf(&b, "@post('%s')", actionsURL)
	return b.String()
}

func popupOpen(index int) string {
	return fmt.Sprintf("$open == %d", index)
}

func togglePopup(index int) string {
	return fmt.Sprintf("$open = %s ? -1 : %d", popupOpen(index), index)
}

func countLabel(view grid.View) string {
	return fmt.Sprintf("%d of %d rows", view.VisibleCount, view.TotalCount)
}

func headerClass(c grid.ColumnView) string {
	if c.Filtered {
		return "grid-header grid-header--filtered"
	}
	return "grid-header"
}

func optionClass(o grid.OptionView) string {
	return fmt.Sprintf("grid-option grid-option--depth%d", o.Depth)
}

func pagerClass(p grid.Pager) string {
	return fmt.Sprintf("grid-pager grid-pager--w%d", p.WidthTier)
}

func expandMarker(o grid.OptionView) string {
	if o.Expanded {
		return "▾"
	}
	return "▸"
}

func buttonLabel(b grid.PageButton) string {
	switch b.Kind {
	case grid.ButtonFirst:
		return "«"
	case grid.ButtonPrev:
		return "‹"
	case grid.ButtonNext:
		return "›"
	case grid.ButtonLast:
		return "»"
	default:
		return strconv.Itoa(b.Number)
	}
}

// pageTarget is the page signal a button posts.
func pageTarget(b grid.PageButton) string {
	if b.Kind == grid.ButtonNumber {
		return strconv.Itoa(b.Number)
	}
	return string(b.Kind)
}
