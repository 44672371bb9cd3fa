package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

// PageOutput is the JSON and YAML form of one rendered page.
type PageOutput struct {
	Page         int            `json:"page" yaml:"page"`
	PageCount    int            `json:"page_count" yaml:"page_count"`
	Label        string         `json:"label" yaml:"label"`
	VisibleCount int            `json:"visible_count" yaml:"visible_count"`
	TotalCount   int            `json:"total_count" yaml:"total_count"`
	Search       string         `json:"search,omitempty" yaml:"search,omitempty"`
	Filters      []FilterOutput `json:"filters,omitempty" yaml:"filters,omitempty"`
	Rows         []RowOutput    `json:"rows" yaml:"rows"`
}

// FilterOutput describes one column that narrows the rows.
type FilterOutput struct {
	Column    string   `json:"column" yaml:"column"`
	Mode      string   `json:"mode" yaml:"mode"`
	Search    string   `json:"search,omitempty" yaml:"search,omitempty"`
	Unchecked []string `json:"unchecked,omitempty" yaml:"unchecked,omitempty"`
}

// RowOutput is one row keyed by column name. ID is the dataset position.
type RowOutput struct {
	ID    int               `json:"id" yaml:"id"`
	Cells map[string]string `json:"cells" yaml:"cells"`
}

// NewPageOutput converts a widget view into its serialisable form.
func NewPageOutput(v grid.View) PageOutput {
	out := PageOutput{
		Page:         v.Pager.Current,
		PageCount:    v.Pager.Count,
		Label:        v.Pager.Label,
		VisibleCount: v.VisibleCount,
		TotalCount:   v.TotalCount,
		Search:       v.Search,
		Rows:         make([]RowOutput, 0, len(v.Rows)),
	}
	for _, c := range v.Columns {
		if !c.Filtered {
			continue
		}
		f := FilterOutput{Column: c.Name, Mode: string(c.Mode), Search: c.Search}
		for _, o := range c.Options {
			if !o.Expandable && !o.Hidden && !o.Checked {
				f.Unchecked = append(f.Unchecked, optionKey(o))
			}
		}
		out.Filters = append(out.Filters, f)
	}
	for _, r := range v.Rows {
		cells := make(map[string]string, len(r.Cells))
		for i, c := range v.Columns {
			if i < len(r.Cells) {
				cells[c.Name] = r.Cells[i]
			}
		}
		out.Rows = append(out.Rows, RowOutput{ID: r.ID, Cells: cells})
	}
	return out
}

// optionKey names an option the way commands address it.
func optionKey(o grid.OptionView) string {
	if o.Key == "" {
		return grid.BlanksLabel
	}
	return o.Key
}

// RenderPage writes the current page of a widget view in the effective mode.
func (r *Renderer) RenderPage(v grid.View) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(NewPageOutput(v))
	case ModeYAML:
		return r.YAML(NewPageOutput(v))
	case ModeCSV:
		r.Println(r.pageTable(v, false).RenderCSV())
		return nil
	case ModeMarkdown:
		r.Println(r.pageTable(v, false).RenderMarkdown())
		r.Println("")
		r.Println(fmt.Sprintf("%s · %d of %d rows", v.Pager.Label, v.VisibleCount, v.TotalCount))
		return nil
	default:
		r.Println(r.pageTable(v, true).Render())
		r.Println(r.PagerLine(v))
		return nil
	}
}

func (r *Renderer) pageTable(v grid.View, styled bool) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(v.Columns))
	for i, c := range v.Columns {
		name := c.Name
		if styled && c.Filtered {
			name = r.styles.Filtered.Render(name + " ▾")
		}
		header[i] = name
	}
	t.AppendHeader(header)

	for _, row := range v.Rows {
		tr := make(table.Row, len(row.Cells))
		for i, cell := range row.Cells {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}
	return t
}

// PagerLine renders the pager buttons, the page label and the row counts.
func (r *Renderer) PagerLine(v grid.View) string {
	var parts []string
	for _, b := range v.Pager.Buttons {
		parts = append(parts, r.buttonText(b))
	}
	counts := fmt.Sprintf("%d of %d rows", v.VisibleCount, v.TotalCount)
	if v.Search != "" {
		counts += fmt.Sprintf(" matching %q", v.Search)
	}
	return fmt.Sprintf("%s  %s  %s", strings.Join(parts, " "), v.Pager.Label, r.styles.Muted.Render(counts))
}

func (r *Renderer) buttonText(b grid.PageButton) string {
	var label string
	switch b.Kind {
	case grid.ButtonFirst:
		label = "«"
	case grid.ButtonPrev:
		label = "‹"
	case grid.ButtonNext:
		label = "›"
	case grid.ButtonLast:
		label = "»"
	default:
		label = fmt.Sprintf("%d", b.Number)
	}
	switch {
	case b.Active:
		return r.styles.Active.Render("[" + label + "]")
	case b.Disabled:
		return r.styles.Muted.Render(label)
	default:
		return label
	}
}

// RenderColumn writes the filter popup of one column: mode, search and the
// visible options with their check state.
func (r *Renderer) RenderColumn(c grid.ColumnView) {
	title := fmt.Sprintf("%s (%s)", c.Name, c.Mode)
	r.Header(2, title)
	if c.Search != "" {
		r.Println(FormatKeyValue("Search", c.Search))
	}
	if !c.SelectAll.Hidden && !c.SelectAll.Filtered {
		r.Println(r.optionLine(c.SelectAll))
	}
	visible := 0
	for _, o := range c.Options {
		if !o.Visible() {
			continue
		}
		visible++
		r.Println(r.optionLine(o))
	}
	if visible == 0 {
		r.Muted("(no matching values)")
	}
}

func (r *Renderer) optionLine(o grid.OptionView) string {
	box := "[ ]"
	if o.Checked {
		box = r.styles.Active.Render("[x]")
	}
	marker := "  "
	if o.Expandable {
		marker = "▸ "
		if o.Expanded {
			marker = "▾ "
		}
	}
	return strings.Repeat("  ", o.Depth) + marker + box + " " + o.Label
}

// ColumnOutput is the JSON and YAML form of one column's filter popup.
type ColumnOutput struct {
	Column  string         `json:"column" yaml:"column"`
	Mode    string         `json:"mode" yaml:"mode"`
	Search  string         `json:"search,omitempty" yaml:"search,omitempty"`
	Options []OptionOutput `json:"options" yaml:"options"`
}

// OptionOutput is one visible option of a column.
type OptionOutput struct {
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Depth   int    `json:"depth,omitempty" yaml:"depth,omitempty"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// NewColumnOutput converts a column view into its serialisable form.
func NewColumnOutput(c grid.ColumnView) ColumnOutput {
	out := ColumnOutput{
		Column:  c.Name,
		Mode:    string(c.Mode),
		Search:  c.Search,
		Options: []OptionOutput{},
	}
	for _, o := range c.Options {
		if !o.Visible() {
			continue
		}
		out.Options = append(out.Options, OptionOutput{
			Key:     optionKey(o),
			Label:   o.Label,
			Depth:   o.Depth,
			Checked: o.Checked,
		})
	}
	return out
}

// RenderColumnAs writes a column's filter popup in the effective mode.
func (r *Renderer) RenderColumnAs(c grid.ColumnView) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(NewColumnOutput(c))
	case ModeYAML:
		return r.YAML(NewColumnOutput(c))
	case ModeCSV:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"key", "label", "depth", "checked"})
		for _, o := range NewColumnOutput(c).Options {
			t.AppendRow(table.Row{o.Key, o.Label, o.Depth, o.Checked})
		}
		r.Println(t.RenderCSV())
		return nil
	default:
		r.RenderColumn(c)
		return nil
	}
}
