package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/gridview/pkg/grid"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Search  string
	Filters []string
	Finds   []string
	Sort    string
	Page    string
	Exec    []string
	Options string
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render one page of the table",
		Long: `Load the dataset, apply filters, search, sorting and paging, and print the
resulting page once.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json, csv, yaml`,
		Example: `  # First page of the dataset
  gridview show

  # Only two countries, most expensive first
  gridview show --filter Country=US,UK --sort Price:desc

  # Rows from March 2023, as JSON
  gridview show --filter Date=2023-03 -o json

  # Options of the Date column after a global search
  gridview show --search apollo --options Date

  # Any command the repl understands
  gridview show -e "mode Country not-contains" -e "find Country u"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "Global search text")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "Keep only these values: column=v1,v2 (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Finds, "find", nil, "Search a column's options: column=text (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort rows: column[:asc|desc]")
	cmd.Flags().StringVar(&opts.Page, "page", "", "Page to show: first|prev|next|last|<n>")
	cmd.Flags().StringArrayVarP(&opts.Exec, "exec", "e", nil, "Apply a textual command (repeatable)")
	cmd.Flags().StringVar(&opts.Options, "options", "", "Print a column's filter options instead of rows")

	return cmd
}

func runShow(cmd *cobra.Command, opts *ShowOptions) error {
	cc := NewCommandContext(cmd)

	w, err := cc.LoadWidget(cmd.Context())
	if err != nil {
		return err
	}
	if err := applyShowOptions(w, opts); err != nil {
		return err
	}

	view := w.View()
	if opts.Options != "" {
		col, err := w.ColumnIndex(opts.Options)
		if err != nil {
			return err
		}
		return cc.Renderer.RenderColumnAs(view.Columns[col])
	}
	return cc.Renderer.RenderPage(view)
}

// applyShowOptions turns the flags into widget commands, in the order a
// user would apply them: filters, column searches, global search, textual
// commands, sort and finally the page.
func applyShowOptions(w *grid.Widget, opts *ShowOptions) error {
	var cmds []grid.Command

	for _, f := range opts.Filters {
		col, values, err := splitColumnArg(w, f)
		if err != nil {
			return fmt.Errorf("--filter %q: %w", f, err)
		}
		cmds = append(cmds, grid.Command{Op: grid.OpToggleAll, Column: col, Checked: false})
		for _, v := range strings.Split(values, ",") {
			v = strings.TrimSpace(v)
			if v == grid.BlanksLabel {
				v = ""
			}
			cmds = append(cmds, grid.Command{Op: grid.OpToggle, Column: col, Key: v, Checked: true})
		}
	}

	for _, f := range opts.Finds {
		col, text, err := splitColumnArg(w, f)
		if err != nil {
			return fmt.Errorf("--find %q: %w", f, err)
		}
		cmds = append(cmds, grid.Command{Op: grid.OpSetColumnSearch, Column: col, Text: text})
	}

	if opts.Search != "" {
		cmds = append(cmds, grid.Command{Op: grid.OpSetSearch, Column: -1, Text: opts.Search})
	}

	for _, line := range opts.Exec {
		c, err := w.Parse(line)
		if err != nil {
			return fmt.Errorf("--exec %q: %w", line, err)
		}
		cmds = append(cmds, c)
	}

	if opts.Sort != "" {
		c, err := parseSortArg(w, opts.Sort)
		if err != nil {
			return fmt.Errorf("--sort %q: %w", opts.Sort, err)
		}
		cmds = append(cmds, c)
	}

	if opts.Page != "" {
		if _, err := grid.ParsePageTarget(opts.Page); err != nil {
			return fmt.Errorf("--page: %w", err)
		}
		cmds = append(cmds, grid.Command{Op: grid.OpPage, Column: -1, Page: opts.Page})
	}

	for _, c := range cmds {
		if err := w.Apply(c); err != nil {
			return err
		}
	}
	return nil
}

// splitColumnArg splits "column=rest" and resolves the column.
func splitColumnArg(w *grid.Widget, arg string) (int, string, error) {
	name, rest, ok := strings.Cut(arg, "=")
	if !ok {
		return 0, "", errors.New("expected column=value")
	}
	col, err := w.ColumnIndex(strings.TrimSpace(name))
	if err != nil {
		return 0, "", err
	}
	return col, rest, nil
}

// parseSortArg reads "column[:asc|desc]".
func parseSortArg(w *grid.Widget, arg string) (grid.Command, error) {
	name, dir := arg, ""
	if i := strings.LastIndex(arg, ":"); i >= 0 {
		switch grid.SortDirection(strings.ToLower(arg[i+1:])) {
		case grid.SortAscending, grid.SortDescending:
			name, dir = arg[:i], strings.ToLower(arg[i+1:])
		}
	}
	col, err := w.ColumnIndex(name)
	if err != nil {
		return grid.Command{}, err
	}
	if grid.SortDirection(dir) == grid.SortDescending {
		return grid.Command{Op: grid.OpSortDesc, Column: col}, nil
	}
	return grid.Command{Op: grid.OpSortAsc, Column: col}, nil
}
