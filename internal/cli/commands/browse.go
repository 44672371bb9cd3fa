package commands

import (
	"errors"

	"github.com/leapstack-labs/gridview/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// BrowseOptions holds options for the browse command.
type BrowseOptions struct {
	Search string
	Sort   string
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	opts := &BrowseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the table in the terminal",
		Long: `Open the table full-screen in the terminal. Move between columns with the
arrow keys, open a column's filter with enter, search with / and page with
n and p. Press ? for every binding.`,
		Example: `  gridview browse

  # Start from a search, sorted by price
  gridview browse --search apollo --sort Price:desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "Initial global search text")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Initial sort: column[:asc|desc]")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts *BrowseOptions) error {
	if !isTerminal(cmd.InOrStdin()) {
		return errors.New("browse needs an interactive terminal; use show or repl instead")
	}

	cc := NewCommandContext(cmd)
	w, err := cc.LoadWidget(cmd.Context())
	if err != nil {
		return err
	}
	if err := applyShowOptions(w, &ShowOptions{Search: opts.Search, Sort: opts.Sort}); err != nil {
		return err
	}

	return tui.Run(cmd.Context(), w, cmd.InOrStdin(), cmd.OutOrStdout())
}

func isTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
