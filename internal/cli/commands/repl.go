package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/gridview/internal/cli/output"
	"github.com/leapstack-labs/gridview/pkg/grid"
	"github.com/spf13/cobra"
)

const replPrompt = "gridview> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Drive the table from an interactive prompt",
		Long: `Load the dataset and apply commands one line at a time. The current page is
printed after every command.

Type .help for the command list, .quit to exit.`,
		Example: `  gridview repl
  gridview> uncheck Country UK
  gridview> sort Price desc
  gridview> page next
  gridview> .options Date`,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	w, err := cc.LoadWidget(cmd.Context())
	if err != nil {
		return err
	}

	var historyFile string
	if cc.Cfg.ProjectRoot != "" {
		historyFile = filepath.Join(cc.Cfg.ProjectRoot, ".gridview_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newCommandCompleter(w),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gridview REPL (%s, %d rows)\n", cc.Cfg.Source.Location(), w.View().TotalCount)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	session := &replSession{widget: w, renderer: cc.Renderer}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if session.Exec(line) {
			break
		}
	}
	return nil
}

// replSession applies REPL lines to one widget.
type replSession struct {
	widget   *grid.Widget
	renderer *output.Renderer
}

// Exec runs one line and reports whether the session should end. Errors
// are printed, not returned, so a typo does not end the session.
func (s *replSession) Exec(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	cmd, err := s.widget.Parse(line)
	if err == nil {
		err = s.widget.Apply(cmd)
	}
	if err != nil {
		s.renderer.Error(err.Error())
		return false
	}
	s.printPage()
	return false
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.renderer.Writer())

	case ".show":
		s.printPage()

	case ".options":
		if len(parts) < 2 {
			s.renderer.Error("usage: .options <col>")
			return false
		}
		col, err := s.widget.ColumnIndex(strings.Join(parts[1:], " "))
		if err != nil {
			s.renderer.Error(err.Error())
			return false
		}
		s.renderer.RenderColumn(s.widget.View().Columns[col])

	case ".columns":
		for i, c := range s.widget.Columns() {
			s.renderer.Println(fmt.Sprintf("%d  %s (%s)", i, c.Name, c.Kind))
		}

	case ".clear":
		s.renderer.Printf("\033[H\033[2J")

	default:
		s.renderer.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", parts[0]))
	}
	return false
}

func (s *replSession) printPage() {
	if err := s.renderer.RenderPage(s.widget.View()); err != nil {
		s.renderer.Error(err.Error())
	}
}

func printREPLHelp(w io.Writer) {
	var b strings.Builder
	b.WriteString("\nCommands:\n")
	for _, h := range grid.CommandHelp {
		fmt.Fprintf(&b, "  %-32s %s\n", h[0], h[1])
	}
	b.WriteString(`
REPL:
  .show                            Print the current page
  .options <col>                   Print a column's filter options
  .columns                         List the columns
  .clear                           Clear the screen
  .quit / .exit                    Exit the REPL

Tips:
  - Columns are addressed by index, name or field
  - Quote values that contain spaces: check Country "New Zealand"
  - (Blanks) addresses empty cells
`)
	_, _ = fmt.Fprintln(w, b.String())
}

// newCommandCompleter completes command verbs and column names.
func newCommandCompleter(w *grid.Widget) *readline.PrefixCompleter {
	columns := func(string) []string {
		var names []string
		for _, c := range w.Columns() {
			names = append(names, quoteArg(c.Name))
		}
		return names
	}

	var items []readline.PrefixCompleterInterface
	for _, h := range grid.CommandHelp {
		verb, rest, _ := strings.Cut(h[0], " ")
		if strings.HasPrefix(rest, "<col>") {
			items = append(items, readline.PcItem(verb, readline.PcItemDynamic(columns)))
		} else {
			items = append(items, readline.PcItem(verb))
		}
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".show"),
		readline.PcItem(".options", readline.PcItemDynamic(columns)),
		readline.PcItem(".columns"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}

func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}
