package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Op names a widget command.
type Op string

// Widget commands.
const (
	OpSortAsc         Op = "sort-asc"
	OpSortDesc        Op = "sort-desc"
	OpSetMode         Op = "set-mode"
	OpSetColumnSearch Op = "set-column-search"
	OpToggle          Op = "toggle"
	OpToggleAll       Op = "toggle-all"
	OpExpand          Op = "expand"
	OpSetSearch       Op = "set-search"
	OpClearFilter     Op = "clear-filter"
	OpClearAll        Op = "clear-all"
	OpPage            Op = "page"
)

// Command is a user interaction event. Only the fields the op needs are read.
type Command struct {
	Op      Op         `json:"op"`
	Column  int        `json:"column"`
	Key     string     `json:"key,omitempty"`
	Text    string     `json:"text,omitempty"`
	Checked bool       `json:"checked,omitempty"`
	Mode    FilterMode `json:"mode,omitempty"`
	Page    string     `json:"page,omitempty"`
}

// CommandHelp documents the textual command forms accepted by Parse.
var CommandHelp = [][2]string{
	{"sort <col> [asc|desc]", "Sort all rows by a column"},
	{"mode <col> contains|not-contains", "Set the option search mode"},
	{"find <col> [text]", "Search a column's options (no text clears)"},
	{"check <col> <value>", "Check a value or date node (YYYY, YYYY-MM, YYYY-MM-DD)"},
	{"uncheck <col> <value>", "Uncheck a value or date node"},
	{"all <col> on|off", "Check or uncheck select-all"},
	{"expand <col> <node>", "Open or close a year or month"},
	{"search [text]", "Set the global search (no text clears)"},
	{"clear <col>", "Clear one column's filter"},
	{"reset", "Clear every filter and the global search"},
	{"page first|prev|next|last|<n>", "Go to a page"},
}

// Parse reads the textual form of a command. Columns may be given by
// zero-based index or by name; values containing spaces are double-quoted.
func (w *Widget) Parse(line string) (Command, error) {
	args, err := splitArgs(line)
	if err != nil {
		return Command{}, err
	}
	if len(args) == 0 {
		return Command{}, fmt.Errorf("%w: empty", ErrUnknownCommand)
	}

	verb, rest := strings.ToLower(args[0]), args[1:]
	need := func(n int, usage string) error {
		if len(rest) < n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}
	col := func() (int, error) { return w.ColumnIndex(rest[0]) }

	switch verb {
	case "sort":
		if err := need(1, "sort <col> [asc|desc]"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		op := OpSortAsc
		if len(rest) > 1 {
			switch SortDirection(strings.ToLower(rest[1])) {
			case SortAscending:
			case SortDescending:
				op = OpSortDesc
			default:
				return Command{}, fmt.Errorf("invalid sort direction %q", rest[1])
			}
		}
		return Command{Op: op, Column: c}, nil

	case "mode":
		if err := need(2, "mode <col> contains|not-contains"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		m, err := ParseFilterMode(strings.ToLower(rest[1]))
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpSetMode, Column: c, Mode: m}, nil

	case "find":
		if err := need(1, "find <col> [text]"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpSetColumnSearch, Column: c, Text: strings.Join(rest[1:], " ")}, nil

	case "check", "uncheck":
		if err := need(1, verb+" <col> <value>"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		key := strings.Join(rest[1:], " ")
		if key == BlanksLabel {
			key = ""
		}
		return Command{Op: OpToggle, Column: c, Key: key, Checked: verb == "check"}, nil

	case "all":
		if err := need(2, "all <col> on|off"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		on, err := parseSwitch(rest[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpToggleAll, Column: c, Checked: on}, nil

	case "expand":
		if err := need(2, "expand <col> <node>"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpExpand, Column: c, Key: rest[1]}, nil

	case "search":
		return Command{Op: OpSetSearch, Column: -1, Text: strings.Join(rest, " ")}, nil

	case "clear":
		if err := need(1, "clear <col>"); err != nil {
			return Command{}, err
		}
		c, err := col()
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpClearFilter, Column: c}, nil

	case "reset":
		return Command{Op: OpClearAll, Column: -1}, nil

	case "page":
		if err := need(1, "page first|prev|next|last|<n>"); err != nil {
			return Command{}, err
		}
		if _, err := ParsePageTarget(rest[0]); err != nil {
			return Command{}, err
		}
		return Command{Op: OpPage, Column: -1, Page: rest[0]}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

// splitArgs splits on whitespace, keeping double-quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '\\' && quoted && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case ch == '"':
			quoted = !quoted
			started = true
		case !quoted && (ch == ' ' || ch == '\t'):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteByte(ch)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}

// ColumnIndex resolves a column by zero-based index, name or field,
// ignoring case.
func (w *Widget) ColumnIndex(ref string) (int, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(w.cols) {
			return 0, fmt.Errorf("%w: %d", ErrColumnOutOfRange, i)
		}
		return i, nil
	}
	for i, c := range w.cols {
		if strings.EqualFold(c.def.Name, ref) || strings.EqualFold(c.def.Field, ref) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnOutOfRange, ref)
}
