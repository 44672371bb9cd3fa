package output

import (
	"fmt"
	"strings"
)

// FormatHeader formats a markdown heading of the given level (1-6).
func FormatHeader(level int, text string) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue formats a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCode wraps text in inline code.
func FormatCode(text string) string {
	return "`" + text + "`"
}
