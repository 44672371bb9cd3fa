package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

const (
	maxCellWidth = 28
	popupHeight  = 12
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	filteredStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#4493F8"})
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8D96A0"})
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"})
	popupStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.searchLine())
	b.WriteString("\n\n")
	b.WriteString(m.table())
	b.WriteString("\n")
	b.WriteString(m.pagerLine())
	b.WriteString("\n")

	if m.focus == focusPopup || m.focus == focusColumnSearch {
		b.WriteString(m.popup())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) searchLine() string {
	count := mutedStyle.Render(fmt.Sprintf("%d of %d rows", m.view.VisibleCount, m.view.TotalCount))
	if m.focus == focusSearch {
		return m.input.View() + "  " + count
	}
	search := m.view.Search
	if search == "" {
		search = mutedStyle.Render("press / to search")
	}
	return "/ " + search + "  " + count
}

func (m Model) table() string {
	widths := columnWidths(m.view)

	var b strings.Builder
	for i, c := range m.view.Columns {
		name := c.Name
		if c.Filtered {
			name += " ▾"
		}
		cell := pad(name, widths[i])
		switch {
		case i == m.col:
			cell = cursorStyle.Render(cell)
		case c.Filtered:
			cell = filteredStyle.Render(cell)
		default:
			cell = headerStyle.Render(cell)
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
	}
	b.WriteString("\n")

	if len(m.view.Rows) == 0 {
		b.WriteString(mutedStyle.Render("No rows"))
		b.WriteString("\n")
	}
	for _, r := range m.view.Rows {
		for i, cell := range r.Cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(pad(cell, widths[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) pagerLine() string {
	var parts []string
	for _, btn := range m.view.Pager.Buttons {
		var label string
		switch btn.Kind {
		case grid.ButtonFirst:
			label = "«"
		case grid.ButtonPrev:
			label = "‹"
		case grid.ButtonNext:
			label = "›"
		case grid.ButtonLast:
			label = "»"
		default:
			label = fmt.Sprint(btn.Number)
		}
		switch {
		case btn.Active:
			label = cursorStyle.Render(" " + label + " ")
		case btn.Disabled:
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ") + "  " + m.view.Pager.Label
}

func (m Model) popup() string {
	c := m.column()

	var b strings.Builder
	mode := "contains"
	if c.Mode == grid.ModeNotContains {
		mode = "does not contain"
	}
	fmt.Fprintf(&b, "%s  %s\n", headerStyle.Render(c.Name), mutedStyle.Render("("+mode+", m to switch)"))
	if m.focus == focusColumnSearch {
		b.WriteString(m.input.View())
	} else if c.Search != "" {
		b.WriteString("/ " + c.Search)
	} else {
		b.WriteString(mutedStyle.Render("/ search values"))
	}
	b.WriteString("\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("(no matching values)"))
		b.WriteString("\n")
	}
	start := 0
	if m.cursor >= popupHeight {
		start = m.cursor - popupHeight + 1
	}
	end := min(len(items), start+popupHeight)
	for i := start; i < end; i++ {
		line := itemLine(items[i])
		if i == m.cursor && m.focus == focusPopup {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(items) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(items)-end)))
		b.WriteString("\n")
	}
	if c.ClearEnabled {
		b.WriteString(mutedStyle.Render("c: clear filter from " + c.Name))
	}
	return popupStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func itemLine(it popupItem) string {
	box := "[ ]"
	if it.checked {
		box = "[x]"
	}
	marker := "  "
	if it.expandable {
		marker = "▸ "
		if it.expanded {
			marker = "▾ "
		}
	}
	return strings.Repeat("  ", it.depth) + marker + box + " " + it.label
}

// columnWidths sizes each column to its header and the current page,
// capped at maxCellWidth.
func columnWidths(v grid.View) []int {
	widths := make([]int, len(v.Columns))
	for i, c := range v.Columns {
		widths[i] = lipgloss.Width(c.Name) + 2
	}
	for _, r := range v.Rows {
		for i, cell := range r.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxCellWidth)
	}
	return widths
}

// pad truncates or right-pads s to width cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…" + strings.Repeat(" ", max(0, width-lipgloss.Width(string(runes))-1))
}
