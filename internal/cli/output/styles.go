package output

import "github.com/charmbracelet/lipgloss"

// Palette colours shared by the CLI renderer and the terminal browser.
var (
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	// Active marks the current page and checked options.
	Active lipgloss.Style
	// Filtered marks a column header whose filter narrows the rows.
	Filtered lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:   r.NewStyle().Bold(true).Underline(true).Foreground(ColorAccent),
		Bold:     r.NewStyle().Bold(true),
		Success:  r.NewStyle().Foreground(ColorSuccess),
		Warning:  r.NewStyle().Foreground(ColorWarning),
		Error:    r.NewStyle().Foreground(ColorError),
		Info:     r.NewStyle().Foreground(ColorAccent),
		Muted:    r.NewStyle().Foreground(ColorMuted),
		Active:   r.NewStyle().Bold(true).Foreground(ColorAccent),
		Filtered: r.NewStyle().Bold(true).Foreground(ColorWarning),
	}
}

// StatusIcon returns the styled icon for a status name.
func (s *Styles) StatusIcon(status string) string {
	switch status {
	case "success":
		return s.Success.Render("✓")
	case "warning":
		return s.Warning.Render("!")
	case "error":
		return s.Error.Render("✗")
	case "skipped":
		return s.Muted.Render("-")
	default:
		return s.Muted.Render("•")
	}
}
