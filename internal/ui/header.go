package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one "Key: Value" line of a header
type Param struct {
	Key   string
	Value string
}

// Header is the banner printed when a command starts
type Header struct {
	Title    string  // e.g., "SAMSUNG TV REMOTE"
	Subtitle string  // e.g., "Living Room"
	Params   []Param // rendered in order
	Width    int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, subtitle string, params ...Param) *Header {
	return &Header{
		Title:    title,
		Subtitle: subtitle,
		Params:   params,
		Width:    GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := clampWidth(h.Width)

	top := []string{HeaderTitleStyle.Render(strings.ToUpper(h.Title))}
	if h.Subtitle != "" {
		top = append(top, HeaderCommandStyle.Render(h.Subtitle))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, top...)

	if len(h.Params) > 0 {
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Render(strings.Repeat("─", max(width-6, 10)))

		lines := make([]string, 0, len(h.Params))
		for _, p := range h.Params {
			lines = append(lines, HeaderParamKeyStyle.Render(p.Key+":")+" "+HeaderParamValueStyle.Render(p.Value))
		}
		content = lipgloss.JoinVertical(lipgloss.Left, content, divider, strings.Join(lines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
