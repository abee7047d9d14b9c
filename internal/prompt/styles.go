package prompt

import "github.com/charmbracelet/lipgloss"

var (
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	DetailStyle   = lipgloss.NewStyle().Faint(true)
	HeadingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// OverdueStyle marks service entries that are past due.
	OverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Heading renders a section title.
func Heading(s string) string {
	return HeadingStyle.Render(s)
}
