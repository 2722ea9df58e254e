package cli

import "github.com/charmbracelet/lipgloss"

var (
	resultStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	waitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// statusStyle picks a display style for a remote task status string.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "Completed":
		return doneStyle
	case "Cancelled", "Stopped":
		return failedStyle
	case "Queued":
		return dimStyle
	default:
		return waitStyle
	}
}
