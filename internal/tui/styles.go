package tui

import "github.com/charmbracelet/lipgloss"

var (
	blue      = lipgloss.Color("#3B82F6")
	green     = lipgloss.Color("#10B981")
	amber     = lipgloss.Color("#F59E0B")
	red       = lipgloss.Color("#EF4444")
	gray      = lipgloss.Color("#6B7280")
	lightGray = lipgloss.Color("#D1D5DB")
	white     = lipgloss.Color("#F9FAFB")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(white).
			Background(blue).
			Padding(0, 1)

	labelStyle        = lipgloss.NewStyle().Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(gray)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(blue)

	buttonStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(gray).
			Padding(0, 1)
	focusedButtonStyle = buttonStyle.Background(blue)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lightGray).
			Padding(0, 2).
			MarginRight(2).
			Width(18)
	cardCountStyle = lipgloss.NewStyle().Bold(true).Foreground(blue)

	headerCellStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle         = lipgloss.NewStyle().Padding(0, 1)
	selectedRowStyle  = cellStyle.Background(lipgloss.Color("#1F2937")).Foreground(white)
	focusedCellStyle  = selectedRowStyle.Underline(true).Bold(true)
	gridBorderStyle   = lipgloss.NewStyle().Foreground(lightGray)
	deleteMarkerStyle = lipgloss.NewStyle().Foreground(red)

	toastStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(green).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(red).
			Padding(0, 1)
	infoStyle = lipgloss.NewStyle().Foreground(amber)
)

// statusColor returns the accent color of a status.
func statusColor(s string) lipgloss.Color {
	switch s {
	case "Done":
		return green
	case "In Progress":
		return amber
	default:
		return gray
	}
}
