package tui

import "github.com/charmbracelet/lipgloss"

// The dashboard palette. Gold for headers and totals, muted grays for
// chrome, semantic green/red/yellow for statuses.
var (
	colorGold   = lipgloss.Color("178")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
	colorGreen  = lipgloss.Color("70")
	colorRed    = lipgloss.Color("160")
	colorYellow = lipgloss.Color("220")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorGold).
			Bold(true)

	styleTab = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	styleTabActive = lipgloss.NewStyle().
			Foreground(colorGold).
			Bold(true).
			Padding(0, 1).
			Underline(true)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	styleAmount = lipgloss.NewStyle().
			Foreground(colorGold).
			Bold(true)

	styleIncome  = lipgloss.NewStyle().Foreground(colorGreen)
	styleOutcome = lipgloss.NewStyle().Foreground(colorRed)
	stylePending = lipgloss.NewStyle().Foreground(colorYellow)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorFaint)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorGold).
			Bold(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFaint).
			Padding(0, 1)
)

// statusStyle picks the render style for an entry status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "completed":
		return styleIncome
	case "failed":
		return styleOutcome
	default:
		return stylePending
	}
}
