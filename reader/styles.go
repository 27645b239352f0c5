package reader

import "github.com/charmbracelet/lipgloss"

// ANSI-256 palette so the reader degrades cleanly in terminals without
// truecolor.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// statusStyle renders the date/source/page header line.
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// helpStyle dims the key legend and empty-state hints.
	helpStyle = lipgloss.NewStyle().
			Faint(true)

	// metaStyle dims card metadata: summary, byline, URL.
	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	// cardStyle marks each card with a left gutter bar instead of a full
	// border, so long summaries wrap without box-drawing artifacts.
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("39")).
			PaddingLeft(1).
			MarginBottom(1)
)
