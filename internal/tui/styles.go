package tui

import "github.com/charmbracelet/lipgloss"

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true).Italic(true).PaddingLeft(2)

	badgeColors = []lipgloss.Color{"214", "39", "170", "78", "245"}

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func badgeStyle(index int) lipgloss.Style {
	c := badgeColors[len(badgeColors)-1]
	if index >= 0 {
		c = badgeColors[index%len(badgeColors)]
	}
	return lipgloss.NewStyle().Foreground(c)
}

func panelString(inner string) string { return frameStyle.Render(inner) }
