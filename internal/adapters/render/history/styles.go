package history

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	timestamp lipgloss.Style
	input     lipgloss.Style
	arrow     lipgloss.Style
	standard  lipgloss.Style
	narrative lipgloss.Style
	aiBadge   lipgloss.Style
	stdBadge  lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		input:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		arrow:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		standard:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		narrative: lipgloss.NewStyle().Faint(true),
		aiBadge:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		stdBadge:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
