package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	rowID       lipgloss.Style
	rowLabel    lipgloss.Style
	detail      lipgloss.Style
	warning     lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	help        lipgloss.Style
	barBracket  lipgloss.Style
	barFill     lipgloss.Style
	barEmpty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		tabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Underline(true),
		tabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		rowID:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		rowLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		warning:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		barBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
