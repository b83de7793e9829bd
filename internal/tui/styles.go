package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	trigger     lipgloss.Style
	placeholder lipgloss.Style
	heading     lipgloss.Style
	item        lipgloss.Style
	cursor      lipgloss.Style
	check       lipgloss.Style
	message     lipgloss.Style
	help        lipgloss.Style
	frame       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		trigger:     lipgloss.NewStyle().Bold(true),
		placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		item:        lipgloss.NewStyle().PaddingLeft(2),
		cursor:      lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5")).Bold(true),
		check:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		message:     lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("245")).Italic(true),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		frame:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}
