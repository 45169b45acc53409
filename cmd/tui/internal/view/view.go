package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	accentColor = lipgloss.Color("205")
	errorColor  = lipgloss.Color("196")
	okColor     = lipgloss.Color("46")
	borderColor = lipgloss.Color("240")
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(accentColor).Render(s)
}

func errorText(s string) string {
	return lipgloss.NewStyle().Foreground(errorColor).Render(s)
}

func okText(s string) string {
	return lipgloss.NewStyle().Foreground(okColor).Render(s)
}

func panel(s string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(s)
}
