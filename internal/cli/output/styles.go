package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Word    lipgloss.Style
	Label   lipgloss.Style
}

// DefaultStyles returns the colored styles used on a terminal.
func DefaultStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Word:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header:  plain,
		Bold:    plain,
		Muted:   plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
		Info:    plain,
		Word:    plain,
		Label:   plain,
	}
}
