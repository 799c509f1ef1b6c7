package verdict

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	document lipgloss.Style
	stage    lipgloss.Style
	detail   lipgloss.Style
	meta     lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	approved lipgloss.Style
	rejected lipgloss.Style
	pending  lipgloss.Style
	sent     lipgloss.Style
	ready    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		document: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		stage:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(12),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		approved: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		rejected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		sent:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		ready:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

func (s styles) badge(status string) lipgloss.Style {
	switch status {
	case "approved":
		return s.approved
	case "rejected":
		return s.rejected
	case "sent":
		return s.sent
	default:
		return s.pending
	}
}
