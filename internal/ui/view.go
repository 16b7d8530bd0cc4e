package ui

import "github.com/charmbracelet/lipgloss"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	l := m.layout()
	palette := m.Palette()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderDeck(l, palette),
		m.renderCrate(l, palette),
	)

	if m.hideHelp {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelp(l))
}

func (m Model) renderHelp(l Layout) string {
	bindings := m.keys.browsing()
	if m.focus == focusSearch {
		bindings = m.keys.searching()
	}

	h := m.help
	h.Width = l.Help.W
	return " " + h.ShortHelpView(bindings)
}
