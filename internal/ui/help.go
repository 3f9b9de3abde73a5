package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Catalog", "Movie", "Rentals", "Forms", "General"}

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			if !binding.Enabled() || binding.Help().Key == "" {
				continue
			}
			b.WriteString(keyStyle.Render(binding.Help().Key))
			b.WriteString(styles.Text.Render(binding.Help().Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	width := 44
	if m.width > 100 {
		// Two columns when there is room.
		return m.theme.placeModal(m.renderHelpColumns(groups, keyStyle), m.width, m.height)
	}
	return m.theme.placeModal(m.theme.modalFrame(width).Render(b.String()), m.width, m.height)
}

func (m Model) renderHelpColumns(groups [][]key.Binding, keyStyle lipgloss.Style) string {
	styles := m.theme.Styles()
	var cols [2]strings.Builder
	for i, group := range groups {
		col := &cols[i%2]
		if col.Len() > 0 {
			col.WriteString("\n")
		}
		if i < len(helpSectionTitles) {
			col.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			col.WriteString("\n")
		}
		for _, binding := range group {
			if binding.Help().Key == "" {
				continue
			}
			col.WriteString(keyStyle.Render(binding.Help().Key))
			col.WriteString(styles.Text.Render(binding.Help().Desc))
			col.WriteString("\n")
		}
	}
	title := styles.Text.Bold(true).Render("Keyboard Shortcuts") + "\n" +
		styles.FaintText.Render(strings.Repeat("─", 30)) + "\n\n"
	left := lipgloss.NewStyle().Width(38).Render(cols[0].String())
	right := lipgloss.NewStyle().Width(38).Render(cols[1].String())
	return m.theme.modalFrame(82).Render(title + lipgloss.JoinHorizontal(lipgloss.Top, left, right))
}
