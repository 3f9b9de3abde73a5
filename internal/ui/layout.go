package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width for the two-column movie detail.
	LayoutWideWidth = 120
)

// Chrome rows: header with navigation, command bar and footer.
const chromeRows = 3

// Log viewer limits.
const (
	// LogTailLines is how many lines of reel's own log the viewer loads.
	LogTailLines = 1000

	// LogRefreshInterval is how often the viewer re-reads the log while following.
	LogRefreshInterval = 2 * time.Second
)

// flashTTL is how long a banner stays in the footer.
const flashTTL = 6 * time.Second

// renderTitledBox draws a bordered panel with title embedded in the top
// border, padding or cutting content to fill height rows.
func (t Theme) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := t.Border, t.SurfaceAlt
	if focused {
		borderColor, bgColor = t.BorderFocus, t.FocusBg
	}
	if width < 4 {
		width = 4
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Text))

	inner := width - 2
	title = truncate(title, inner-4)
	titleWidth := lipgloss.Width(title)
	left := 1
	right := max(inner-titleWidth-2-left, 0)

	var b strings.Builder
	b.WriteString(bg.Render("┌"+strings.Repeat("─", left), borderStyle))
	b.WriteString(bg.Render(" "+title+" ", titleStyle))
	b.WriteString(bg.Render(strings.Repeat("─", right)+"┐", borderStyle))
	b.WriteString("\n")

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(lipgloss.Color(bgColor))
	lines := strings.Split(content, "\n")
	for i := 0; i < max(height-2, 0); i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString(bg.Render("│", borderStyle))
		b.WriteString(body.Render(line))
		b.WriteString(bg.Render("│", borderStyle))
		b.WriteString("\n")
	}
	b.WriteString(bg.Render("└"+strings.Repeat("─", inner)+"┘", borderStyle))
	return b.String()
}

// placeModal centers content over a blank screen.
func (t Theme) placeModal(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(t.Background)),
	)
}

// modalFrame is the border used by dialogs and the help overlay.
func (t Theme) modalFrame(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Accent)).
		Padding(1, 2).
		Width(width)
}
