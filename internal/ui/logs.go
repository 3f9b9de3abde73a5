package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/logtail"
)

// logState holds the in-app log viewer.
type logState struct {
	path     string
	entries  []logtail.Entry
	lines    []string
	err      error
	follow   bool
	loadedAt time.Time
	vp       viewport.Model

	searchActive   bool
	searchInput    textinput.Model
	searchQuery    string
	searchRegex    *regexp.Regexp
	searchMatches  []int
	searchMatchIdx int
}

type logLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

type logTickMsg time.Time

func newLogState(path string) logState {
	ti := textinput.New()
	ti.Placeholder = "Search logs..."
	ti.CharLimit = 100
	return logState{path: path, follow: true, searchInput: ti, vp: viewport.New(0, 0)}
}

func (l *logState) refresh() tea.Cmd {
	path := l.path
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogTailLines)
		return logLoadedMsg{entries: entries, err: err}
	}
}

func logTick() tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(t time.Time) tea.Msg { return logTickMsg(t) })
}

func (l *logState) apply(msg logLoadedMsg) {
	l.err = msg.err
	if msg.err != nil {
		return
	}
	l.entries = msg.entries
	l.lines = make([]string, 0, len(msg.entries))
	for _, e := range msg.entries {
		l.lines = append(l.lines, formatLogEntry(e))
	}
	l.loadedAt = time.Now()
	l.findMatches()
}

// formatLogEntry renders an entry as one plain line: time, level, message
// and the remaining fields as key=value.
func formatLogEntry(e logtail.Entry) string {
	if e.Level == "" && e.Time.IsZero() {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}
	b.WriteString(fmt.Sprintf("%-5s", level))
	b.WriteString(" ")
	b.WriteString(e.Message)
	for _, k := range e.FieldKeys() {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

func (l *logState) resize(width, height int) {
	l.vp.Width = max(width-4, 10)
	l.vp.Height = max(height-3, 3)
}

func (l *logState) render(theme Theme) {
	l.vp.SetContent(l.content(theme))
	if l.follow {
		l.vp.GotoBottom()
	}
}

func (l *logState) content(theme Theme) string {
	bg := NewBgStyle(theme.FocusBg)
	styles := theme.Styles()
	width := l.vp.Width
	if l.err != nil {
		return bg.FillLine(bg.Render("Log unavailable: "+l.err.Error(), styles.DangerText), width)
	}
	if len(l.lines) == 0 {
		return bg.FillLine(bg.Render("No log entries", styles.MutedText), width)
	}

	matchSet := make(map[int]bool, len(l.searchMatches))
	for _, idx := range l.searchMatches {
		matchSet[idx] = true
	}
	active := -1
	if l.searchMatchIdx < len(l.searchMatches) {
		active = l.searchMatches[l.searchMatchIdx]
	}

	var b strings.Builder
	for i, line := range l.lines {
		num := fmt.Sprintf("%4d │ ", i+1)
		var row string
		switch {
		case i == active:
			hl := lipgloss.NewStyle().Background(lipgloss.Color(theme.Warning)).Foreground(lipgloss.Color(theme.Background))
			row = hl.Render(num + line)
		case matchSet[i]:
			row = bg.Render(num, styles.AccentText) + bg.Render(line, styles.AccentText)
		default:
			row = bg.Render(num, styles.FaintText) + colorizeEntry(l.entries[i], line, styles, bg)
		}
		b.WriteString(bg.FillLine(truncateStyled(row, width), width))
		if i < len(l.lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// colorizeEntry styles the level of a formatted line.
func colorizeEntry(e logtail.Entry, line string, styles Styles, bg BgStyle) string {
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		return bg.Render(line, styles.Text)
	}
	idx := strings.Index(line, level)
	if idx < 0 {
		return bg.Render(line, styles.Text)
	}
	return bg.Render(line[:idx], styles.FaintText) +
		bg.Render(level, levelStyle(level, styles).Bold(true)) +
		bg.Render(line[idx+len(level):], styles.Text)
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "DEBUG", "TRACE":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// truncateStyled cuts an already styled row to width cells.
func truncateStyled(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func (l *logState) findMatches() {
	l.searchMatches = nil
	if l.searchRegex == nil {
		return
	}
	for i, line := range l.lines {
		if l.searchRegex.MatchString(line) {
			l.searchMatches = append(l.searchMatches, i)
		}
	}
	if l.searchMatchIdx >= len(l.searchMatches) {
		l.searchMatchIdx = 0
	}
}

func (l *logState) clearSearch() {
	l.searchRegex = nil
	l.searchQuery = ""
	l.searchMatches = nil
	l.searchMatchIdx = 0
}

func (l *logState) stepMatch(delta int) {
	n := len(l.searchMatches)
	if n == 0 {
		return
	}
	l.searchMatchIdx = ((l.searchMatchIdx+delta)%n + n) % n
	l.follow = false
}

// scrollToMatch centers the active match when possible.
func (l *logState) scrollToMatch() {
	if l.searchMatchIdx >= len(l.searchMatches) {
		return
	}
	target := l.searchMatches[l.searchMatchIdx]
	l.vp.SetYOffset(max(target-l.vp.Height/2, 0))
}

// handleKey returns whether the viewer should close.
func (l *logState) handleKey(msg tea.KeyMsg, keys keyMap, theme Theme) (tea.Cmd, bool) {
	if l.searchActive {
		switch {
		case key.Matches(msg, keys.Submit):
			query := l.searchInput.Value()
			l.searchActive = false
			l.searchInput.Blur()
			if query == "" {
				return nil, false
			}
			re, err := regexp.Compile("(?i)" + query)
			if err != nil {
				return nil, false
			}
			l.searchRegex = re
			l.searchQuery = query
			l.searchMatchIdx = 0
			l.findMatches()
			l.follow = false
			l.render(theme)
			l.scrollToMatch()
			return nil, false
		case key.Matches(msg, keys.Escape):
			l.searchActive = false
			l.searchInput.Blur()
			l.searchInput.SetValue("")
			return nil, false
		}
		var cmd tea.Cmd
		l.searchInput, cmd = l.searchInput.Update(msg)
		return cmd, false
	}

	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Logs):
		if key.Matches(msg, keys.Escape) && l.searchRegex != nil {
			l.clearSearch()
			l.render(theme)
			return nil, false
		}
		return nil, true
	case key.Matches(msg, keys.ToggleFollow):
		l.follow = !l.follow
		if l.follow {
			l.vp.GotoBottom()
			return l.refresh(), false
		}
	case key.Matches(msg, keys.Search):
		l.searchActive = true
		l.searchInput.SetValue("")
		return l.searchInput.Focus(), false
	case key.Matches(msg, keys.NextMatch), key.Matches(msg, keys.PrevMatch):
		delta := 1
		if key.Matches(msg, keys.PrevMatch) {
			delta = -1
		}
		l.stepMatch(delta)
		l.render(theme)
		l.scrollToMatch()
	case key.Matches(msg, keys.Top):
		l.vp.GotoTop()
		l.follow = false
	case key.Matches(msg, keys.Bottom):
		l.vp.GotoBottom()
		l.follow = true
	case key.Matches(msg, keys.Down):
		l.vp.ScrollDown(1)
		l.follow = false
	case key.Matches(msg, keys.Up):
		l.vp.ScrollUp(1)
		l.follow = false
	case key.Matches(msg, keys.PageDown):
		l.vp.HalfPageDown()
		l.follow = false
	case key.Matches(msg, keys.PageUp):
		l.vp.HalfPageUp()
		l.follow = false
	}
	return nil, false
}

func (l *logState) view(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := "reel log"
	if l.searchRegex != nil {
		title += " (filtered highlight)"
	}
	box := theme.renderTitledBox(title, l.vp.View(), width, height-1, true)

	var status string
	switch {
	case l.searchActive:
		status = styles.AccentText.Render("search: ") + l.searchInput.View()
	case l.searchRegex != nil && len(l.searchMatches) == 0:
		status = styles.DangerText.Render("Pattern not found: " + l.searchQuery)
	case l.searchRegex != nil:
		status = styles.AccentText.Render("/"+l.searchQuery) +
			styles.WarningText.Render(fmt.Sprintf(" %d/%d", l.searchMatchIdx+1, len(l.searchMatches))) +
			styles.FaintText.Render(" n/N next/prev, esc clear")
	default:
		follow := "off"
		if l.follow {
			follow = "on"
		}
		status = styles.FaintText.Render(fmt.Sprintf("%s  %s  auto-tail %s", truncate(l.path, 60), plural(len(l.lines), "line", "lines"), follow))
	}
	return box + "\n" + status
}
