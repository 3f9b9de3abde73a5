package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/route"
)

// navItem is one entry of the navigation bar, selected with its number key.
type navItem struct {
	label string
	path  string
}

// navItems returns the navigation entries for the viewer's role.
func navItems(s route.Session) []navItem {
	switch {
	case !s.LoggedIn:
		return []navItem{{"Sign in", route.Login}, {"Sign up", route.Signup}}
	case s.Admin:
		return []navItem{
			{"Rentals", route.AdminRentals},
			{"Movies", route.AdminMovies},
			{"Add Movie", route.AdminAddMovie},
		}
	default:
		return []navItem{{"Profile", route.Profile}, {"Movies", route.Movies}}
	}
}

// navTarget maps a number key to a path. ok is false for keys beyond the bar.
func navTarget(s route.Session, keyName string) (string, bool) {
	n, err := strconv.Atoi(keyName)
	if err != nil {
		return "", false
	}
	items := navItems(s)
	if n < 1 || n > len(items) {
		return "", false
	}
	return items[n-1].path, true
}

// navActive reports whether the nav entry path covers the current page.
func navActive(entry, current string) bool {
	if entry == current {
		return true
	}
	// Movie detail belongs to whichever movies entry is shown.
	return (entry == route.Movies || entry == route.AdminMovies) && strings.HasPrefix(current, route.Movies+"/")
}

// renderHeader renders the top bar: logo, navigation and the signed-in user.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sess := m.routeSession()
	sep := bg.Spaces(2)

	left := []string{bg.Render("reel", styles.Logo)}
	for i, item := range navItems(sess) {
		label := bg.Render(strconv.Itoa(i+1), styles.FaintText) + bg.Space()
		if navActive(item.path, m.route.Path) {
			label += bg.Render(item.label, styles.AccentText.Bold(true).Underline(true))
		} else {
			label += bg.Render(item.label, styles.MutedText)
		}
		left = append(left, label)
	}
	leftStr := strings.Join(left, sep)

	var right string
	if u, ok := m.e.user(); ok {
		name := u.DisplayName()
		if m.width < LayoutCompactWidth {
			name = truncate(name, 16)
		}
		role := bg.Render(u.RoleLabel(), styles.InfoText)
		if u.Admin {
			role = bg.Render(u.RoleLabel(), styles.WarningText.Bold(true))
		}
		right = bg.Render(name, styles.Text) + bg.Space() + bg.Render("·", styles.FaintText) + bg.Space() + role
	} else {
		right = bg.Render("not signed in", styles.FaintText)
	}

	gap := m.width - lipgloss.Width(leftStr) - lipgloss.Width(right) - 2
	if gap < 1 {
		return styles.Header.Width(m.width).Render(leftStr)
	}
	return styles.Header.Width(m.width).Render(leftStr + bg.Spaces(gap) + right)
}

// renderCommandBar renders the active view's key hints and the theme.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var hints []hint
	switch {
	case m.showLogs:
		follow := "Pause"
		if !m.logs.follow {
			follow = "Follow"
		}
		hints = []hint{{"space", follow}, {"/", "Search"}, {"n/N", "Next/Prev"}, {"G", "Bottom"}, {"L", "Close"}}
	case m.dialog != nil:
		hints = []hint{{"enter", "Go"}, {"esc", "Cancel"}}
	case m.page != nil:
		hints = m.page.Hints()
	}
	if !m.capturing() {
		hints = append(hints, hint{"?", "More"})
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(hints)+2)
	for _, h := range hints {
		segments = append(segments, bg.Render(h.key, styles.AccentText)+colon+bg.Render(h.desc, styles.MutedText))
	}
	if m.showLogs && m.logs.searchQuery != "" {
		segments = append(segments, bg.Render("/"+truncate(m.logs.searchQuery, 18), styles.AccentText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFooter shows the current banner, or the page title and path.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if f := m.flash; f != nil && m.e.now().Before(f.expires) {
		style := styles.InfoText
		icon := "ℹ"
		switch f.kind {
		case flashSuccess:
			style, icon = styles.SuccessText, "✓"
		case flashError:
			style, icon = styles.DangerText, "✗"
		}
		text := truncate(f.text, max(m.width-4, 10))
		return styles.Footer.Width(m.width).Render(bg.Render(icon, style.Bold(true)) + bg.Space() + bg.Render(text, style))
	}

	title := ""
	if m.page != nil {
		title = m.page.Title()
	}
	return styles.Footer.Width(m.width).Render(
		bg.Render(title, styles.MutedText) + bg.Spaces(2) + bg.Render(m.route.Path, styles.FaintText),
	)
}
