package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/rental"
)

// cursor tracks a selected row and a scroll offset over n rows.
type cursor struct {
	pos    int
	offset int
	n      int
}

func (c *cursor) setLen(n int) {
	c.n = n
	if c.pos >= n {
		c.pos = max(n-1, 0)
	}
	if c.offset > c.pos {
		c.offset = c.pos
	}
}

// handle applies a navigation key and reports whether it was one.
func (c *cursor) handle(msg tea.KeyMsg, keys keyMap, pageSize int) bool {
	if c.n == 0 {
		return false
	}
	switch {
	case key.Matches(msg, keys.Up):
		c.pos = max(c.pos-1, 0)
	case key.Matches(msg, keys.Down):
		c.pos = min(c.pos+1, c.n-1)
	case key.Matches(msg, keys.Top):
		c.pos = 0
	case key.Matches(msg, keys.Bottom):
		c.pos = c.n - 1
	case key.Matches(msg, keys.PageUp):
		c.pos = max(c.pos-max(pageSize, 1), 0)
	case key.Matches(msg, keys.PageDown):
		c.pos = min(c.pos+max(pageSize, 1), c.n-1)
	default:
		return false
	}
	return true
}

// window returns the visible [from, to) range for height rows, scrolling
// just enough to keep the selection in view.
func (c *cursor) window(height int) (int, int) {
	if height <= 0 {
		return 0, 0
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+height {
		c.offset = c.pos - height + 1
	}
	return c.offset, min(c.offset+height, c.n)
}

// rentalsTable lists rentals with the action the viewer's role may take.
type rentalsTable struct {
	rows      []rental.Rental
	cur       cursor
	role      rental.Role
	showUser  bool
	showMovie bool
	// history switches to the owner's rental history layout.
	history bool
	empty   string
}

func newRentalsTable(role rental.Role, showUser, showMovie bool) rentalsTable {
	return rentalsTable{role: role, showUser: showUser, showMovie: showMovie, empty: "No rentals found"}
}

// newHistoryTable is the signed-in user's own rental history.
func newHistoryTable() rentalsTable {
	return rentalsTable{role: rental.Owner, history: true, empty: "You have no rental history yet."}
}

func (t *rentalsTable) setRows(rows []rental.Rental) {
	t.rows = rows
	t.cur.setLen(len(rows))
}

func (t rentalsTable) selected() (rental.Rental, bool) {
	if len(t.rows) == 0 {
		return rental.Rental{}, false
	}
	return t.rows[t.cur.pos], true
}

// replace swaps in an updated rental by ID.
func (t *rentalsTable) replace(r rental.Rental) bool {
	for i := range t.rows {
		if t.rows[i].ID == r.ID {
			t.rows[i] = r
			return true
		}
	}
	return false
}

type rentalColumn struct {
	title string
	width int
	cell  func(rental.Rental) string
}

func (t rentalsTable) columns(styles Styles) []rentalColumn {
	if t.history {
		return []rentalColumn{
			{"Rental Code", 12, func(r rental.Rental) string { return r.Code() }},
			{"Movie", 24, func(r rental.Rental) string { return orDash(r.MovieTitle) }},
			{"Rental Date", 13, func(r rental.Rental) string { return formatDate(r.RentalDate) }},
			{"Return Date", 24, returnColumn},
			{"Status", 11, func(r rental.Rental) string { return statusBadge(styles, r.Status) }},
			{"Actions", 16, func(r rental.Rental) string {
				return actionButton(styles, r.ActionFor(rental.Owner), "Not cancellable")
			}},
		}
	}
	cols := []rentalColumn{
		{"ID", 6, func(r rental.Rental) string { return fmt.Sprint(r.ID) }},
	}
	if t.showUser {
		cols = append(cols, rentalColumn{"User", 18, func(r rental.Rental) string { return orDash(r.UserFullName) }})
	}
	if t.showMovie {
		cols = append(cols, rentalColumn{"Movie", 22, func(r rental.Rental) string { return orDash(r.MovieTitle) }})
	}
	return append(cols,
		rentalColumn{"Rental Code", 12, func(r rental.Rental) string { return r.Code() }},
		rentalColumn{"Rental Date", 13, func(r rental.Rental) string { return formatDate(r.RentalDate) }},
		rentalColumn{"Return By", 13, func(r rental.Rental) string { return formatDate(r.ReturnDate) }},
		rentalColumn{"Status", 11, func(r rental.Rental) string { return statusBadge(styles, r.Status) }},
		rentalColumn{"Actions", 18, func(r rental.Rental) string {
			return actionButton(styles, r.ActionFor(t.role), "-")
		}},
	)
}

func (t *rentalsTable) view(styles Styles, width, height int) string {
	if len(t.rows) == 0 {
		return styles.MutedText.Render(t.empty)
	}
	cols := t.columns(styles)

	var b strings.Builder
	var header []string
	for _, c := range cols {
		header = append(header, fit(c.title, c.width))
	}
	b.WriteString(styles.MutedText.Bold(true).Render(truncate("  "+strings.Join(header, " "), width)))
	b.WriteString("\n")

	from, to := t.cur.window(height - 1)
	for i := from; i < to; i++ {
		r := t.rows[i]
		cells := make([]string, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, cellFit(c.cell(r), c.width))
		}
		line := strings.Join(cells, " ")
		marker := "  "
		if i == t.cur.pos {
			marker = styles.AccentText.Render("▸ ")
		}
		b.WriteString(marker + line)
		if i < to-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cellFit is fit for cells that may already carry styling.
func cellFit(s string, width int) string {
	if !strings.Contains(s, "\x1b") {
		return fit(s, width)
	}
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
