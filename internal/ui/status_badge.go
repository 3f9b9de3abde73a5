package ui

import (
	"time"

	"github.com/five82/reel/internal/rental"
)

// statusBadge renders a rental status as a colored chip.
func statusBadge(styles Styles, status rental.Status) string {
	label := status.Label()
	if label == "" {
		label = "Unknown"
	}
	return styles.StatusStyle(status).Render(label)
}

// formatDate renders a rental date as "Mar 05, 2025", or N/A when missing.
func formatDate(d rental.Date) string {
	if !d.Valid() {
		return "N/A"
	}
	return d.Time.In(time.Local).Format("Jan 02, 2006")
}

// returnColumn is the return date as the owner sees it: the actual date once
// returned, "Cancelled" for cancelled rentals, otherwise the expected date.
func returnColumn(r rental.Rental) string {
	switch r.Status {
	case rental.Returned:
		return formatDate(r.ReturnDate)
	case rental.Cancelled:
		return "Cancelled"
	default:
		return formatDate(r.ReturnDate) + " (Expected)"
	}
}
