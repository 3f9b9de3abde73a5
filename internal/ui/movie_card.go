package ui

import (
	"fmt"
	"strings"

	"github.com/five82/reel/internal/catalog"
)

// movieCardRows is the height of one card in the catalog list.
const movieCardRows = 4

// movieCard renders a catalog entry as movieCardRows lines: title and rating,
// synopsis, credits, then categories with availability.
func movieCard(styles Styles, m catalog.Movie, width int, selected bool) string {
	inner := max(width-2, 10)

	title := styles.Text.Bold(true).Render(truncate(m.Title, inner-14))
	rating := styles.WarningText.Render(stars(m.AverageRating)) + " " + styles.MutedText.Render(m.RatingLabel())

	credits := fmt.Sprintf("Directed by: %s", orDash(m.Director))
	if len(m.Actors) > 0 {
		credits += "  Starring: " + strings.Join(m.Actors, ", ")
	}

	var chips []string
	for _, c := range m.Categories {
		chips = append(chips, styles.InfoText.Render(c))
	}
	chips = append(chips, styles.AccentText.Render(fmt.Sprint(m.ReleaseYear)))
	availability := styles.DangerText.Render("✗ Not available")
	if m.Rentable() {
		availability = styles.SuccessText.Render("✓ " + m.AvailabilityLabel())
	}

	lines := []string{
		title + "  " + rating,
		styles.Text.Render(truncate(m.Description, inner)),
		styles.MutedText.Render(truncate(credits, inner)),
		strings.Join(chips, styles.FaintText.Render(" · ")) + "  " + availability,
	}
	marker := "  "
	if selected {
		marker = styles.AccentText.Render("▌ ")
	}
	for i := range lines {
		lines[i] = marker + lines[i]
	}
	return strings.Join(lines, "\n")
}
