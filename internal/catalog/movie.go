package catalog

import (
	"fmt"
	"strings"
)

// Movie is a catalog entry.
type Movie struct {
	ID            int64    `json:"id,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	ReleaseYear   int      `json:"releaseYear"`
	Duration      int      `json:"duration"`
	Available     bool     `json:"available"`
	AverageRating float64  `json:"averageRating"`
	Director      string   `json:"director"`
	Actors        []string `json:"actors"`
	StockQuantity int      `json:"stockQuantity"`
	ImageID       string   `json:"imageId,omitempty"`
}

// Rentable reports whether a rental may be offered. Zero stock wins over the
// availability flag.
func (m Movie) Rentable() bool {
	return m.Available && m.StockQuantity > 0
}

// RatingLabel renders the average rating as "4.5/5".
func (m Movie) RatingLabel() string {
	return fmt.Sprintf("%.1f/5", m.AverageRating)
}

// DurationLabel renders minutes as "2h 15m".
func (m Movie) DurationLabel() string {
	if m.Duration <= 0 {
		return "-"
	}
	h, mins := m.Duration/60, m.Duration%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, mins)
	}
}

// AvailabilityLabel is the short stock line shown on cards.
func (m Movie) AvailabilityLabel() string {
	if !m.Rentable() {
		return "Not available"
	}
	return fmt.Sprintf("Available (%d in stock)", m.StockQuantity)
}

// Clone returns a deep copy.
func (m Movie) Clone() Movie {
	dup := m
	dup.Categories = append([]string(nil), m.Categories...)
	dup.Actors = append([]string(nil), m.Actors...)
	return dup
}

// HasCategory reports an exact category match.
func (m Movie) HasCategory(name string) bool {
	for _, c := range m.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Match applies f the way the backend does: substring search on title,
// exact category and year, and a minimum average rating. It is used for
// local narrowing; the backend stays authoritative for fetched lists.
func Match(m Movie, f Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(m.Title), q) {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && !m.HasCategory(c) {
		return false
	}
	if f.Year > 0 && m.ReleaseYear != f.Year {
		return false
	}
	if f.MinRating > 0 && m.AverageRating < f.MinRating {
		return false
	}
	return true
}

// Apply returns the movies matching f, preserving order.
func Apply(movies []Movie, f Filter) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if Match(m, f) {
			out = append(out, m)
		}
	}
	return out
}
