package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Rating bounds for the minimum-rating filter.
const (
	MaxRating  = 5.0
	RatingStep = 0.5
)

// SearchDebounce is the idle time after the last keystroke before a search
// fetch is issued.
const SearchDebounce = 500 * time.Millisecond

// Filter is the catalog query state.
type Filter struct {
	Search    string
	Category  string
	Year      int
	MinRating float64
}

// Values encodes the filter as query parameters. Empty and zero fields are
// omitted rather than sent as wildcards.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if search := strings.TrimSpace(f.Search); search != "" {
		values.Set("search", search)
	}
	if category := strings.TrimSpace(f.Category); category != "" {
		values.Set("category", category)
	}
	if f.Year > 0 {
		values.Set("year", strconv.Itoa(f.Year))
	}
	if rating := SnapRating(f.MinRating); rating > 0 {
		values.Set("rating", strconv.FormatFloat(rating, 'f', -1, 64))
	}
	return values
}

// Empty reports whether no filter is set.
func (f Filter) Empty() bool {
	return len(f.Values()) == 0
}

// StepRating moves the minimum rating by delta half-points.
func (f Filter) StepRating(delta int) Filter {
	f.MinRating = SnapRating(f.MinRating + float64(delta)*RatingStep)
	return f
}

// WithCategory returns f with the category replaced.
func (f Filter) WithCategory(name string) Filter {
	f.Category = strings.TrimSpace(name)
	return f
}

// WithYear parses text as a release year. Blank or invalid text clears it.
func (f Filter) WithYear(text string) Filter {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || year <= 0 {
		f.Year = 0
		return f
	}
	f.Year = year
	return f
}

// WithSearch returns f with the search text replaced.
func (f Filter) WithSearch(text string) Filter {
	f.Search = text
	return f
}

// ClearSearch returns f without the search text.
func (f Filter) ClearSearch() Filter {
	f.Search = ""
	return f
}

// Clear drops every filter.
func (f Filter) Clear() Filter {
	return Filter{}
}

// SnapRating clamps r to [0, MaxRating] and rounds it to the nearest step.
func SnapRating(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	if r >= MaxRating {
		return MaxRating
	}
	return math.Round(r/RatingStep) * RatingStep
}

// NextCategory cycles through names starting from current; an empty string
// represents "all categories" and sits before the first name.
func NextCategory(names []string, current string, delta int) string {
	options := append([]string{""}, names...)
	idx := 0
	for i, name := range options {
		if name == current {
			idx = i
			break
		}
	}
	n := len(options)
	idx = ((idx+delta)%n + n) % n
	return options[idx]
}
