package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/five82/reel/internal/catalog"
)

// Defaults for a new movie.
const (
	DefaultDuration = 90
	DefaultStock    = 1
)

// Movie is the editable state of the add/edit movie form. Numeric fields hold
// the raw text typed by the user.
type Movie struct {
	ID            int64
	Title         string
	Description   string
	Director      string
	Categories    []string
	Actors        []string
	ReleaseYear   string
	Duration      string
	StockQuantity string
	AverageRating float64
	ImageID       string

	// Image is a newly attached poster not yet uploaded.
	Image *Image
}

// NewMovie returns an empty form with the release year set to now's year.
func NewMovie(now time.Time) Movie {
	return Movie{
		ReleaseYear:   strconv.Itoa(now.Year()),
		Duration:      strconv.Itoa(DefaultDuration),
		StockQuantity: strconv.Itoa(DefaultStock),
	}
}

// MovieFromCatalog pre-populates the form for editing m.
func MovieFromCatalog(m catalog.Movie) Movie {
	m = m.Clone()
	return Movie{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Director:      m.Director,
		Categories:    m.Categories,
		Actors:        m.Actors,
		ReleaseYear:   strconv.Itoa(m.ReleaseYear),
		Duration:      strconv.Itoa(m.Duration),
		StockQuantity: strconv.Itoa(m.StockQuantity),
		AverageRating: m.AverageRating,
		ImageID:       m.ImageID,
	}
}

// Editing reports whether the form targets an existing movie.
func (m Movie) Editing() bool {
	return m.ID != 0
}

// SetCategories replaces the selection, dropping blank names and duplicates.
func (m *Movie) SetCategories(names []string) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	m.Categories = out
}

// HasCategory reports whether name is selected.
func (m Movie) HasCategory(name string) bool {
	for _, c := range m.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ToggleCategory selects or deselects name.
func (m *Movie) ToggleCategory(name string) {
	if !m.HasCategory(name) {
		m.SetCategories(append(append([]string(nil), m.Categories...), name))
		return
	}
	out := make([]string, 0, len(m.Categories))
	for _, c := range m.Categories {
		if c != name {
			out = append(out, c)
		}
	}
	m.Categories = out
}

// AddActor appends the trimmed name. Blank input is ignored.
func (m *Movie) AddActor(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	m.Actors = append(append([]string(nil), m.Actors...), trimmed)
	return true
}

// RemoveActor drops the actor at index i.
func (m *Movie) RemoveActor(i int) {
	if i < 0 || i >= len(m.Actors) {
		return
	}
	out := make([]string, 0, len(m.Actors)-1)
	out = append(out, m.Actors[:i]...)
	out = append(out, m.Actors[i+1:]...)
	m.Actors = out
}

// Payload builds the create/update body. imageID replaces the current image
// reference when non-empty. Movies are always submitted as available.
func (m Movie) Payload(imageID string) catalog.Movie {
	if imageID == "" {
		imageID = m.ImageID
	}
	return catalog.Movie{
		ID:            m.ID,
		Title:         strings.TrimSpace(m.Title),
		Description:   strings.TrimSpace(m.Description),
		Categories:    append([]string(nil), m.Categories...),
		ReleaseYear:   parseCount(m.ReleaseYear),
		Duration:      parseCount(m.Duration),
		Available:     true,
		AverageRating: m.AverageRating,
		Director:      strings.TrimSpace(m.Director),
		Actors:        append([]string(nil), m.Actors...),
		StockQuantity: parseCount(m.StockQuantity),
		ImageID:       imageID,
	}
}

// parseCount reads an integer field; anything unparsable counts as zero.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

type movieInput struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Categories    []string `json:"categories" validate:"min=1"`
	Director      string   `json:"director" validate:"required"`
	Actors        []string `json:"actors" validate:"min=1"`
	ReleaseYear   int      `json:"releaseYear" validate:"required,releaseyear"`
	Duration      int      `json:"duration" validate:"required,min=1"`
	StockQuantity *int     `json:"stockQuantity" validate:"required,min=0"`
}

var movieMessages = messages{
	"title":       {"required": "Title is required"},
	"description": {"required": "Description is required"},
	"categories":  {"min": "At least one category is required"},
	"director":    {"required": "Director is required"},
	"actors":      {"min": "At least one actor is required"},
	"releaseYear": {
		"required":    "Release year is required",
		"releaseyear": "Please enter a valid release year",
	},
	"duration": {
		"required": "Duration is required",
		"min":      "Duration must be a positive number",
	},
	"stockQuantity": {
		"required": "Stock quantity is required",
		"min":      "Stock quantity cannot be negative",
	},
}

// Movie validates the movie form.
func (val *Validator) Movie(m Movie) Errors {
	p := m.Payload("")
	in := movieInput{
		Title:       p.Title,
		Description: p.Description,
		Categories:  p.Categories,
		Director:    p.Director,
		Actors:      p.Actors,
		ReleaseYear: p.ReleaseYear,
		Duration:    p.Duration,
	}
	if n, err := strconv.Atoi(strings.TrimSpace(m.StockQuantity)); err == nil {
		in.StockQuantity = &n
	}
	return val.check(in, movieMessages)
}
