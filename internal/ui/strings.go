package ui

import (
	"fmt"
	"math"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// fit truncates then pads so s occupies exactly width cells.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// stars draws a five-star gauge for rating, with half stars.
func stars(rating float64) string {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	halves := int(math.Round(rating * 2))
	if halves > 10 {
		halves = 10
	}
	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case halves >= 2:
			b.WriteString("★")
			halves -= 2
		case halves == 1:
			b.WriteString("⯪")
			halves = 0
		default:
			b.WriteString("☆")
		}
	}
	return b.String()
}

// plural renders "1 movie" or "3 movies".
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// orDash returns "-" for blank values.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// wrap breaks text into lines no wider than width, on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
