package ui

import (
	"testing"

	"github.com/five82/reel/internal/rental"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v", names)
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct{ current, want string }{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.current); got != tt.want {
			t.Fatalf("NextTheme(%s) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox", got)
	}
}

func TestStatusColor(t *testing.T) {
	nightfox := GetTheme("Nightfox")
	if got := nightfox.StatusColor(rental.Taken); got != "#f4a261" {
		t.Fatalf("Nightfox Taken = %q", got)
	}

	slate := GetTheme("Slate")
	for _, s := range rental.Statuses() {
		if got := slate.StatusColor(s); got != s.Color() {
			t.Fatalf("Slate %v = %q, want status color %q", s, got, s.Color())
		}
	}
	if got := slate.StatusColor(rental.StatusUnknown); got != slate.Muted {
		t.Fatalf("unknown status color = %q, want muted %q", got, slate.Muted)
	}
}
