package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/rental"
)

func TestCursorMovesWithinBounds(t *testing.T) {
	keys := DefaultKeyMap()
	c := cursor{}
	c.setLen(5)

	c.handle(keyRunes("k"), keys, 2)
	if c.pos != 0 {
		t.Fatalf("up at top moved to %d", c.pos)
	}
	c.handle(keyRunes("G"), keys, 2)
	if c.pos != 4 {
		t.Fatalf("bottom = %d, want 4", c.pos)
	}
	c.handle(keyRunes("j"), keys, 2)
	if c.pos != 4 {
		t.Fatalf("down at bottom moved to %d", c.pos)
	}
	c.handle(keyType(tea.KeyPgUp), keys, 2)
	if c.pos != 2 {
		t.Fatalf("page up = %d, want 2", c.pos)
	}
	if c.handle(keyRunes("z"), keys, 2) {
		t.Fatal("unbound key reported as handled")
	}
}

func TestCursorShrinkClampsSelection(t *testing.T) {
	c := cursor{pos: 7, offset: 5, n: 8}
	c.setLen(3)
	if c.pos != 2 || c.offset != 2 {
		t.Fatalf("after shrink pos=%d offset=%d", c.pos, c.offset)
	}
	c.setLen(0)
	if c.pos != 0 {
		t.Fatalf("empty list pos = %d", c.pos)
	}
}

func TestCursorWindowFollowsSelection(t *testing.T) {
	c := cursor{n: 10}
	if from, to := c.window(4); from != 0 || to != 4 {
		t.Fatalf("window = [%d,%d)", from, to)
	}
	c.pos = 6
	if from, to := c.window(4); from != 3 || to != 7 {
		t.Fatalf("window after scroll = [%d,%d), want [3,7)", from, to)
	}
	c.pos = 1
	if from, _ := c.window(4); from != 1 {
		t.Fatalf("scroll up from = %d, want 1", from)
	}
	if from, to := c.window(0); from != 0 || to != 0 {
		t.Fatal("zero height should show nothing")
	}
}

func TestNextStatusFilterCycles(t *testing.T) {
	want := []rental.Status{rental.Ordered, rental.Taken, rental.Returned, rental.Cancelled, rental.StatusUnknown}
	current := rental.StatusUnknown
	for i, w := range want {
		current = nextStatusFilter(current)
		if current != w {
			t.Fatalf("step %d = %v, want %v", i, current, w)
		}
	}
}

func TestReturnColumn(t *testing.T) {
	date := rental.Date{Time: time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)}
	tests := []struct {
		status rental.Status
		want   string
	}{
		{rental.Ordered, "Mar 12, 2025 (Expected)"},
		{rental.Taken, "Mar 12, 2025 (Expected)"},
		{rental.Returned, "Mar 12, 2025"},
		{rental.Cancelled, "Cancelled"},
	}
	for _, tt := range tests {
		got := returnColumn(rental.Rental{Status: tt.status, ReturnDate: date})
		if got != tt.want {
			t.Fatalf("returnColumn(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
	if got := formatDate(rental.Date{}); got != "N/A" {
		t.Fatalf("formatDate(zero) = %q", got)
	}
}

func TestConfirmRentalActionByRole(t *testing.T) {
	gw := &fakeGateway{}
	ordered := rental.Rental{ID: 4, Status: rental.Ordered}

	if _, ok := confirmRentalAction(context.Background(), gw, rental.Rental{ID: 5, Status: rental.Returned}, rental.Admin); ok {
		t.Fatal("returned rental should offer no action")
	}

	m, ok := confirmRentalAction(context.Background(), gw, ordered, rental.Owner)
	if !ok {
		t.Fatal("owner should be offered cancel on an ordered rental")
	}
	_, cmd, closed := m.Update(keyRunes("y"), DefaultKeyMap())
	if !closed || cmd == nil {
		t.Fatal("confirming should close the dialog and run the action")
	}
	res, ok := cmd().(rentalActionMsg)
	if !ok || res.action != rental.Cancel || res.updated.Status != rental.Cancelled || res.err != nil {
		t.Fatalf("action result = %#v", res)
	}
}

func TestRunRentalActionFailure(t *testing.T) {
	boom := errors.New("conflict")
	gw := &fakeGateway{rentalErr: boom}
	msg := runRentalAction(context.Background(), gw, rental.Rental{ID: 9, Status: rental.Ordered}, rental.Take)().(rentalActionMsg)
	if !errors.Is(msg.err, boom) || msg.rentalID != 9 {
		t.Fatalf("msg = %#v", msg)
	}
	if got := actionFailure(rental.Take); got != "Failed to process take. Please try again." {
		t.Fatalf("actionFailure(Take) = %q", got)
	}
	if got := actionFailure(rental.Cancel); got != "Failed to cancel rental. Please try again." {
		t.Fatalf("actionFailure(Cancel) = %q", got)
	}
}

func TestRentalsTableView(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	table := newHistoryTable()
	if out := table.view(styles, 120, 10); !strings.Contains(out, "You have no rental history yet.") {
		t.Fatalf("empty history view = %q", out)
	}

	table.setRows([]rental.Rental{
		{ID: 1, MovieTitle: "Heat", RentalCode: "ABC123", Status: rental.Ordered},
		{ID: 2, MovieTitle: "Ran", RentalCode: "XYZ789", Status: rental.Returned},
	})
	out := table.view(styles, 140, 10)
	for _, want := range []string{"Rental Code", "Heat", "ABC123", "Cancel", "Not cancellable"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history view missing %q:\n%s", want, out)
		}
	}
	if r, ok := table.selected(); !ok || r.ID != 1 {
		t.Fatalf("selected = %#v", r)
	}
}
