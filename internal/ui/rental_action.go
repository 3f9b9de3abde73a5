package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/rental"
)

// rentalActionMsg reports the outcome of a take, return or cancel.
type rentalActionMsg struct {
	rentalID int64
	action   rental.Action
	updated  rental.Rental
	err      error
}

// runRentalAction sends the transition for action to the backend.
func runRentalAction(ctx context.Context, gw api.Gateway, r rental.Rental, action rental.Action) tea.Cmd {
	return func() tea.Msg {
		var (
			updated rental.Rental
			err     error
		)
		switch action {
		case rental.Take:
			updated, err = gw.TakeRental(ctx, r.ID)
		case rental.Return:
			updated, err = gw.ReturnRental(ctx, r.ID)
		case rental.Cancel:
			updated, err = gw.CancelRental(ctx, r.ID)
		default:
			err = fmt.Errorf("no action available for rental %d", r.ID)
		}
		return rentalActionMsg{rentalID: r.ID, action: action, updated: updated, err: err}
	}
}

// confirmRentalAction returns the confirmation dialog for the action role may
// take on r, or false when there is none.
func confirmRentalAction(ctx context.Context, gw api.Gateway, r rental.Rental, role rental.Role) (Modal, bool) {
	action := r.ActionFor(role)
	if action == rental.NoAction {
		return nil, false
	}
	title := "Confirm " + actionVerb(action)
	return newConfirm(title, action.Confirmation(), runRentalAction(ctx, gw, r, action)), true
}

// actionVerb is the short name used in titles and failure messages.
func actionVerb(a rental.Action) string {
	switch a {
	case rental.Take:
		return "Take"
	case rental.Return:
		return "Return"
	case rental.Cancel:
		return "Cancel"
	default:
		return ""
	}
}

// actionFailure is the banner for a failed transition. The backend message
// is logged, not shown.
func actionFailure(a rental.Action) string {
	if a == rental.Cancel {
		return "Failed to cancel rental. Please try again."
	}
	return fmt.Sprintf("Failed to process %s. Please try again.", strings.ToLower(actionVerb(a)))
}

// Action chip colors, fixed across themes.
var actionColors = map[rental.Action]string{
	rental.Take:   "#ff9800",
	rental.Return: "#4caf50",
	rental.Cancel: "#f44336",
}

// actionButton renders the action chip, or none in faint text.
func actionButton(styles Styles, a rental.Action, none string) string {
	color, ok := actionColors[a]
	if !ok {
		return styles.FaintText.Render(none)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(a.Label())
}
