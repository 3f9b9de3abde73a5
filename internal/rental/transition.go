package rental

// Role identifies who is looking at a rental.
type Role int

const (
	// Owner is the user who placed the rental.
	Owner Role = iota
	// Admin processes pickups and returns.
	Admin
)

// Action is a user-triggered status transition.
type Action int

const (
	NoAction Action = iota
	Take
	Return
	Cancel
)

type transition struct {
	from   Status
	role   Role
	action Action
	to     Status
}

// transitions is the complete set of legal lifecycle moves. Creation
// (none -> ORDERED) happens through NewRequest, not through an action.
var transitions = []transition{
	{from: Ordered, role: Admin, action: Take, to: Taken},
	{from: Taken, role: Admin, action: Return, to: Returned},
	{from: Ordered, role: Owner, action: Cancel, to: Cancelled},
}

// ActionFor returns the single action offered to role for a rental in status,
// or NoAction.
func ActionFor(status Status, role Role) Action {
	for _, t := range transitions {
		if t.from == status && t.role == role {
			return t.action
		}
	}
	return NoAction
}

// Next returns the status reached by applying action to status. The second
// result is false when the move is not in the transition table.
func Next(status Status, action Action) (Status, bool) {
	for _, t := range transitions {
		if t.from == status && t.action == action {
			return t.to, true
		}
	}
	return status, false
}

// Allowed reports whether role may apply action to a rental in status.
func Allowed(status Status, role Role, action Action) bool {
	return action != NoAction && ActionFor(status, role) == action
}

// Label is the button text for the action.
func (a Action) Label() string {
	switch a {
	case Take:
		return "Mark as Taken"
	case Return:
		return "Mark as Returned"
	case Cancel:
		return "Cancel"
	default:
		return ""
	}
}

// Confirmation is the prompt shown before the action is sent.
func (a Action) Confirmation() string {
	switch a {
	case Take:
		return "Are you sure you want to mark this rental as taken?"
	case Return:
		return "Are you sure you want to mark this rental as returned?"
	case Cancel:
		return "Are you sure you want to cancel this rental?"
	default:
		return ""
	}
}

// Success is the banner shown after the action completes.
func (a Action) Success() string {
	switch a {
	case Take:
		return "Rental marked as taken"
	case Return:
		return "Rental marked as returned"
	case Cancel:
		return "Rental cancelled"
	default:
		return ""
	}
}
