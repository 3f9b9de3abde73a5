package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Logout     key.Binding
	GoTo       key.Binding
	Escape     key.Binding
	Nav        key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Save      key.Binding
	Toggle    key.Binding
	Remove    key.Binding
	Signup    key.Binding

	// Catalog
	Search      key.Binding
	NextCat     key.Binding
	PrevCat     key.Binding
	Year        key.Binding
	RatingUp    key.Binding
	RatingDown  key.Binding
	ClearFilter key.Binding
	Open        key.Binding
	Add         key.Binding

	// Movie detail
	Rent    key.Binding
	Rate    key.Binding
	Renters key.Binding
	Edit    key.Binding
	Delete  key.Binding

	// Rentals
	Action      key.Binding
	EmailSearch key.Binding
	CycleStatus key.Binding
	Refresh     key.Binding

	// Dialogs
	Yes key.Binding
	No  key.Binding

	// Logs
	ToggleFollow key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle help")),
		CycleTheme: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "Cycle theme")),
		Logs:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "Log viewer")),
		Logout:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "Sign out")),
		GoTo:       key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "Go to path")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Back / close")),
		Nav:        key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Switch page")),

		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "Move up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "Move down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "Go to top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "Go to bottom")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("ctrl+u", "Page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("ctrl+d", "Page down")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "Next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "Previous field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Submit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "Save")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Toggle")),
		Remove:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "Remove last")),
		Signup:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "Create account")),

		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search")),
		NextCat:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "Next/prev category")),
		PrevCat:     key.NewBinding(key.WithKeys("C")),
		Year:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Filter by year")),
		RatingUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "Rating up/down")),
		RatingDown:  key.NewBinding(key.WithKeys("-", "_")),
		ClearFilter: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Clear filters")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Open")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Add movie")),

		Rent:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Rent")),
		Rate:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Submit rating")),
		Renters: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "View renters")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Edit")),
		Delete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "Delete")),

		Action:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Rental action")),
		EmailSearch: key.NewBinding(key.WithKeys("@"), key.WithHelp("@", "Search by email")),
		CycleStatus: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Cycle status filter")),
		Refresh:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "Refresh")),

		Yes: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "Confirm")),
		No:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "Cancel")),

		ToggleFollow: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Toggle follow")),
		NextMatch:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "Next/prev log match")),
		PrevMatch:    key.NewBinding(key.WithKeys("N")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Nav, k.GoTo, k.Escape, k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.NextCat, k.Year, k.RatingUp, k.ClearFilter, k.Open, k.Add},
		{k.Rent, k.Rate, k.Renters, k.Edit, k.Delete},
		{k.Action, k.EmailSearch, k.CycleStatus, k.Refresh},
		{k.NextField, k.Submit, k.Save, k.Toggle, k.Remove, k.Signup},
		{k.Logs, k.ToggleFollow, k.NextMatch, k.CycleTheme, k.Logout, k.Help, k.Quit},
	}
}
