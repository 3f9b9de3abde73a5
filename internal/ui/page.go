package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/rental"
	"github.com/five82/reel/internal/route"
	"github.com/five82/reel/internal/session"
	"github.com/five82/reel/internal/state"
)

// page is one screen. Pages receive every key while they are shown, except
// the global ones the root model handles first.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View(width, height int) string
	Title() string
	Hints() []hint
	// Capturing reports whether a text field has focus, in which case
	// printable global shortcuts are passed through as text.
	Capturing() bool
}

// hint is one entry in the command bar.
type hint struct {
	key  string
	desc string
}

// env is what every page shares with the root model.
type env struct {
	ctx        context.Context
	gw         api.Gateway
	sess       *session.Service
	val        *form.Validator
	keys       keyMap
	logger     zerolog.Logger
	now        func() time.Time
	theme      *Theme
	rentalDays int
}

func (e *env) user() (api.User, bool) {
	if e.sess == nil {
		return api.User{}, false
	}
	return e.sess.Current()
}

func (e *env) isAdmin() bool {
	u, ok := e.user()
	return ok && u.Admin
}

func (e *env) role() rental.Role {
	if e.isAdmin() {
		return rental.Admin
	}
	return rental.Owner
}

func (e *env) styles() Styles {
	return e.theme.Styles()
}

// flashKind colors a banner.
type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashError
)

// flash is a transient banner shown in the footer.
type flash struct {
	text    string
	kind    flashKind
	expires time.Time
}

// navigateMsg asks the root model to open path.
type navigateMsg struct {
	path  string
	flash *flash
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

func navigateWith(path, text string, kind flashKind) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path, flash: &flash{text: text, kind: kind}}
	}
}

// flashMsg shows a banner without navigating.
type flashMsg flash

func showFlash(text string, kind flashKind) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text, kind: kind} }
}

// pageMsg carries a command result back to the page instance that issued
// it. Results for a page that has since been replaced are dropped.
type pageMsg struct {
	gen uint64
	msg tea.Msg
}

// tagCmd wraps cmd so its result is delivered as a pageMsg for gen.
func tagCmd(gen uint64, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			wrapped := make(tea.BatchMsg, 0, len(msg))
			for _, c := range msg {
				wrapped = append(wrapped, tagCmd(gen, c))
			}
			return wrapped
		case navigateMsg, flashMsg, logoutMsg, tea.QuitMsg:
			// Root-level requests are not page-scoped.
			return msg
		default:
			return pageMsg{gen: gen, msg: msg}
		}
	}
}

// loaded is the result of a fetch started with a state ticket.
type loaded[T any] struct {
	ticket state.Ticket
	data   T
	err    error
}

func fetch[T any](ctx context.Context, ticket state.Ticket, fn func(context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := fn(ctx)
		return loaded[T]{ticket: ticket, data: data, err: err}
	}
}

// done is the result of a one-off action such as a rental transition.
type done[T any] struct {
	action string
	data   T
	err    error
}

func perform[T any](ctx context.Context, action string, fn func(context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := fn(ctx)
		return done[T]{action: action, data: data, err: err}
	}
}

// logoutMsg asks the root model to end the session.
type logoutMsg struct{}

// sessionMsg is a session change observed through the store subscription.
type sessionMsg session.Event

func waitForSession(ch <-chan session.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return sessionMsg(ev)
	}
}

// buildPage constructs the page for a resolved route.
func buildPage(e *env, r route.Route) page {
	switch r.Page {
	case route.PageLogin:
		return newLoginPage(e)
	case route.PageSignup:
		return newSignupPage(e)
	case route.PageProfile:
		return newProfilePage(e)
	case route.PageMovies:
		return newMoviesPage(e, false)
	case route.PageAdminMovies:
		return newMoviesPage(e, true)
	case route.PageMovieDetail:
		id, _ := r.MovieID()
		return newMoviePage(e, id)
	case route.PageAdminRentals:
		return newAdminRentalsPage(e)
	case route.PageAdminAddMovie:
		return newAddMoviePage(e)
	default:
		return newLoginPage(e)
	}
}
