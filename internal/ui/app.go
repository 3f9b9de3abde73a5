package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/route"
	"github.com/five82/reel/internal/session"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Gateway   api.Gateway
	Session   *session.Service
	Logger    zerolog.Logger
	LogPath   string
	Prefs     prefs.Prefs
	PrefsPath string
	// StartPath is the first screen requested; the gate may redirect it.
	StartPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	e         *env
	theme     *Theme
	keys      keyMap
	prefs     prefs.Prefs
	prefsPath string

	width  int
	height int
	ready  bool

	gen   uint64
	page  page
	route route.Route
	flash *flash

	showHelp   bool
	showLogs   bool
	logTicking bool
	logs       logState
	dialog     Modal

	sessions    <-chan session.Event
	unsubscribe func()
	startPath   string
}

// flashExpiredMsg clears the banner once its time is up.
type flashExpiredMsg struct{}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Default()
	}

	theme := GetTheme(p.Theme)
	keys := DefaultKeyMap()
	e := &env{
		ctx:        ctx,
		gw:         opts.Gateway,
		sess:       opts.Session,
		val:        form.NewValidator(now),
		keys:       keys,
		logger:     opts.Logger,
		now:        now,
		theme:      &theme,
		rentalDays: p.RentalDays,
	}

	m := Model{
		e:         e,
		theme:     e.theme,
		keys:      keys,
		prefs:     p,
		prefsPath: opts.PrefsPath,
		logs:      newLogState(opts.LogPath),
		startPath: opts.StartPath,
	}
	if opts.Session != nil {
		m.sessions, m.unsubscribe = opts.Session.Subscribe()
	}
	return m
}

// Close releases the session subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return navigateMsg{path: m.startPath} },
		waitForSession(m.sessions),
	)
}

// routeSession re-derives the gate input from the session store.
func (m Model) routeSession() route.Session {
	if m.e.sess == nil {
		return route.Session{}
	}
	store := m.e.sess.Store()
	return route.Session{LoggedIn: store.LoggedIn(), Admin: store.IsAdmin()}
}

// open resolves path through the gate and builds its page. Opening the page
// already shown is a no-op.
func (m *Model) open(path string) tea.Cmd {
	r := route.Final(path, m.routeSession())
	if m.page != nil && r.Path == m.route.Path {
		return nil
	}
	if requested := route.Clean(path); requested != r.Path {
		m.e.logger.Debug().Str("requested", requested).Str("path", r.Path).Msg("redirect")
	}
	m.gen++
	m.route = r
	m.page = buildPage(m.e, r)
	m.dialog = nil
	return tagCmd(m.gen, m.page.Init())
}

func (m *Model) setFlash(f flash) tea.Cmd {
	f.expires = m.e.now().Add(flashTTL)
	m.flash = &f
	return tea.Tick(flashTTL, func(time.Time) tea.Msg { return flashExpiredMsg{} })
}

// capturing reports whether printable keys belong to a text field.
func (m Model) capturing() bool {
	switch {
	case m.dialog != nil:
		return true
	case m.showLogs:
		return m.logs.searchActive
	case m.page != nil:
		return m.page.Capturing()
	}
	return false
}

func (m Model) bodyHeight() int {
	return max(m.height-chromeRows, 3)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logs.resize(m.width, m.bodyHeight())
		if m.showLogs {
			m.logs.render(*m.theme)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pageMsg:
		if msg.gen != m.gen || m.page == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg.msg)
		return m, tagCmd(m.gen, cmd)

	case navigateMsg:
		cmd := m.open(msg.path)
		if msg.flash != nil {
			cmd = tea.Batch(cmd, m.setFlash(*msg.flash))
		}
		return m, cmd

	case flashMsg:
		return m, m.setFlash(flash(msg))

	case flashExpiredMsg:
		if m.flash != nil && !m.e.now().Before(m.flash.expires) {
			m.flash = nil
		}
		return m, nil

	case sessionMsg:
		m.e.logger.Debug().Str("reason", msg.Reason.String()).Bool("logged_in", msg.LoggedIn).Msg("session changed")
		cmds := []tea.Cmd{waitForSession(m.sessions)}
		if m.page != nil {
			cmds = append(cmds, m.open(m.route.Path))
		}
		if msg.Reason == session.ReasonExternal {
			text := "Signed out in another window"
			if msg.LoggedIn {
				text = "Session changed in another window"
			}
			cmds = append(cmds, m.setFlash(flash{text: text, kind: flashInfo}))
		}
		return m, tea.Batch(cmds...)

	case logoutMsg:
		return m.logout()

	case logLoadedMsg:
		m.logs.apply(msg)
		m.logs.render(*m.theme)
		return m, nil

	case logTickMsg:
		if !m.showLogs {
			m.logTicking = false
			return m, nil
		}
		cmds := []tea.Cmd{logTick()}
		if m.logs.follow {
			cmds = append(cmds, m.logs.refresh())
		}
		return m, tea.Batch(cmds...)
	}

	// Untagged messages such as focus or mouse events go to the page.
	if m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, tagCmd(m.gen, cmd)
	}
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.e.sess == nil {
		return m, nil
	}
	if err := m.e.sess.Logout(); err != nil {
		return m, tea.Batch(m.open(route.Login), m.setFlash(flash{text: "Signed out, but the session file could not be removed", kind: flashError}))
	}
	return m, tea.Batch(m.open(route.Login), m.setFlash(flash{text: "You have been signed out", kind: flashInfo}))
}

// handleKey routes a key through overlays, global bindings, then the page.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.dialog != nil {
		var cmd tea.Cmd
		var closed bool
		m.dialog, cmd, closed = m.dialog.Update(msg, keys)
		if closed {
			m.dialog = nil
		}
		return m, cmd
	}

	if key.Matches(msg, keys.Logout) && m.routeSession().LoggedIn {
		m.showLogs = false
		return m.logout()
	}

	if !m.capturing() {
		switch {
		case key.Matches(msg, keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, keys.CycleTheme):
			return m, m.cycleTheme()
		case key.Matches(msg, keys.Logs) && !m.showLogs:
			return m, m.openLogs()
		case key.Matches(msg, keys.GoTo):
			m.showLogs = false
			m.dialog = newInputModal("Go to", "/movies", m.route.Path, func(v string) tea.Cmd {
				return navigate(v)
			})
			return m, nil
		case key.Matches(msg, keys.Nav):
			if path, ok := navTarget(m.routeSession(), msg.String()); ok {
				m.showLogs = false
				return m, m.open(path)
			}
			return m, nil
		}
	}

	if m.showLogs {
		cmd, closed := m.logs.handleKey(msg, keys, *m.theme)
		if closed {
			m.showLogs = false
		}
		return m, cmd
	}

	if m.page == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, tagCmd(m.gen, cmd)
}

func (m *Model) cycleTheme() tea.Cmd {
	*m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	if m.showLogs {
		m.logs.render(*m.theme)
	}
	if m.prefsPath == "" {
		return nil
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.e.logger.Warn().Err(err).Msg("save prefs")
	}
	return nil
}

func (m *Model) openLogs() tea.Cmd {
	m.showLogs = true
	m.logs.follow = true
	m.logs.resize(m.width, m.bodyHeight())
	m.logs.render(*m.theme)
	cmds := []tea.Cmd{m.logs.refresh()}
	if !m.logTicking {
		m.logTicking = true
		cmds = append(cmds, logTick())
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	height := m.bodyHeight()
	var body string
	switch {
	case m.dialog != nil:
		body = m.dialog.View(*m.theme, m.width, height)
	case m.showLogs:
		body = m.logs.view(*m.theme, m.width, height)
	case m.page != nil:
		body = m.page.View(m.width, height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
