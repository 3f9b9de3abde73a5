package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/route"
)

type loginPage struct {
	e       *env
	fields  fieldSet
	errs    form.Errors
	general string
	busy    bool
}

func newLoginPage(e *env) page {
	return &loginPage{
		e: e,
		fields: newFieldSet(
			newField("email", "Email", "you@example.com"),
			passwordField("password", "Password"),
		),
		errs: form.Errors{},
	}
}

func (p *loginPage) Init() tea.Cmd {
	return p.fields.focusAt(0)
}

func (p *loginPage) Title() string { return "Sign in" }

func (p *loginPage) Capturing() bool { return p.fields.active() }

func (p *loginPage) Hints() []hint {
	return []hint{{"enter", "sign in"}, {"tab", "next field"}, {"ctrl+n", "create account"}}
}

func (p *loginPage) input() form.Login {
	return form.Login{Email: p.fields.value("email"), Password: p.fields.value("password")}
}

func (p *loginPage) Update(msg tea.Msg) (page, tea.Cmd) {
	keys := p.e.keys
	switch msg := msg.(type) {
	case done[api.User]:
		p.busy = false
		if msg.err != nil {
			p.e.logger.Info().Err(msg.err).Msg("sign in failed")
			p.general = api.Message(msg.err, "An error occurred during login. Please try again.")
			return p, nil
		}
		return p, navigate(route.Session{LoggedIn: true, Admin: msg.data.Admin}.Home())

	case tea.KeyMsg:
		if p.busy {
			return p, nil
		}
		switch {
		case key.Matches(msg, keys.Signup):
			return p, navigate(route.Signup)
		case key.Matches(msg, keys.Escape):
			p.fields.blur()
			return p, nil
		case key.Matches(msg, keys.Submit):
			if !p.fields.onLast() && p.fields.active() {
				return p, p.fields.move(1)
			}
			return p.submit()
		}
		if !p.fields.active() && key.Matches(msg, keys.NextField) {
			return p, p.fields.focusAt(p.fields.focus)
		}
	}
	cmd, changed := p.fields.update(msg, keys)
	if changed != "" {
		p.errs.Clear(changed)
		p.general = ""
	}
	return p, cmd
}

func (p *loginPage) submit() (page, tea.Cmd) {
	in := p.input()
	p.errs = p.e.val.Login(in)
	if !p.errs.OK() {
		return p, nil
	}
	p.busy = true
	p.general = ""
	sess := p.e.sess
	return p, perform(p.e.ctx, "login", func(ctx context.Context) (api.User, error) {
		return sess.Login(ctx, in.Request())
	})
}

func (p *loginPage) View(width, height int) string {
	styles := p.e.styles()
	body := styles.Text.Bold(true).Render("Sign in to reel") + "\n\n"
	if p.general != "" {
		body += styles.DangerText.Render(p.general) + "\n\n"
	}
	body += p.fields.view(styles, p.errs, 56)
	body += "\n"
	if p.busy {
		body += styles.InfoText.Render("Signing in...")
	} else {
		body += styles.MutedText.Render("No account yet? Press ") + styles.AccentText.Render("ctrl+n") +
			styles.MutedText.Render(" to sign up.")
	}
	return p.e.theme.placeModal(p.e.theme.modalFrame(62).Render(body), width, height)
}
