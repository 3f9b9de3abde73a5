package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/route"
)

// signupSuccess is shown on the login page after registering.
const signupSuccess = "Registration successful. Please sign in."

type signupPage struct {
	e       *env
	fields  fieldSet
	errs    form.Errors
	general string
	busy    bool
}

func newSignupPage(e *env) page {
	return &signupPage{
		e: e,
		fields: newFieldSet(
			newField("fullName", "Full name", ""),
			newField("email", "Email", "you@example.com"),
			passwordField("password", "Password"),
			passwordField("confirmPassword", "Confirm password"),
			newField("phoneNumber", "Phone", "optional"),
			newField("address", "Address", "optional"),
		),
		errs: form.Errors{},
	}
}

func (p *signupPage) Init() tea.Cmd { return p.fields.focusAt(0) }

func (p *signupPage) Title() string { return "Create account" }

func (p *signupPage) Capturing() bool { return p.fields.active() }

func (p *signupPage) Hints() []hint {
	return []hint{{"enter", "next / register"}, {"ctrl+s", "register"}, {"esc", "back to sign in"}}
}

func (p *signupPage) input() form.Signup {
	return form.Signup{
		FullName:        p.fields.value("fullName"),
		Email:           p.fields.value("email"),
		Password:        p.fields.value("password"),
		ConfirmPassword: p.fields.value("confirmPassword"),
		PhoneNumber:     p.fields.value("phoneNumber"),
		Address:         p.fields.value("address"),
	}
}

func (p *signupPage) Update(msg tea.Msg) (page, tea.Cmd) {
	keys := p.e.keys
	switch msg := msg.(type) {
	case done[api.User]:
		p.busy = false
		if msg.err != nil {
			p.e.logger.Info().Err(msg.err).Msg("registration failed")
			p.general = api.Message(msg.err, "Registration failed")
			return p, nil
		}
		p.e.logger.Info().Int64("user_id", msg.data.ID).Msg("registered")
		return p, navigateWith(route.Login, signupSuccess, flashSuccess)

	case tea.KeyMsg:
		if p.busy {
			return p, nil
		}
		switch {
		case key.Matches(msg, keys.Escape):
			if p.fields.active() {
				p.fields.blur()
				return p, nil
			}
			return p, navigate(route.Login)
		case key.Matches(msg, keys.Save):
			return p.submit()
		case key.Matches(msg, keys.Submit):
			if p.fields.active() && !p.fields.onLast() {
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

func (p *signupPage) submit() (page, tea.Cmd) {
	in := p.input()
	p.errs = p.e.val.Signup(in)
	if !p.errs.OK() {
		return p, nil
	}
	p.busy = true
	p.general = ""
	gw := p.e.gw
	return p, perform(p.e.ctx, "register", func(ctx context.Context) (api.User, error) {
		return gw.Register(ctx, in.Request())
	})
}

func (p *signupPage) View(width, height int) string {
	styles := p.e.styles()
	body := styles.Text.Bold(true).Render("Create an account") + "\n\n"
	if p.general != "" {
		body += styles.DangerText.Render(p.general) + "\n\n"
	}
	body += p.fields.view(styles, p.errs, 60)
	if p.busy {
		body += "\n" + styles.InfoText.Render("Creating account...")
	}
	return p.e.theme.placeModal(p.e.theme.modalFrame(66).Render(body), width, height)
}
