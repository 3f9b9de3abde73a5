package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/rental"
	"github.com/five82/reel/internal/state"
)

// profileLoaded carries the user record and rental history fetched together.
// Each half reports its own error.
type profileLoaded struct {
	userTicket    state.Ticket
	rentalsTicket state.Ticket
	user          api.User
	rentals       []rental.Rental
	userErr       error
	rentalsErr    error
}

type profilePage struct {
	e *env

	user    state.Resource[api.User]
	rentals state.Resource[[]rental.Rental]
	loadErr string

	fields fieldSet
	errs   form.Errors
	saving bool

	table  rentalsTable
	dialog Modal
}

func newProfilePage(e *env) page {
	email := newField("email", "Email", "")
	email.readOnly = true
	p := &profilePage{
		e: e,
		fields: newFieldSet(
			email,
			newField("fullName", "Full name", ""),
			newField("phoneNumber", "Phone", ""),
			newField("address", "Address", ""),
		),
		errs:  form.Errors{},
		table: newHistoryTable(),
	}
	if u, ok := e.user(); ok {
		p.fill(u)
	}
	p.fields.blur()
	return p
}

func (p *profilePage) fill(u api.User) {
	p.fields.set("email", u.Email)
	in := form.ProfileFromUser(u)
	p.fields.set("fullName", in.FullName)
	p.fields.set("phoneNumber", in.PhoneNumber)
	p.fields.set("address", in.Address)
}

func (p *profilePage) Init() tea.Cmd {
	u, ok := p.e.user()
	if !ok {
		return nil
	}
	return p.load(u.ID)
}

// load fetches the user and their rentals concurrently.
func (p *profilePage) load(id int64) tea.Cmd {
	userTicket := p.user.Start()
	rentalsTicket := p.rentals.Start()
	gw, ctx := p.e.gw, p.e.ctx
	return func() tea.Msg {
		res := profileLoaded{userTicket: userTicket, rentalsTicket: rentalsTicket}
		var g errgroup.Group
		g.Go(func() error {
			res.user, res.userErr = gw.GetUser(ctx, id)
			return nil
		})
		g.Go(func() error {
			res.rentals, res.rentalsErr = gw.UserRentals(ctx, id)
			return nil
		})
		_ = g.Wait()
		return res
	}
}

func (p *profilePage) refreshRentals() tea.Cmd {
	u, ok := p.e.user()
	if !ok {
		return nil
	}
	gw := p.e.gw
	return fetch(p.e.ctx, p.rentals.Start(), func(ctx context.Context) ([]rental.Rental, error) {
		return gw.UserRentals(ctx, u.ID)
	})
}

func (p *profilePage) Title() string { return "Profile" }

func (p *profilePage) Capturing() bool { return p.dialog != nil || p.fields.active() }

func (p *profilePage) Hints() []hint {
	if p.fields.active() {
		return []hint{{"tab", "next field"}, {"ctrl+s", "save"}, {"esc", "done editing"}}
	}
	return []hint{{"e", "edit profile"}, {"j/k", "select rental"}, {"a", "cancel rental"}, {"R", "refresh"}}
}

func (p *profilePage) Update(msg tea.Msg) (page, tea.Cmd) {
	keys := p.e.keys
	switch msg := msg.(type) {
	case profileLoaded:
		if p.user.Resolve(msg.userTicket, msg.user, msg.userErr) && msg.userErr == nil && !p.fields.active() {
			p.fill(msg.user)
		}
		if p.rentals.Resolve(msg.rentalsTicket, msg.rentals, msg.rentalsErr) {
			p.table.setRows(p.rentals.Data)
		}
		p.loadErr = ""
		if msg.userErr != nil || msg.rentalsErr != nil {
			p.e.logger.Warn().AnErr("user_err", msg.userErr).AnErr("rentals_err", msg.rentalsErr).Msg("load profile")
			p.loadErr = "Failed to load user data. Please try again later."
		}
		return p, nil

	case loaded[[]rental.Rental]:
		if p.rentals.Resolve(msg.ticket, msg.data, msg.err) {
			if msg.err != nil {
				p.e.logger.Warn().Err(msg.err).Msg("reload rentals")
				return p, showFlash("Failed to load user data. Please try again later.", flashError)
			}
			p.table.setRows(p.rentals.Data)
		}
		return p, nil

	case rentalActionMsg:
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Int64("rental_id", msg.rentalID).Msg("cancel rental")
			return p, showFlash(actionFailure(msg.action), flashError)
		}
		p.e.logger.Info().Int64("rental_id", msg.rentalID).Msg("rental cancelled")
		return p, tea.Batch(
			showFlash("Rental cancelled successfully!", flashSuccess),
			p.refreshRentals(),
		)

	case done[api.User]:
		p.saving = false
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Msg("update profile")
			return p, showFlash("Failed to update profile. Please try again.", flashError)
		}
		p.user.Set(msg.data)
		p.fill(msg.data)
		if _, err := p.e.sess.UpdateProfile(msg.data); err != nil {
			p.e.logger.Error().Err(err).Msg("persist profile")
		}
		return p, showFlash("Profile updated successfully!", flashSuccess)

	case tea.KeyMsg:
		if p.dialog != nil {
			var cmd tea.Cmd
			var closed bool
			p.dialog, cmd, closed = p.dialog.Update(msg, keys)
			if closed {
				p.dialog = nil
			}
			return p, cmd
		}
		if p.fields.active() {
			return p.editKey(msg)
		}
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.NextField):
			return p, p.fields.focusAt(1)
		case key.Matches(msg, keys.Refresh):
			u, ok := p.e.user()
			if !ok {
				return p, nil
			}
			return p, p.load(u.ID)
		case key.Matches(msg, keys.Action):
			r, ok := p.table.selected()
			if !ok {
				return p, nil
			}
			if m, ok := confirmRentalAction(p.e.ctx, p.e.gw, r, rental.Owner); ok {
				p.dialog = m
			}
			return p, nil
		}
		p.table.cur.handle(msg, keys, 5)
		return p, nil
	}
	return p, nil
}

func (p *profilePage) editKey(msg tea.KeyMsg) (page, tea.Cmd) {
	keys := p.e.keys
	switch {
	case key.Matches(msg, keys.Escape):
		p.fields.blur()
		return p, nil
	case key.Matches(msg, keys.Save):
		return p.save()
	case key.Matches(msg, keys.Submit):
		if !p.fields.onLast() {
			return p, p.fields.move(1)
		}
		return p.save()
	}
	cmd, changed := p.fields.update(msg, keys)
	if changed != "" {
		p.errs.Clear(changed)
	}
	return p, cmd
}

func (p *profilePage) save() (page, tea.Cmd) {
	if p.saving {
		return p, nil
	}
	u, ok := p.e.user()
	if !ok {
		return p, nil
	}
	in := form.Profile{
		FullName:    p.fields.value("fullName"),
		PhoneNumber: p.fields.value("phoneNumber"),
		Address:     p.fields.value("address"),
	}
	p.errs = p.e.val.Profile(in)
	if !p.errs.OK() {
		return p, showFlash(form.Banner, flashError)
	}
	p.saving = true
	p.fields.blur()
	gw := p.e.gw
	return p, perform(p.e.ctx, "update-profile", func(ctx context.Context) (api.User, error) {
		return gw.UpdateUser(ctx, u.ID, in.Update())
	})
}

func (p *profilePage) View(width, height int) string {
	if p.dialog != nil {
		return p.dialog.View(*p.e.theme, width, height)
	}
	theme := *p.e.theme
	styles := p.e.styles()

	var top strings.Builder
	if u, ok := p.e.user(); ok {
		top.WriteString(styles.Text.Bold(true).Render(u.DisplayName()))
		top.WriteString(styles.MutedText.Render("  " + u.RoleLabel()))
		top.WriteString("\n\n")
	}
	if p.loadErr != "" {
		top.WriteString(styles.DangerText.Render(p.loadErr))
		top.WriteString("\n")
	}
	top.WriteString(p.fields.view(styles, p.errs, width-4))
	if p.saving {
		top.WriteString(styles.InfoText.Render("Saving..."))
	}

	formHeight := min(strings.Count(top.String(), "\n")+3, height/2)
	formBox := theme.renderTitledBox("Account", top.String(), width, formHeight, p.fields.active())

	tableHeight := max(height-formHeight, 4)
	var body string
	switch {
	case p.rentals.Loading && !p.rentals.HasData:
		body = styles.FaintText.Render("Loading rentals...")
	default:
		body = p.table.view(styles, width-4, tableHeight-2)
	}
	title := "Rental History"
	if n := len(p.table.rows); n > 0 {
		title += " (" + plural(n, "rental", "rentals") + ")"
	}
	tableBox := theme.renderTitledBox(title, body, width, tableHeight, !p.fields.active())
	return formBox + "\n" + tableBox
}
