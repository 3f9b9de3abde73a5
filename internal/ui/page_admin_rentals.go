package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/rental"
	"github.com/five82/reel/internal/state"
)

// rentalQuery is the admin search. A rental code takes precedence over the
// email and status filters.
type rentalQuery struct {
	code   string
	email  string
	status rental.Status
}

func (q rentalQuery) empty() bool {
	return q.code == "" && q.email == "" && q.status == rental.StatusUnknown
}

type codeChosen string

type emailChosen string

type adminRentalsPage struct {
	e       *env
	query   rentalQuery
	pending rentalQuery
	rentals state.Resource[[]rental.Rental]
	table   rentalsTable
	errText string
	dialog  Modal
}

func newAdminRentalsPage(e *env) page {
	return &adminRentalsPage{e: e, table: newRentalsTable(rental.Admin, true, true)}
}

func (p *adminRentalsPage) Init() tea.Cmd { return p.refetch() }

func (p *adminRentalsPage) refetch() tea.Cmd {
	q := p.query
	p.pending = q
	gw := p.e.gw
	return fetch(p.e.ctx, p.rentals.Start(), func(ctx context.Context) ([]rental.Rental, error) {
		if q.code != "" {
			r, err := gw.GetRentalByCode(ctx, q.code)
			if err != nil {
				return nil, err
			}
			return []rental.Rental{r}, nil
		}
		status := ""
		if q.status != rental.StatusUnknown {
			status = q.status.String()
		}
		return gw.AdminRentals(ctx, api.AdminRentalQuery{Email: q.email, Status: status})
	})
}

func (p *adminRentalsPage) Title() string { return "Rental Management" }

func (p *adminRentalsPage) Capturing() bool { return p.dialog != nil }

func (p *adminRentalsPage) Hints() []hint {
	return []hint{
		{"/", "by code"}, {"@", "by email"}, {"f", "status"}, {"x", "clear"},
		{"a", "take/return"}, {"R", "refresh"},
	}
}

func (p *adminRentalsPage) Update(msg tea.Msg) (page, tea.Cmd) {
	keys := p.e.keys
	switch msg := msg.(type) {
	case loaded[[]rental.Rental]:
		if !p.rentals.Resolve(msg.ticket, msg.data, msg.err) {
			return p, nil
		}
		p.errText = ""
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Str("code", p.pending.code).Str("email", p.pending.email).Msg("fetch rentals")
			if p.pending.code != "" && api.IsNotFound(msg.err) {
				p.errText = "No rental found with that code"
				p.table.setRows(nil)
				return p, nil
			}
			p.errText = api.Message(msg.err, "Failed to fetch rentals. Please try again.")
			return p, nil
		}
		p.table.setRows(msg.data)
		return p, nil

	case rentalActionMsg:
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Int64("rental_id", msg.rentalID).Msg("rental action")
			return p, showFlash(actionFailure(msg.action), flashError)
		}
		p.e.logger.Info().Int64("rental_id", msg.rentalID).Str("status", msg.updated.Status.String()).Msg("rental updated")
		return p, tea.Batch(showFlash(msg.action.Success(), flashSuccess), p.refetch())

	case codeChosen:
		p.query = rentalQuery{code: strings.TrimSpace(string(msg))}
		return p, p.refetch()

	case emailChosen:
		p.query.code = ""
		p.query.email = strings.TrimSpace(string(msg))
		return p, p.refetch()

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
		switch {
		case key.Matches(msg, keys.Search):
			p.dialog = newInputModal("Find by rental code", "rental code", p.query.code, func(v string) tea.Cmd {
				return func() tea.Msg { return codeChosen(v) }
			})
			return p, nil
		case key.Matches(msg, keys.EmailSearch):
			p.dialog = newInputModal("Filter by user email", "user@example.com", p.query.email, func(v string) tea.Cmd {
				return func() tea.Msg { return emailChosen(v) }
			}).withValidation(func(v string) string {
				v = strings.TrimSpace(v)
				if v != "" && !form.ValidEmail(v) {
					return "Please enter a valid email address"
				}
				return ""
			})
			return p, nil
		case key.Matches(msg, keys.CycleStatus):
			p.query.code = ""
			p.query.status = nextStatusFilter(p.query.status)
			return p, p.refetch()
		case key.Matches(msg, keys.ClearFilter):
			if p.query.empty() {
				return p, nil
			}
			p.query = rentalQuery{}
			return p, p.refetch()
		case key.Matches(msg, keys.Refresh):
			return p, p.refetch()
		case key.Matches(msg, keys.Action):
			if r, ok := p.table.selected(); ok {
				if m, ok := confirmRentalAction(p.e.ctx, p.e.gw, r, rental.Admin); ok {
					p.dialog = m
				}
			}
			return p, nil
		}
		p.table.cur.handle(msg, keys, 10)
	}
	return p, nil
}

// nextStatusFilter cycles all, then each status in lifecycle order.
func nextStatusFilter(current rental.Status) rental.Status {
	statuses := rental.Statuses()
	if current == rental.StatusUnknown {
		return statuses[0]
	}
	for i, s := range statuses {
		if s == current && i+1 < len(statuses) {
			return statuses[i+1]
		}
	}
	return rental.StatusUnknown
}

func (p *adminRentalsPage) View(width, height int) string {
	theme := *p.e.theme
	styles := p.e.styles()
	if p.dialog != nil {
		return p.dialog.View(theme, width, height)
	}

	label := func(name, value string) string {
		return styles.MutedText.Render(name+": ") + styles.Text.Render(value)
	}
	status := "All"
	if p.query.status != rental.StatusUnknown {
		status = statusBadge(styles, p.query.status)
	}
	bar := strings.Join([]string{
		label("Code", orDash(p.query.code)),
		label("Email", orDash(p.query.email)),
		label("Status", status),
	}, "   ")

	var b strings.Builder
	b.WriteString(bar)
	b.WriteString("\n")
	switch {
	case p.rentals.Loading:
		b.WriteString(styles.FaintText.Render("Loading rentals..."))
	case p.errText != "":
		b.WriteString(styles.DangerText.Render(p.errText))
	default:
		b.WriteString(styles.FaintText.Render(plural(len(p.table.rows), "rental", "rentals")))
	}
	b.WriteString("\n\n")
	b.WriteString(p.table.view(styles, width-4, max(height-6, 2)))
	return theme.renderTitledBox(p.Title(), b.String(), width, height, true)
}
