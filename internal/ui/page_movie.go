package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/rental"
	"github.com/five82/reel/internal/route"
	"github.com/five82/reel/internal/state"
)

// rentDialog picks a return date and shows the rental code once created.
type rentDialog struct {
	days    int
	busy    bool
	err     string
	created *rental.Rental
}

// ratingResult carries a submitted rating and the reloaded movie. A failed
// reload does not undo the stored rating.
type ratingResult struct {
	movie      catalog.Movie
	err        error
	refreshErr error
}

// rentersView lists everyone who rented the movie.
type rentersView struct {
	rentals state.Resource[[]rental.Rental]
	table   rentalsTable
	err     string
}

type moviePage struct {
	e  *env
	id int64

	movie  state.Resource[catalog.Movie]
	poster state.Resource[api.ImageInfo]
	rating float64
	rated  bool

	rent    *rentDialog
	renters *rentersView
	edit    *movieForm
	dialog  Modal
}

func newMoviePage(e *env, id int64) page {
	return &moviePage{e: e, id: id}
}

func (p *moviePage) Init() tea.Cmd {
	return p.load()
}

func (p *moviePage) load() tea.Cmd {
	id, gw := p.id, p.e.gw
	return fetch(p.e.ctx, p.movie.Start(), func(ctx context.Context) (catalog.Movie, error) {
		return gw.GetMovie(ctx, id)
	})
}

func (p *moviePage) loadPoster(imageID string) tea.Cmd {
	if strings.TrimSpace(imageID) == "" {
		p.poster.Reset()
		return nil
	}
	gw := p.e.gw
	return fetch(p.e.ctx, p.poster.Start(), func(ctx context.Context) (api.ImageInfo, error) {
		return gw.FetchImage(ctx, imageID)
	})
}

func (p *moviePage) Title() string {
	if p.movie.HasData {
		return p.movie.Data.Title
	}
	return "Movie"
}

func (p *moviePage) Capturing() bool {
	return p.dialog != nil || p.rent != nil || p.renters != nil || (p.edit != nil && p.edit.capturing())
}

func (p *moviePage) Hints() []hint {
	switch {
	case p.edit != nil:
		return append(p.edit.hints(), hint{"esc", "close"})
	case p.rent != nil:
		if p.rent.created != nil {
			return []hint{{"esc", "close"}}
		}
		return []hint{{"+/-", "days"}, {"enter", "confirm rental"}, {"esc", "cancel"}}
	case p.renters != nil:
		return []hint{{"j/k", "select"}, {"a", "rental action"}, {"esc", "close"}}
	}
	hs := []hint{{"+/-", "rating"}, {"s", "submit rating"}}
	if p.e.isAdmin() {
		hs = append(hs, hint{"v", "renters"}, hint{"e", "edit"}, hint{"D", "delete"})
	} else {
		hs = append(hs, hint{"r", "rent"})
	}
	return append(hs, hint{"esc", "back"})
}

func (p *moviePage) backPath() string {
	if p.e.isAdmin() {
		return route.AdminMovies
	}
	return route.Movies
}

func (p *moviePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case loaded[catalog.Movie]:
		if !p.movie.Resolve(msg.ticket, msg.data, msg.err) {
			return p, nil
		}
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Int64("movie_id", p.id).Msg("load movie")
			return p, nil
		}
		p.rating = msg.data.AverageRating
		p.rated = false
		return p, p.loadPoster(msg.data.ImageID)

	case loaded[api.ImageInfo]:
		if p.poster.Resolve(msg.ticket, msg.data, msg.err) && msg.err != nil {
			p.e.logger.Debug().Err(msg.err).Msg("fetch poster")
		}
		return p, nil

	case ratingResult:
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Msg("submit rating")
			return p, showFlash(api.Message(msg.err, "Failed to submit rating. Please try again."), flashError)
		}
		if msg.refreshErr != nil {
			// The rating is stored; only the new average is missing.
			p.e.logger.Warn().Err(msg.refreshErr).Int64("movie_id", p.id).Msg("reload movie after rating")
		} else {
			p.movie.Set(msg.movie)
		}
		p.rating = p.movie.Data.AverageRating
		p.rated = false
		return p, showFlash("Your rating has been submitted successfully!", flashSuccess)

	case done[rental.Rental]:
		if p.rent == nil {
			return p, nil
		}
		p.rent.busy = false
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Int64("movie_id", p.id).Msg("create rental")
			p.rent.err = api.Message(msg.err, "Failed to create rental. Please try again.")
			return p, nil
		}
		created := msg.data
		p.rent.created = &created
		p.e.logger.Info().Int64("rental_id", created.ID).Str("code", created.RentalCode).Msg("rental created")
		return p, showFlash("Rental successfully created!", flashSuccess)

	case done[struct{}]:
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Int64("movie_id", p.id).Msg("delete movie")
			return p, showFlash(api.Message(msg.err, "Failed to delete movie. Please try again."), flashError)
		}
		p.e.logger.Info().Int64("movie_id", p.id).Msg("movie deleted")
		return p, navigateWith(route.AdminMovies, "Movie deleted successfully", flashSuccess)

	case loaded[[]rental.Rental]:
		if p.renters == nil || !p.renters.rentals.Resolve(msg.ticket, msg.data, msg.err) {
			return p, nil
		}
		p.renters.err = ""
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Msg("load renters")
			p.renters.err = "Failed to load rental information. Please try again."
			return p, nil
		}
		p.renters.table.setRows(msg.data)
		return p, nil

	case rentalActionMsg:
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Int64("rental_id", msg.rentalID).Msg("rental action")
			return p, showFlash(actionFailure(msg.action), flashError)
		}
		return p, tea.Batch(showFlash(msg.action.Success(), flashSuccess), p.loadRenters())

	case movieSavedMsg:
		p.edit = nil
		p.movie.Set(msg.movie)
		p.rating = msg.movie.AverageRating
		return p, tea.Batch(showFlash("Movie updated successfully", flashSuccess), p.loadPoster(msg.movie.ImageID))

	case loaded[catalog.Categories], movieFormResult:
		if p.edit != nil {
			f, cmd := p.edit.Update(msg)
			p.edit = &f
			return p, cmd
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.edit != nil {
		f, cmd := p.edit.Update(msg)
		p.edit = &f
		return p, cmd
	}
	return p, nil
}

func (p *moviePage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	keys := p.e.keys
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
	case p.edit != nil:
		if !p.edit.capturing() && key.Matches(msg, keys.Escape) {
			p.edit = nil
			return p, nil
		}
		f, cmd := p.edit.Update(msg)
		p.edit = &f
		return p, cmd
	case p.rent != nil:
		return p.rentKey(msg)
	case p.renters != nil:
		return p.rentersKey(msg)
	}

	if !p.movie.HasData {
		if key.Matches(msg, keys.Escape) {
			return p, navigate(p.backPath())
		}
		if key.Matches(msg, keys.Refresh) {
			return p, p.load()
		}
		return p, nil
	}
	m := p.movie.Data
	admin := p.e.isAdmin()

	switch {
	case key.Matches(msg, keys.Escape):
		return p, navigate(p.backPath())
	case key.Matches(msg, keys.Refresh):
		return p, p.load()
	case key.Matches(msg, keys.RatingUp), key.Matches(msg, keys.RatingDown):
		delta := catalog.RatingStep
		if key.Matches(msg, keys.RatingDown) {
			delta = -delta
		}
		p.rating = catalog.SnapRating(p.rating + delta)
		p.rated = true
		return p, nil
	case key.Matches(msg, keys.Rate):
		return p, p.submitRating()
	case !admin && key.Matches(msg, keys.Rent):
		if !m.Rentable() {
			return p, showFlash("This movie is currently out of stock", flashInfo)
		}
		p.rent = &rentDialog{days: p.e.rentalDays}
		return p, nil
	case admin && key.Matches(msg, keys.Renters):
		p.renters = &rentersView{table: newRentalsTable(rental.Admin, true, false)}
		p.renters.table.empty = "No rentals found for this movie"
		return p, p.loadRenters()
	case admin && key.Matches(msg, keys.Edit):
		gw := p.e.gw
		id := m.ID
		f := newMovieForm(p.e, form.MovieFromCatalog(m), func(ctx context.Context, mv catalog.Movie) (catalog.Movie, error) {
			return gw.UpdateMovie(ctx, id, mv)
		}, "Failed to update movie. Please try again.")
		p.edit = &f
		return p, p.edit.Init()
	case admin && key.Matches(msg, keys.Delete):
		gw := p.e.gw
		id := m.ID
		prompt := fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", m.Title)
		p.dialog = newConfirm("Delete Movie", prompt, perform(p.e.ctx, "delete", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, gw.DeleteMovie(ctx, id)
		}))
		return p, nil
	}
	return p, nil
}

// submitRating posts the chosen rating and reloads the movie for the new
// average. An unchanged rating sends nothing.
func (p *moviePage) submitRating() tea.Cmd {
	u, ok := p.e.user()
	if !ok || !p.movie.HasData {
		return nil
	}
	if p.rating == p.movie.Data.AverageRating {
		p.e.logger.Debug().Float64("rating", p.rating).Msg("rating unchanged, not submitted")
		return nil
	}
	gw, ctx, id, rating := p.e.gw, p.e.ctx, p.id, p.rating
	return func() tea.Msg {
		if _, err := gw.RateMovie(ctx, id, api.RatingRequest{UserID: u.ID, Rating: rating}); err != nil {
			return ratingResult{err: err}
		}
		m, err := gw.GetMovie(ctx, id)
		return ratingResult{movie: m, refreshErr: err}
	}
}

func (p *moviePage) rentKey(msg tea.KeyMsg) (page, tea.Cmd) {
	keys := p.e.keys
	d := p.rent
	if key.Matches(msg, keys.Escape) || (d.created != nil && key.Matches(msg, keys.Submit)) {
		p.rent = nil
		if d.created != nil {
			return p, p.load()
		}
		return p, nil
	}
	if d.busy || d.created != nil {
		return p, nil
	}
	switch {
	case key.Matches(msg, keys.RatingUp), key.Matches(msg, keys.Up), msg.String() == "right":
		d.days = min(d.days+1, rental.MaxDays)
	case key.Matches(msg, keys.RatingDown), key.Matches(msg, keys.Down), msg.String() == "left":
		d.days = max(d.days-1, rental.MinDays)
	case key.Matches(msg, keys.Submit):
		return p, p.createRental()
	}
	return p, nil
}

func (p *moviePage) createRental() tea.Cmd {
	d := p.rent
	d.err = ""
	u, _ := p.e.user()
	now := p.e.now()
	returnDate, err := rental.ReturnDateIn(d.days, now)
	if err != nil {
		d.err = err.Error()
		return nil
	}
	req, err := rental.NewRequest(u.ID, p.id, returnDate, now)
	if err != nil {
		d.err = err.Error()
		return nil
	}
	d.busy = true
	gw := p.e.gw
	return perform(p.e.ctx, "rent", func(ctx context.Context) (rental.Rental, error) {
		return gw.CreateRental(ctx, req)
	})
}

func (p *moviePage) loadRenters() tea.Cmd {
	if p.renters == nil {
		return nil
	}
	gw, id := p.e.gw, p.id
	return fetch(p.e.ctx, p.renters.rentals.Start(), func(ctx context.Context) ([]rental.Rental, error) {
		return gw.MovieRentals(ctx, id)
	})
}

func (p *moviePage) rentersKey(msg tea.KeyMsg) (page, tea.Cmd) {
	keys := p.e.keys
	switch {
	case key.Matches(msg, keys.Escape):
		p.renters = nil
		return p, nil
	case key.Matches(msg, keys.Refresh):
		return p, p.loadRenters()
	case key.Matches(msg, keys.Action):
		if r, ok := p.renters.table.selected(); ok {
			if m, ok := confirmRentalAction(p.e.ctx, p.e.gw, r, rental.Admin); ok {
				p.dialog = m
			}
		}
		return p, nil
	}
	p.renters.table.cur.handle(msg, keys, 5)
	return p, nil
}

func (p *moviePage) View(width, height int) string {
	theme := *p.e.theme
	styles := p.e.styles()
	switch {
	case p.dialog != nil:
		return p.dialog.View(theme, width, height)
	case p.edit != nil:
		return theme.renderTitledBox("Edit Movie", p.edit.view(width-4), width, height, true)
	case p.rent != nil:
		return p.rentView(theme, width, height)
	case p.renters != nil:
		body := ""
		switch {
		case p.renters.err != "":
			body = styles.DangerText.Render(p.renters.err)
		case p.renters.rentals.Loading && !p.renters.rentals.HasData:
			body = styles.FaintText.Render("Loading rentals...")
		default:
			body = p.renters.table.view(styles, width-4, height-2)
		}
		return theme.renderTitledBox("Renters: "+p.Title(), body, width, height, true)
	}

	if !p.movie.HasData {
		body := styles.FaintText.Render("Loading movie...")
		if p.movie.Err != nil {
			msg := "Failed to load movie details. Please try again later."
			if api.IsNotFound(p.movie.Err) {
				msg = "Movie not found"
			}
			body = styles.DangerText.Render(msg) + "\n\n" + styles.MutedText.Render("esc: back to movies")
		}
		return theme.renderTitledBox("Movie", body, width, height, true)
	}

	if width >= LayoutWideWidth {
		left := width * 3 / 5
		details := theme.renderTitledBox(p.Title(), p.details(left-4), left, height, true)
		poster := theme.renderTitledBox("Poster", p.posterInfo(width-left-4), width-left, height, false)
		return lipgloss.JoinHorizontal(lipgloss.Top, details, poster)
	}
	body := p.details(width-4) + "\n" + styles.MutedText.Bold(true).Render("Poster") + "\n" + p.posterInfo(width-4)
	return theme.renderTitledBox(p.Title(), body, width, height, true)
}

func (p *moviePage) details(width int) string {
	styles := p.e.styles()
	m := p.movie.Data
	label := func(name, value string) string {
		return styles.MutedText.Bold(true).Render(name+": ") + styles.Text.Render(value)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.Title))
	b.WriteString("\n")
	ratingLine := styles.WarningText.Render(stars(p.rating)) + " " + styles.MutedText.Render(fmt.Sprintf("%.1f/5", p.rating))
	if p.rated && p.rating != m.AverageRating {
		ratingLine += styles.AccentText.Render("  your rating, press s to submit")
	} else {
		ratingLine += styles.FaintText.Render("  average")
	}
	b.WriteString(ratingLine)
	b.WriteString("\n\n")
	for _, line := range wrap(m.Description, width) {
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(label("Director", orDash(m.Director)) + "\n")
	b.WriteString(label("Release Year", fmt.Sprint(m.ReleaseYear)) + "\n")
	b.WriteString(label("Duration", fmt.Sprintf("%d minutes (%s)", m.Duration, m.DurationLabel())) + "\n")
	b.WriteString(label("Stock", fmt.Sprintf("%d copies available", m.StockQuantity)) + "\n")
	b.WriteString(label("Categories", orDash(strings.Join(m.Categories, ", "))) + "\n")
	b.WriteString(label("Cast", orDash(strings.Join(m.Actors, ", "))) + "\n\n")

	if !p.e.isAdmin() {
		if m.Rentable() {
			b.WriteString(styles.SuccessText.Render("Press r to rent this movie"))
		} else {
			b.WriteString(styles.DangerText.Render("This movie is currently out of stock"))
		}
	}
	return b.String()
}

func (p *moviePage) posterInfo(width int) string {
	styles := p.e.styles()
	m := p.movie.Data
	switch {
	case m.ImageID == "":
		return styles.FaintText.Render("No poster")
	case p.poster.Loading:
		return styles.FaintText.Render("Fetching poster...")
	case p.poster.Err != nil:
		return styles.WarningText.Render("Poster unavailable")
	case p.poster.HasData:
		info := p.poster.Data
		return strings.Join([]string{
			styles.Text.Render(info.MIME),
			styles.MutedText.Render(fmt.Sprintf("%d KB", (info.Size+1023)/1024)),
			styles.FaintText.Render(truncate(info.URL, width)),
		}, "\n")
	}
	return ""
}

func (p *moviePage) rentView(theme Theme, width, height int) string {
	styles := theme.Styles()
	d := p.rent
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Rent %q", p.Title())))
	b.WriteString("\n\n")
	if d.err != "" {
		b.WriteString(styles.DangerText.Render(d.err))
		b.WriteString("\n\n")
	}
	if d.created != nil {
		b.WriteString(styles.SuccessText.Render("Rental successfully created!"))
		b.WriteString("\n\nYour rental code is:\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render("  " + d.created.Code()))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Please save this code. You'll need it to pick up the movie."))
		return theme.placeModal(theme.modalFrame(56).Render(b.String()), width, height)
	}
	returnDate, _ := rental.ReturnDateIn(d.days, p.e.now())
	b.WriteString(styles.MutedText.Render("Please select when you'd like to return the movie:"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Return Date: ") + styles.AccentText.Render("◀ "+returnDate.Format("Jan 02, 2006")+" ▶"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("Rental duration: ") + styles.Text.Bold(true).Render(plural(d.days, "day", "days")))
	b.WriteString("\n\n")
	if d.busy {
		b.WriteString(styles.InfoText.Render("Processing..."))
	} else {
		b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" confirm rental   ") +
			styles.AccentText.Render("esc") + styles.MutedText.Render(" cancel"))
	}
	return theme.placeModal(theme.modalFrame(56).Render(b.String()), width, height)
}
