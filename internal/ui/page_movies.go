package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/route"
	"github.com/five82/reel/internal/state"
)

// searchTick fires after the search debounce window.
type searchTick struct {
	seq uint64
}

type moviesPage struct {
	e     *env
	admin bool

	filter   catalog.Filter
	debounce catalog.Debouncer
	search   textinput.Model

	movies     state.Resource[[]catalog.Movie]
	categories state.Resource[catalog.Categories]
	shown      []catalog.Movie
	cur        cursor
	spin       spinner.Model

	dialog Modal
}

func newMoviesPage(e *env, admin bool) page {
	ti := textinput.New()
	ti.Placeholder = "Search movies"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 28

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return &moviesPage{e: e, admin: admin, search: ti, spin: sp}
}

func (p *moviesPage) Init() tea.Cmd {
	return tea.Batch(
		p.refetch(),
		fetch(p.e.ctx, p.categories.Start(), p.e.gw.ListCategories),
		p.spin.Tick,
	)
}

// refetch loads the movie list for the current filter snapshot. Earlier
// fetches become stale and their results are dropped.
func (p *moviesPage) refetch() tea.Cmd {
	p.debounce.Cancel()
	filter := p.filter
	gw := p.e.gw
	p.e.logger.Debug().Str("query", filter.Values().Encode()).Msg("fetch movies")
	return fetch(p.e.ctx, p.movies.Start(), func(ctx context.Context) ([]catalog.Movie, error) {
		return gw.ListMovies(ctx, filter)
	})
}

func (p *moviesPage) Title() string {
	if p.admin {
		return "Manage Movies"
	}
	return "Movies"
}

func (p *moviesPage) Capturing() bool { return p.dialog != nil || p.search.Focused() }

func (p *moviesPage) Hints() []hint {
	if p.search.Focused() {
		return []hint{{"enter", "done"}, {"ctrl+x", "clear search"}, {"esc", "leave search"}}
	}
	hs := []hint{{"/", "search"}, {"c/C", "category"}, {"y", "year"}, {"+/-", "rating"}, {"x", "clear"}, {"enter", "open"}}
	if p.admin {
		hs = append(hs, hint{"a", "add movie"})
	}
	return hs
}

// applyShown recomputes the visible list. The admin list additionally
// narrows locally so typing filters before the debounced fetch returns.
func (p *moviesPage) applyShown() {
	p.shown = p.movies.Data
	if p.admin {
		p.shown = catalog.Apply(p.movies.Data, p.filter)
	}
	p.cur.setLen(len(p.shown))
}

func (p *moviesPage) Update(msg tea.Msg) (page, tea.Cmd) {
	keys := p.e.keys
	switch msg := msg.(type) {
	case loaded[[]catalog.Movie]:
		if !p.movies.Resolve(msg.ticket, msg.data, msg.err) {
			return p, nil
		}
		if msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Msg("fetch movies")
		}
		p.applyShown()
		return p, nil

	case loaded[catalog.Categories]:
		if p.categories.Resolve(msg.ticket, msg.data, msg.err) && msg.err != nil {
			p.e.logger.Warn().Err(msg.err).Msg("fetch categories")
		}
		return p, nil

	case searchTick:
		if !p.debounce.Current(msg.seq) {
			return p, nil
		}
		return p, p.refetch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd

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
		if p.search.Focused() {
			return p.searchKey(msg)
		}
		return p.browseKey(msg)

	case yearChosen:
		p.filter = p.filter.WithYear(string(msg))
		return p, p.refetch()
	}
	return p, nil
}

// yearChosen is the text entered in the year dialog.
type yearChosen string

func (p *moviesPage) searchKey(msg tea.KeyMsg) (page, tea.Cmd) {
	keys := p.e.keys
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Submit):
		p.search.Blur()
		return p, nil
	case key.Matches(msg, keys.Remove):
		p.search.SetValue("")
		p.filter = p.filter.ClearSearch()
		p.applyShown()
		return p, p.refetch()
	}
	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() == before {
		return p, cmd
	}
	p.filter = p.filter.WithSearch(p.search.Value())
	p.applyShown()
	seq := p.debounce.Next()
	tick := tea.Tick(catalog.SearchDebounce, func(time.Time) tea.Msg { return searchTick{seq: seq} })
	return p, tea.Batch(cmd, tick)
}

func (p *moviesPage) browseKey(msg tea.KeyMsg) (page, tea.Cmd) {
	keys := p.e.keys
	switch {
	case key.Matches(msg, keys.Search):
		return p, p.search.Focus()
	case key.Matches(msg, keys.NextCat), key.Matches(msg, keys.PrevCat):
		delta := 1
		if key.Matches(msg, keys.PrevCat) {
			delta = -1
		}
		next := catalog.NextCategory(p.categories.Data.Names(), p.filter.Category, delta)
		p.filter = p.filter.WithCategory(next)
		return p, p.refetch()
	case key.Matches(msg, keys.Year):
		current := ""
		if p.filter.Year > 0 {
			current = strconv.Itoa(p.filter.Year)
		}
		p.dialog = newInputModal("Release year", "blank for any year", current, func(v string) tea.Cmd {
			return func() tea.Msg { return yearChosen(v) }
		}).withValidation(validYearFilter)
		return p, nil
	case key.Matches(msg, keys.RatingUp):
		p.filter = p.filter.StepRating(1)
		return p, p.refetch()
	case key.Matches(msg, keys.RatingDown):
		p.filter = p.filter.StepRating(-1)
		return p, p.refetch()
	case key.Matches(msg, keys.ClearFilter):
		if p.filter.Empty() {
			return p, nil
		}
		p.filter = p.filter.Clear()
		p.search.SetValue("")
		return p, p.refetch()
	case key.Matches(msg, keys.Refresh):
		return p, p.refetch()
	case key.Matches(msg, keys.Open):
		if len(p.shown) == 0 {
			return p, nil
		}
		return p, navigate(route.MovieDetail(p.shown[p.cur.pos].ID))
	case p.admin && key.Matches(msg, keys.Add):
		return p, navigate(route.AdminAddMovie)
	}
	p.cur.handle(msg, keys, 3)
	return p, nil
}

func validYearFilter(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if n, err := strconv.Atoi(v); err != nil || n <= 0 {
		return "Enter a year such as 1999"
	}
	return ""
}

func (p *moviesPage) filterBar() string {
	styles := p.e.styles()
	label := func(name, value string) string {
		return styles.MutedText.Render(name+": ") + styles.Text.Render(value)
	}
	category := "All"
	if p.filter.Category != "" {
		category = p.filter.Category
	}
	year := "Any"
	if p.filter.Year > 0 {
		year = strconv.Itoa(p.filter.Year)
	}
	rating := "Any"
	if p.filter.MinRating > 0 {
		rating = fmt.Sprintf("%.1f+", p.filter.MinRating)
	}
	parts := []string{
		p.search.View(),
		label("Category", category),
		label("Year", year),
		label("Rating", rating),
	}
	return strings.Join(parts, "   ")
}

func (p *moviesPage) View(width, height int) string {
	if p.dialog != nil {
		return p.dialog.View(*p.e.theme, width, height)
	}
	styles := p.e.styles()
	theme := *p.e.theme

	var b strings.Builder
	b.WriteString(p.filterBar())
	b.WriteString("\n")
	status := plural(len(p.shown), "movie", "movies")
	if p.movies.Loading {
		status = p.spin.View() + " loading"
	}
	b.WriteString(styles.FaintText.Render(status))
	b.WriteString("\n\n")

	bodyRows := max(height-5, movieCardRows)
	switch {
	case p.movies.Err != nil:
		b.WriteString(styles.DangerText.Render("Failed to fetch movies. Please try again later."))
	case p.categories.Err != nil && !p.categories.HasData:
		b.WriteString(styles.WarningText.Render("Failed to fetch categories. Please try again later."))
		b.WriteString("\n")
	}
	if p.movies.Err == nil {
		if len(p.shown) == 0 && p.movies.HasData {
			b.WriteString(styles.MutedText.Render("No movies found matching your criteria."))
		} else {
			per := movieCardRows + 1
			from, to := p.cur.window(max(bodyRows/per, 1))
			for i := from; i < to; i++ {
				b.WriteString(movieCard(styles, p.shown[i], width-4, i == p.cur.pos))
				b.WriteString("\n\n")
			}
		}
	}
	return theme.renderTitledBox(p.Title(), b.String(), width, height, true)
}
