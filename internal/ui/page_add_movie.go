package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/route"
)

type addMoviePage struct {
	e    *env
	form movieForm
}

func newAddMoviePage(e *env) page {
	return &addMoviePage{
		e:    e,
		form: newMovieForm(e, form.NewMovie(e.now()), e.gw.CreateMovie, "Failed to add movie. Please try again."),
	}
}

func (p *addMoviePage) Init() tea.Cmd { return p.form.Init() }

func (p *addMoviePage) Title() string { return "Add New Movie" }

func (p *addMoviePage) Capturing() bool { return p.form.capturing() }

func (p *addMoviePage) Hints() []hint {
	if p.form.capturing() {
		return p.form.hints()
	}
	return []hint{{"tab", "edit"}, {"ctrl+s", "save"}, {"esc", "back to movies"}}
}

func (p *addMoviePage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case movieSavedMsg:
		return p, navigateWith(route.AdminMovies, "Movie added successfully", flashSuccess)
	case tea.KeyMsg:
		if !p.form.capturing() && key.Matches(msg, p.e.keys.Escape) {
			return p, navigate(route.AdminMovies)
		}
	}
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	return p, cmd
}

func (p *addMoviePage) View(width, height int) string {
	return p.e.theme.renderTitledBox(p.Title(), p.form.view(width-4), width, height, true)
}
