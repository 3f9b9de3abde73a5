package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/catalog"
)

func openMovies(t *testing.T, gw *fakeGateway) *moviesPage {
	t.Helper()
	return newMoviesPage(newTestEnv(t, gw), false).(*moviesPage)
}

func sendMovies(p *moviesPage, msg tea.Msg) tea.Cmd {
	_, cmd := p.Update(msg)
	return cmd
}

func TestMoviesSearchWaitsForDebounce(t *testing.T) {
	gw := &fakeGateway{movies: []catalog.Movie{{ID: 1, Title: "Heat"}, {ID: 2, Title: "Alien"}}}
	p := openMovies(t, gw)

	sendMovies(p, keyRunes("/"))
	require.True(t, p.search.Focused())
	sendMovies(p, keyRunes("h"))
	assert.False(t, p.movies.Loading, "keystroke alone does not fetch")
	assert.Empty(t, gw.filters)

	sendMovies(p, keyRunes("e"))
	assert.Equal(t, "he", p.filter.Search)
	assert.Nil(t, sendMovies(p, searchTick{seq: 1}), "superseded keystroke")
	assert.Empty(t, gw.filters)

	cmd := sendMovies(p, searchTick{seq: 2})
	require.NotNil(t, cmd)
	assert.True(t, p.movies.Loading)
	sendMovies(p, cmd())

	require.Len(t, gw.filters, 1)
	assert.Equal(t, "he", gw.filters[0].Search)
	require.Len(t, p.shown, 1)
	assert.Equal(t, "Heat", p.shown[0].Title)

	assert.Nil(t, sendMovies(p, searchTick{seq: 2}), "fired tick is spent")
}

func TestMoviesFilterChangeFetchesImmediately(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.Msg
		check func(t *testing.T, f catalog.Filter)
	}{
		{"rating up", keyRunes("+"), func(t *testing.T, f catalog.Filter) {
			assert.Equal(t, catalog.RatingStep, f.MinRating)
		}},
		{"next category", keyRunes("c"), func(t *testing.T, f catalog.Filter) {
			assert.Equal(t, "Drama", f.Category)
		}},
		{"year", yearChosen("1999"), func(t *testing.T, f catalog.Filter) {
			assert.Equal(t, 1999, f.Year)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			p := openMovies(t, gw)
			p.categories.Set(catalog.Categories{{ID: 1, Name: "Drama"}, {ID: 2, Name: "Comedy"}})

			sendMovies(p, keyRunes("/"))
			sendMovies(p, keyRunes("h"))
			sendMovies(p, keyType(tea.KeyEsc))
			require.False(t, p.search.Focused())

			cmd := sendMovies(p, tt.msg)
			require.NotNil(t, cmd)
			assert.True(t, p.movies.Loading)
			assert.Nil(t, sendMovies(p, searchTick{seq: 1}), "pending search tick is dropped")

			sendMovies(p, cmd())
			require.Len(t, gw.filters, 1)
			assert.Equal(t, "h", gw.filters[0].Search, "search text rides along")
			tt.check(t, gw.filters[0])
		})
	}
}

func TestMoviesClearFilter(t *testing.T) {
	gw := &fakeGateway{}
	p := openMovies(t, gw)

	assert.Nil(t, sendMovies(p, keyRunes("x")), "nothing to clear")
	assert.False(t, p.movies.Loading)

	sendMovies(p, yearChosen("1999"))
	p.search.SetValue("heat")
	p.filter = p.filter.WithSearch("heat")

	cmd := sendMovies(p, keyRunes("x"))
	require.NotNil(t, cmd)
	assert.True(t, p.filter.Empty())
	assert.Empty(t, p.search.Value())
	sendMovies(p, cmd())
	assert.Equal(t, catalog.Filter{}, gw.filters[len(gw.filters)-1])
}
