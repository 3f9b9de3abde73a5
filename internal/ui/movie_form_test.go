package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/form"
)

func validDraft() form.Movie {
	d := form.NewMovie(testNow)
	d.Title = "Heat"
	d.Description = "A heist in Los Angeles."
	d.Director = "Michael Mann"
	d.ReleaseYear = "1995"
	d.Duration = "170"
	d.StockQuantity = "3"
	d.SetCategories([]string{"Crime"})
	d.AddActor("Al Pacino")
	return d
}

func newTestForm(t *testing.T, gw *fakeGateway, draft form.Movie) movieForm {
	t.Helper()
	e := newTestEnv(t, gw)
	return newMovieForm(e, draft, gw.CreateMovie, "Failed to add movie. Please try again.")
}

func TestMovieFormRejectsInvalidDraft(t *testing.T) {
	gw := &fakeGateway{}
	f := newTestForm(t, gw, form.NewMovie(testNow))

	f, cmd := f.submit()
	assert.Nil(t, cmd)
	assert.Equal(t, form.Banner, f.banner)
	assert.Equal(t, "Title is required", f.errs[fieldTitle])
	assert.Equal(t, "At least one actor is required", f.errs[fieldActor])
	assert.Empty(t, gw.created)
}

func TestMovieFormSavesAsAvailable(t *testing.T) {
	gw := &fakeGateway{}
	f := newTestForm(t, gw, validDraft())

	f, cmd := f.submit()
	require.NotNil(t, cmd)
	assert.True(t, f.saving)

	res, ok := cmd().(movieFormResult)
	require.True(t, ok)
	f, cmd = f.Update(res)
	require.NotNil(t, cmd)
	saved, ok := cmd().(movieSavedMsg)
	require.True(t, ok)

	assert.False(t, f.saving)
	assert.Equal(t, int64(1), saved.movie.ID)
	require.Len(t, gw.created, 1)
	assert.True(t, gw.created[0].Available)
	assert.Equal(t, 1995, gw.created[0].ReleaseYear)
	assert.Zero(t, gw.uploads)
}

func TestMovieFormSaveFailureBanner(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend message", &api.Error{Status: 409, Message: "Movie already exists"}, "Movie already exists"},
		{"transport error", errors.New("connection refused"), "Failed to add movie. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{createErr: tt.err}
			f := newTestForm(t, gw, validDraft())
			f, cmd := f.submit()
			f, next := f.Update(cmd())
			assert.Nil(t, next)
			assert.Equal(t, tt.want, f.banner)
			assert.False(t, f.saving)
		})
	}
}

func TestMovieFormKeepsUploadedImageWhenSaveFails(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	draft := validDraft()
	draft.Image = &form.Image{Name: "poster.png", MIME: "image/png", Data: []byte{1, 2, 3}}
	f := newTestForm(t, gw, draft)

	f, cmd := f.submit()
	f, _ = f.Update(cmd())

	assert.Equal(t, 1, gw.uploads)
	assert.Equal(t, "img-1", f.draft.ImageID)
	assert.Nil(t, f.draft.Image)
}

func TestMovieFormUploadFailureSkipsSave(t *testing.T) {
	gw := &fakeGateway{uploadErr: errors.New("too large")}
	draft := validDraft()
	draft.Image = &form.Image{Name: "poster.png", MIME: "image/png", Data: []byte{1}}
	f := newTestForm(t, gw, draft)

	f, cmd := f.submit()
	f, _ = f.Update(cmd())

	assert.Equal(t, "Failed to upload image", f.banner)
	assert.Empty(t, gw.created)
}

func TestMovieFormStagesCategoryAndActor(t *testing.T) {
	gw := &fakeGateway{}
	f := newTestForm(t, gw, form.NewMovie(testNow))

	f.fields.focusAt(6)
	f.fields.set(fieldCategory, "Noir")
	f, _ = f.Update(keyType(tea.KeyEnter))
	assert.True(t, f.draft.HasCategory("Noir"))
	assert.Equal(t, "", f.fields.value(fieldCategory))
	require.Len(t, f.cats.Data, 1)
	assert.True(t, f.cats.Data[0].Provisional())

	f.fields.focusAt(7)
	f.fields.set(fieldActor, "Robert De Niro")
	f, _ = f.Update(keyType(tea.KeyEnter))
	assert.Equal(t, []string{"Robert De Niro"}, f.draft.Actors)

	f, _ = f.Update(keyType(tea.KeyCtrlX))
	assert.Empty(t, f.draft.Actors)
}

func TestMovieFormKeepsProvisionalCategoryAcrossReload(t *testing.T) {
	gw := &fakeGateway{categories: catalog.Categories{{ID: 1, Name: "Drama"}}}
	f := newTestForm(t, gw, form.NewMovie(testNow))
	ticket := f.cats.Start()

	f.fields.focusAt(6)
	f.fields.set(fieldCategory, "Noir")
	f, _ = f.Update(keyType(tea.KeyEnter))
	require.True(t, f.draft.HasCategory("Noir"))

	f, _ = f.Update(loaded[catalog.Categories]{ticket: ticket, data: gw.categories})
	assert.Equal(t, []string{"Drama", "Noir"}, f.options().Names())
	assert.Contains(t, f.view(100), "Noir*")
}

func TestMovieFormRejectsNonImageAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text\n"), 0o644))

	f := newTestForm(t, &fakeGateway{}, validDraft())
	f.fields.focusAt(8)
	f.fields.set(fieldImage, path)
	f, _ = f.Update(keyType(tea.KeyEnter))

	assert.Equal(t, form.NotImageMessage, f.errs[fieldImage])
	assert.Nil(t, f.draft.Image)
}
