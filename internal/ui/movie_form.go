package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/state"
)

// Field names double as form.Errors keys.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDirector    = "director"
	fieldYear        = "releaseYear"
	fieldDuration    = "duration"
	fieldStock       = "stockQuantity"
	fieldCategory    = "categories"
	fieldActor       = "actors"
	fieldImage       = "image"
)

// saveMovieFunc persists the payload: create for the add page, update for
// the edit dialog.
type saveMovieFunc func(ctx context.Context, m catalog.Movie) (catalog.Movie, error)

// movieSavedMsg is emitted once the form has been stored.
type movieSavedMsg struct {
	movie catalog.Movie
}

// movieFormResult is the outcome of the upload-then-save command.
type movieFormResult struct {
	movie    catalog.Movie
	imageID  string
	uploaded bool
	stage    string
	err      error
}

// movieForm edits a form.Movie. Categories and actors are staged through
// their own inputs; the poster is attached from a file path.
type movieForm struct {
	e        *env
	draft    form.Movie
	fields   fieldSet
	errs     form.Errors
	banner   string
	save     saveMovieFunc
	saveFail string

	cats    state.Resource[catalog.Categories]
	catErr  string
	catPick int
	actPick int

	saving bool
}

func newMovieForm(e *env, draft form.Movie, save saveMovieFunc, saveFail string) movieForm {
	fs := newFieldSet(
		newField(fieldTitle, "Title", "Movie title"),
		newField(fieldDescription, "Description", "Short synopsis"),
		newField(fieldDirector, "Director", ""),
		newField(fieldYear, "Release year", ""),
		newField(fieldDuration, "Duration (min)", ""),
		newField(fieldStock, "Stock", ""),
		newField(fieldCategory, "Categories", "type a name, enter to add"),
		newField(fieldActor, "Actors", "type a name, enter to add"),
		newField(fieldImage, "Poster", "path to an image file"),
	)
	fs.set(fieldTitle, draft.Title)
	fs.set(fieldDescription, draft.Description)
	fs.set(fieldDirector, draft.Director)
	fs.set(fieldYear, draft.ReleaseYear)
	fs.set(fieldDuration, draft.Duration)
	fs.set(fieldStock, draft.StockQuantity)
	fs.fields[6].input.CharLimit = 64
	fs.fields[7].input.CharLimit = 64
	fs.fields[1].input.CharLimit = 2000

	return movieForm{
		e:        e,
		draft:    draft,
		fields:   fs,
		errs:     form.Errors{},
		save:     save,
		saveFail: saveFail,
	}
}

func (f *movieForm) Init() tea.Cmd {
	ticket := f.cats.Start()
	return tea.Batch(
		f.fields.focusAt(0),
		fetch(f.e.ctx, ticket, f.e.gw.ListCategories),
	)
}

func (f movieForm) capturing() bool {
	return f.fields.active()
}

// sync copies the plain text inputs into the draft.
func (f *movieForm) sync() {
	f.draft.Title = f.fields.value(fieldTitle)
	f.draft.Description = f.fields.value(fieldDescription)
	f.draft.Director = f.fields.value(fieldDirector)
	f.draft.ReleaseYear = f.fields.value(fieldYear)
	f.draft.Duration = f.fields.value(fieldDuration)
	f.draft.StockQuantity = f.fields.value(fieldStock)
}

func (f movieForm) Update(msg tea.Msg) (movieForm, tea.Cmd) {
	switch msg := msg.(type) {
	case loaded[catalog.Categories]:
		prev := f.cats.Data
		if !f.cats.Resolve(msg.ticket, msg.data, msg.err) {
			return f, nil
		}
		f.catErr = ""
		if msg.err != nil {
			f.e.logger.Warn().Err(msg.err).Msg("load categories")
			f.catErr = "Failed to load categories. Please try again."
			return f, nil
		}
		f.cats.Data = f.cats.Data.KeepProvisional(prev)
		return f, nil

	case movieFormResult:
		return f.finish(msg)

	case tea.KeyMsg:
		if f.saving {
			return f, nil
		}
		return f.handleKey(msg)
	}

	cmd, _ := f.fields.update(msg, f.e.keys)
	return f, cmd
}

func (f movieForm) handleKey(msg tea.KeyMsg) (movieForm, tea.Cmd) {
	keys := f.e.keys
	if !f.fields.active() {
		switch {
		case key.Matches(msg, keys.Save):
			return f.submit()
		case key.Matches(msg, keys.NextField), key.Matches(msg, keys.Submit):
			return f, f.fields.focusAt(f.fields.focus)
		}
		return f, nil
	}

	name := f.fields.focusedName()
	empty := strings.TrimSpace(f.fields.value(name)) == ""
	switch {
	case key.Matches(msg, keys.Escape):
		f.fields.blur()
		return f, nil
	case key.Matches(msg, keys.Save):
		return f.submit()
	case key.Matches(msg, keys.Submit):
		switch name {
		case fieldCategory:
			f.addCategory()
			return f, nil
		case fieldActor:
			f.addActor()
			return f, nil
		case fieldImage:
			f.attachImage()
			return f, nil
		}
		return f, f.fields.move(1)
	case key.Matches(msg, keys.Remove):
		switch name {
		case fieldActor:
			f.draft.RemoveActor(f.actPick)
			f.actPick = clampPick(f.actPick, len(f.draft.Actors))
		case fieldImage:
			f.draft.Image = nil
			f.draft.ImageID = ""
			f.fields.set(fieldImage, "")
			f.errs.Clear(fieldImage)
		}
		return f, nil
	}

	if empty && (name == fieldCategory || name == fieldActor) {
		switch msg.String() {
		case "left", "right":
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			if name == fieldCategory {
				f.catPick = wrapPick(f.catPick+delta, len(f.options()))
			} else {
				f.actPick = wrapPick(f.actPick+delta, len(f.draft.Actors))
			}
			return f, nil
		}
		if name == fieldCategory && key.Matches(msg, keys.Toggle) {
			if opts := f.options(); len(opts) > 0 {
				f.draft.ToggleCategory(opts[clampPick(f.catPick, len(opts))].Name)
				f.errs.Clear(fieldCategory)
			}
			return f, nil
		}
	}

	cmd, changed := f.fields.update(msg, keys)
	if changed != "" {
		f.errs.Clear(changed)
	}
	return f, cmd
}

func (f movieForm) options() catalog.Categories {
	return f.cats.Data
}

// addCategory selects the typed category, creating a provisional entry for
// names the backend does not know yet.
func (f *movieForm) addCategory() {
	name := strings.TrimSpace(f.fields.value(fieldCategory))
	if name == "" {
		return
	}
	updated, c, ok := f.cats.Data.AddProvisional(name)
	if !ok {
		return
	}
	f.cats.Data = updated
	if !f.draft.HasCategory(c.Name) {
		f.draft.ToggleCategory(c.Name)
	}
	f.fields.set(fieldCategory, "")
	f.errs.Clear(fieldCategory)
}

func (f *movieForm) addActor() {
	if f.draft.AddActor(f.fields.value(fieldActor)) {
		f.fields.set(fieldActor, "")
		f.actPick = len(f.draft.Actors) - 1
		f.errs.Clear(fieldActor)
	}
}

func (f *movieForm) attachImage() {
	path := strings.TrimSpace(f.fields.value(fieldImage))
	if path == "" {
		return
	}
	img, err := form.LoadImage(path)
	if err != nil {
		f.e.logger.Debug().Err(err).Str("path", path).Msg("attach poster")
		if errors.Is(err, api.ErrNotImage) {
			f.errs[fieldImage] = form.NotImageMessage
		} else {
			f.errs[fieldImage] = err.Error()
		}
		return
	}
	f.draft.Image = &img
	f.errs.Clear(fieldImage)
}

func (f movieForm) submit() (movieForm, tea.Cmd) {
	f.sync()
	f.errs = f.e.val.Movie(f.draft)
	if !f.errs.OK() {
		f.banner = form.Banner
		return f, nil
	}
	f.banner = ""
	f.saving = true

	draft := f.draft
	save := f.save
	gw := f.e.gw
	ctx := f.e.ctx
	return f, func() tea.Msg {
		var imageID string
		if draft.Image != nil {
			id, err := gw.UploadImage(ctx, draft.Image.Upload())
			if err != nil {
				return movieFormResult{stage: "upload", err: err}
			}
			imageID = id
		}
		saved, err := save(ctx, draft.Payload(imageID))
		return movieFormResult{movie: saved, imageID: imageID, uploaded: imageID != "", stage: "save", err: err}
	}
}

func (f movieForm) finish(res movieFormResult) (movieForm, tea.Cmd) {
	f.saving = false
	if res.uploaded {
		// The poster is stored even if the save below failed.
		f.draft.ImageID = res.imageID
		f.draft.Image = nil
	}
	if res.err != nil {
		f.e.logger.Warn().Err(res.err).Str("stage", res.stage).Msg("save movie")
		if res.stage == "upload" {
			f.banner = api.Message(res.err, "Failed to upload image")
		} else {
			f.banner = api.Message(res.err, f.saveFail)
		}
		return f, nil
	}
	f.e.logger.Info().Int64("movie_id", res.movie.ID).Str("title", res.movie.Title).Msg("movie saved")
	saved := res.movie
	return f, func() tea.Msg { return movieSavedMsg{movie: saved} }
}

func (f movieForm) hints() []hint {
	hs := []hint{{"tab", "next field"}, {"ctrl+s", "save"}, {"esc", "unfocus"}}
	switch f.fields.focusedName() {
	case fieldCategory:
		hs = append(hs, hint{"←/→ space", "pick category"})
	case fieldActor:
		hs = append(hs, hint{"←/→ ctrl+x", "remove actor"})
	case fieldImage:
		hs = append(hs, hint{"enter", "attach"}, hint{"ctrl+x", "remove"})
	}
	return hs
}

func (f movieForm) view(width int) string {
	styles := f.e.styles()
	var b strings.Builder

	if f.banner != "" {
		b.WriteString(styles.DangerText.Render(f.banner))
		b.WriteString("\n\n")
	}
	b.WriteString(f.fields.view(styles, f.errs, width))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Bold(true).Render("Categories"))
	b.WriteString("\n")
	switch {
	case f.cats.Loading:
		b.WriteString(styles.FaintText.Render("Loading categories..."))
	case f.catErr != "":
		b.WriteString(styles.DangerText.Render(f.catErr))
	}
	b.WriteString("\n")
	picking := f.fields.focusedName() == fieldCategory
	var chips []string
	for i, c := range f.options() {
		mark := "[ ]"
		if f.draft.HasCategory(c.Name) {
			mark = "[x]"
		}
		chip := mark + " " + c.Name
		if c.Provisional() {
			chip += "*"
		}
		switch {
		case picking && i == clampPick(f.catPick, len(f.options())):
			chip = styles.Selected.Render(chip)
		case f.draft.HasCategory(c.Name):
			chip = styles.AccentText.Render(chip)
		default:
			chip = styles.Text.Render(chip)
		}
		chips = append(chips, chip)
	}
	b.WriteString(strings.Join(chips, "  "))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Bold(true).Render("Cast"))
	b.WriteString("\n")
	if len(f.draft.Actors) == 0 {
		b.WriteString(styles.FaintText.Render("No actors yet"))
	}
	picking = f.fields.focusedName() == fieldActor
	var cast []string
	for i, a := range f.draft.Actors {
		if picking && i == clampPick(f.actPick, len(f.draft.Actors)) {
			cast = append(cast, styles.Selected.Render(a))
			continue
		}
		cast = append(cast, styles.Text.Render(a))
	}
	b.WriteString(strings.Join(cast, styles.FaintText.Render(", ")))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Bold(true).Render("Poster"))
	b.WriteString("\n")
	switch {
	case f.draft.Image != nil:
		b.WriteString(styles.Text.Render("New: " + f.draft.Image.Summary()))
	case f.draft.ImageID != "":
		b.WriteString(styles.Text.Render("Current: " + f.draft.ImageID))
	default:
		b.WriteString(styles.FaintText.Render("No image"))
	}
	if f.saving {
		b.WriteString("\n\n")
		b.WriteString(styles.InfoText.Render(fmt.Sprintf("Saving %q...", strings.TrimSpace(f.draft.Title))))
	}
	return b.String()
}

func clampPick(i, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

func wrapPick(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
