package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/form"
	"github.com/five82/reel/internal/rental"
	"github.com/five82/reel/internal/session"
)

// fakeGateway implements the calls the tests reach; anything else panics
// through the nil embedded interface.
type fakeGateway struct {
	api.Gateway

	user       api.User
	loginErr   error
	categories catalog.Categories
	created    []catalog.Movie
	createErr  error
	uploads    int
	uploadErr  error
	rentalErr  error
	resets     int

	movie      catalog.Movie
	ratings    []api.RatingRequest
	rentReqs   []rental.Request
	refetchErr error

	movies  []catalog.Movie
	filters []catalog.Filter

	record     api.User
	userErr    error
	rentals    []rental.Rental
	rentalsErr error
	updates    []api.ProfileUpdate

	codeErr      error
	adminQueries []api.AdminRentalQuery
}

func (f *fakeGateway) Login(_ context.Context, req api.LoginRequest) (api.User, error) {
	if f.loginErr != nil {
		return api.User{}, f.loginErr
	}
	u := f.user
	u.Email = req.Email
	return u, nil
}

func (f *fakeGateway) ResetSession() error {
	f.resets++
	return nil
}

func (f *fakeGateway) ListCategories(context.Context) (catalog.Categories, error) {
	return f.categories, nil
}

func (f *fakeGateway) UploadImage(context.Context, api.Upload) (string, error) {
	f.uploads++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "img-1", nil
}

func (f *fakeGateway) CreateMovie(_ context.Context, m catalog.Movie) (catalog.Movie, error) {
	if f.createErr != nil {
		return catalog.Movie{}, f.createErr
	}
	m.ID = int64(len(f.created) + 1)
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeGateway) GetMovie(_ context.Context, id int64) (catalog.Movie, error) {
	if len(f.ratings) > 0 && f.refetchErr != nil {
		return catalog.Movie{}, f.refetchErr
	}
	m := f.movie
	m.ID = id
	return m, nil
}

func (f *fakeGateway) RateMovie(_ context.Context, movieID int64, req api.RatingRequest) (api.Rating, error) {
	f.ratings = append(f.ratings, req)
	f.movie.AverageRating = req.Rating
	return api.Rating{MovieID: movieID, UserID: req.UserID, Rating: req.Rating}, nil
}

func (f *fakeGateway) CreateRental(_ context.Context, req rental.Request) (rental.Rental, error) {
	f.rentReqs = append(f.rentReqs, req)
	return rental.Rental{ID: 11, UserID: req.UserID, MovieID: req.MovieID, RentalCode: "RC-0011", Status: rental.Ordered}, nil
}

func (f *fakeGateway) ListMovies(_ context.Context, filter catalog.Filter) ([]catalog.Movie, error) {
	f.filters = append(f.filters, filter)
	return catalog.Apply(f.movies, filter), nil
}

func (f *fakeGateway) GetUser(_ context.Context, id int64) (api.User, error) {
	if f.userErr != nil {
		return api.User{}, f.userErr
	}
	u := f.record
	u.ID = id
	return u, nil
}

func (f *fakeGateway) UpdateUser(_ context.Context, id int64, update api.ProfileUpdate) (api.User, error) {
	f.updates = append(f.updates, update)
	u := f.record
	u.ID = id
	u.FullName = update.FullName
	u.PhoneNumber = update.PhoneNumber
	u.Address = update.Address
	return u, nil
}

func (f *fakeGateway) UserRentals(context.Context, int64) ([]rental.Rental, error) {
	return f.rentals, f.rentalsErr
}

func (f *fakeGateway) AdminRentals(_ context.Context, q api.AdminRentalQuery) ([]rental.Rental, error) {
	f.adminQueries = append(f.adminQueries, q)
	return f.rentals, f.rentalsErr
}

func (f *fakeGateway) GetRentalByCode(_ context.Context, code string) (rental.Rental, error) {
	if f.codeErr != nil {
		return rental.Rental{}, f.codeErr
	}
	return rental.Rental{ID: 21, RentalCode: code, Status: rental.Ordered}, nil
}

func (f *fakeGateway) transition(id int64, to rental.Status) (rental.Rental, error) {
	if f.rentalErr != nil {
		return rental.Rental{}, f.rentalErr
	}
	return rental.Rental{ID: id, Status: to}, nil
}

func (f *fakeGateway) TakeRental(_ context.Context, id int64) (rental.Rental, error) {
	return f.transition(id, rental.Taken)
}

func (f *fakeGateway) ReturnRental(_ context.Context, id int64) (rental.Rental, error) {
	return f.transition(id, rental.Returned)
}

func (f *fakeGateway) CancelRental(_ context.Context, id int64) (rental.Rental, error) {
	return f.transition(id, rental.Cancelled)
}

var testNow = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, gw *fakeGateway) *env {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	theme := GetTheme("Nightfox")
	now := func() time.Time { return testNow }
	return &env{
		ctx:        context.Background(),
		gw:         gw,
		sess:       session.NewService(store, gw, zerolog.Nop()),
		val:        form.NewValidator(now),
		keys:       DefaultKeyMap(),
		logger:     zerolog.Nop(),
		now:        now,
		theme:      &theme,
		rentalDays: rental.DefaultDays,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
