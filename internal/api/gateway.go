package api

import (
	"context"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/rental"
)

// Gateway is the full backend surface used by the UI. It is implemented by
// *Client and by fakes in tests.
type Gateway interface {
	Register(ctx context.Context, req RegistrationRequest) (User, error)
	Login(ctx context.Context, req LoginRequest) (User, error)

	ListMovies(ctx context.Context, filter catalog.Filter) ([]catalog.Movie, error)
	GetMovie(ctx context.Context, id int64) (catalog.Movie, error)
	ListCategories(ctx context.Context) (catalog.Categories, error)
	RateMovie(ctx context.Context, movieID int64, req RatingRequest) (Rating, error)
	FetchImage(ctx context.Context, imageID string) (ImageInfo, error)
	ImageURL(imageID string) string

	CreateRental(ctx context.Context, req rental.Request) (rental.Rental, error)
	GetRental(ctx context.Context, id int64) (rental.Rental, error)
	GetRentalByCode(ctx context.Context, code string) (rental.Rental, error)
	CancelRental(ctx context.Context, id int64) (rental.Rental, error)

	GetUser(ctx context.Context, id int64) (User, error)
	UpdateUser(ctx context.Context, id int64, update ProfileUpdate) (User, error)
	UserRentals(ctx context.Context, id int64) ([]rental.Rental, error)

	UploadImage(ctx context.Context, upload Upload) (string, error)
	CreateMovie(ctx context.Context, movie catalog.Movie) (catalog.Movie, error)
	UpdateMovie(ctx context.Context, id int64, movie catalog.Movie) (catalog.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	MovieRentals(ctx context.Context, movieID int64) ([]rental.Rental, error)
	AdminRentals(ctx context.Context, query AdminRentalQuery) ([]rental.Rental, error)
	ReturnRental(ctx context.Context, id int64) (rental.Rental, error)
	TakeRental(ctx context.Context, id int64) (rental.Rental, error)

	ResetSession() error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)
