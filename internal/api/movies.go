package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/five82/reel/internal/catalog"
)

const maxImageBytes = 20 << 20

// ListMovies returns the catalog narrowed by filter. Empty filter fields are
// not sent.
func (c *Client) ListMovies(ctx context.Context, filter catalog.Filter) ([]catalog.Movie, error) {
	var movies []catalog.Movie
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(filter.Values(), "movies"), nil, &movies, "Failed to fetch movies"); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie returns a single movie.
func (c *Client) GetMovie(ctx context.Context, id int64) (catalog.Movie, error) {
	var movie catalog.Movie
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "movies", itoa(id)), nil, &movie, "Failed to fetch movie details"); err != nil {
		return catalog.Movie{}, err
	}
	return movie, nil
}

// ListCategories returns every known category.
func (c *Client) ListCategories(ctx context.Context) (catalog.Categories, error) {
	var categories catalog.Categories
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "categories"), nil, &categories, "Failed to fetch categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

// RateMovie records the user's rating. The new average is only visible after
// refetching the movie.
func (c *Client) RateMovie(ctx context.Context, movieID int64, req RatingRequest) (Rating, error) {
	req.Rating = catalog.SnapRating(req.Rating)
	var rating Rating
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint(nil, "movies", itoa(movieID), "ratings"), req, &rating, "Failed to submit rating"); err != nil {
		return Rating{}, err
	}
	return rating, nil
}

// ImageURL returns the public URL of an uploaded image, or an empty string
// when the movie has none.
func (c *Client) ImageURL(imageID string) string {
	id := strings.TrimSpace(imageID)
	if id == "" {
		return ""
	}
	return c.endpoint(nil, "movies", "images", id).String()
}

// FetchImage downloads a poster and reports its detected type and size.
func (c *Client) FetchImage(ctx context.Context, imageID string) (ImageInfo, error) {
	link := c.ImageURL(imageID)
	if link == "" {
		return ImageInfo{}, fmt.Errorf("image id required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", c.requestID())

	resp, err := c.http.Do(req)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ImageInfo{}, decodeError(resp, "Failed to load image")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("read image: %w", err)
	}
	return ImageInfo{
		URL:  link,
		MIME: mimetype.Detect(data).String(),
		Size: len(data),
	}, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
