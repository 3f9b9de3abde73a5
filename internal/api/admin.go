package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/rental"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadImage sends an image as multipart field "file" and returns the
// stored image id. Non-image content is rejected before any request is made.
func (c *Client) UploadImage(ctx context.Context, upload Upload) (string, error) {
	if len(upload.Data) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	mt := mimetype.Detect(upload.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	name := filepath.Base(strings.TrimSpace(upload.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "image" + mt.Extension()
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", mt.String())
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return "", fmt.Errorf("write multipart part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	var resp imageUploadResponse
	if err := c.doURL(ctx, http.MethodPost, c.endpoint(nil, "admin", "images"), &body, writer.FormDataContentType(), &resp, "Failed to upload image"); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.ImageID) == "" {
		return "", fmt.Errorf("upload response missing imageId")
	}
	return resp.ImageID, nil
}

// CreateMovie adds a movie. Category names unknown to the backend are created
// by it.
func (c *Client) CreateMovie(ctx context.Context, movie catalog.Movie) (catalog.Movie, error) {
	var created catalog.Movie
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint(nil, "admin", "movies"), movie, &created, "Failed to add movie"); err != nil {
		return catalog.Movie{}, err
	}
	return created, nil
}

// UpdateMovie replaces a movie.
func (c *Client) UpdateMovie(ctx context.Context, id int64, movie catalog.Movie) (catalog.Movie, error) {
	var updated catalog.Movie
	if err := c.doJSON(ctx, http.MethodPut, c.endpoint(nil, "admin", "movies", itoa(id)), movie, &updated, "Failed to update movie"); err != nil {
		return catalog.Movie{}, err
	}
	return updated, nil
}

// DeleteMovie removes a movie.
func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint(nil, "admin", "movies", itoa(id)), nil, nil, "Failed to delete movie")
}

// MovieRentals lists every rental of a movie.
func (c *Client) MovieRentals(ctx context.Context, movieID int64) ([]rental.Rental, error) {
	var rentals []rental.Rental
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "admin", "movies", itoa(movieID), "rentals"), nil, &rentals, "Failed to fetch movie rentals"); err != nil {
		return nil, err
	}
	return rentals, nil
}

// AdminRentals lists rentals, optionally narrowed by user email or status.
func (c *Client) AdminRentals(ctx context.Context, query AdminRentalQuery) ([]rental.Rental, error) {
	values := url.Values{}
	if email := strings.TrimSpace(query.Email); email != "" {
		values.Set("email", email)
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		values.Set("status", strings.ToUpper(status))
	}
	var rentals []rental.Rental
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(values, "admin", "rentals"), nil, &rentals, "Failed to fetch rentals"); err != nil {
		return nil, err
	}
	return rentals, nil
}

// ReturnRental marks a TAKEN rental as RETURNED.
func (c *Client) ReturnRental(ctx context.Context, id int64) (rental.Rental, error) {
	var r rental.Rental
	if err := c.doJSON(ctx, http.MethodPatch, c.endpoint(nil, "admin", "rentals", itoa(id), "return"), nil, &r, "Failed to process rental return"); err != nil {
		return rental.Rental{}, err
	}
	return r, nil
}

// TakeRental marks an ORDERED rental as TAKEN.
func (c *Client) TakeRental(ctx context.Context, id int64) (rental.Rental, error) {
	var r rental.Rental
	if err := c.doJSON(ctx, http.MethodPatch, c.endpoint(nil, "admin", "rentals", itoa(id), "take"), nil, &r, "Failed to process rental take"); err != nil {
		return rental.Rental{}, err
	}
	return r, nil
}
