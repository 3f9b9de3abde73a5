package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/reel/internal/rental"
)

// CreateRental places an order. The returned rental carries its code.
func (c *Client) CreateRental(ctx context.Context, req rental.Request) (rental.Rental, error) {
	var created rental.Rental
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint(nil, "rentals"), req, &created, "Failed to create rental"); err != nil {
		return rental.Rental{}, err
	}
	return created, nil
}

// GetRental fetches a rental by id.
func (c *Client) GetRental(ctx context.Context, id int64) (rental.Rental, error) {
	var r rental.Rental
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "rentals", itoa(id)), nil, &r, "Failed to fetch rental details"); err != nil {
		return rental.Rental{}, err
	}
	return r, nil
}

// GetRentalByCode looks a rental up by its shareable code.
func (c *Client) GetRentalByCode(ctx context.Context, code string) (rental.Rental, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return rental.Rental{}, fmt.Errorf("rental code required")
	}
	var r rental.Rental
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "rentals", "code", trimmed), nil, &r, "Failed to fetch rental details"); err != nil {
		return rental.Rental{}, err
	}
	return r, nil
}

// CancelRental cancels an ORDERED rental on behalf of its owner.
func (c *Client) CancelRental(ctx context.Context, id int64) (rental.Rental, error) {
	var r rental.Rental
	if err := c.doJSON(ctx, http.MethodPatch, c.endpoint(nil, "rentals", itoa(id), "cancel"), nil, &r, "Failed to cancel rental"); err != nil {
		return rental.Rental{}, err
	}
	return r, nil
}
