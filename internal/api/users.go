package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/five82/reel/internal/rental"
)

// GetUser fetches the account record.
func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "users", itoa(id)), nil, &user, "Failed to fetch user details"); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateUser saves the editable profile fields.
func (c *Client) UpdateUser(ctx context.Context, id int64, update ProfileUpdate) (User, error) {
	update.FullName = strings.TrimSpace(update.FullName)
	update.PhoneNumber = strings.TrimSpace(update.PhoneNumber)
	update.Address = strings.TrimSpace(update.Address)
	var user User
	if err := c.doJSON(ctx, http.MethodPut, c.endpoint(nil, "users", itoa(id)), update, &user, "Failed to update user details"); err != nil {
		return User{}, err
	}
	return user, nil
}

// UserRentals returns the user's rental history.
func (c *Client) UserRentals(ctx context.Context, id int64) ([]rental.Rental, error) {
	var rentals []rental.Rental
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(nil, "users", itoa(id), "rentals"), nil, &rentals, "Failed to fetch rental history"); err != nil {
		return nil, err
	}
	return rentals, nil
}
