package api

import (
	"context"
	"net/http"
	"strings"
)

// Register creates an account. The backend does not start a session.
func (c *Client) Register(ctx context.Context, req RegistrationRequest) (User, error) {
	req.Email = strings.TrimSpace(req.Email)
	var user User
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint(nil, "auth", "register"), req, &user, "Registration failed"); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (User, error) {
	req.Email = strings.TrimSpace(req.Email)
	var user User
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint(nil, "auth", "login"), req, &user, "Login failed with status: %d"); err != nil {
		return User{}, err
	}
	c.logger.Info().Int64("user_id", user.ID).Bool("admin", user.Admin).Msg("signed in")
	return user, nil
}
