package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/five82/reel/internal/api"
)

// Authenticator is the slice of the backend the session needs.
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (api.User, error)
	ResetSession() error
}

// Service is the only writer of the session record.
type Service struct {
	store  *Store
	auth   Authenticator
	logger zerolog.Logger
}

// NewService wires a store to the backend used for login and logout.
func NewService(store *Store, auth Authenticator, logger zerolog.Logger) *Service {
	return &Service{store: store, auth: auth, logger: logger.With().Str("component", "session").Logger()}
}

// Store exposes the read side.
func (s *Service) Store() *Store {
	return s.store
}

// Current returns the signed-in user.
func (s *Service) Current() (api.User, bool) {
	return s.store.Current()
}

// Subscribe forwards to the store.
func (s *Service) Subscribe() (<-chan Event, func()) {
	return s.store.Subscribe()
}

// Login authenticates and records the returned user. A failed login leaves
// any existing record untouched.
func (s *Service) Login(ctx context.Context, req api.LoginRequest) (api.User, error) {
	user, err := s.auth.Login(ctx, req)
	if err != nil {
		s.logger.Info().Str("email", req.Email).Err(err).Msg("login failed")
		return api.User{}, err
	}
	if err := s.store.save(user, ReasonLogin); err != nil {
		return api.User{}, fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info().Int64("user_id", user.ID).Bool("admin", user.Admin).Msg("logged in")
	return user, nil
}

// Logout drops the server cookie and the local record. Both steps always run.
func (s *Service) Logout() error {
	err := multierr.Combine(s.auth.ResetSession(), s.store.clear())
	if err != nil {
		s.logger.Warn().Err(err).Msg("logout incomplete")
		return err
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// UpdateProfile replaces the record with user when user is the one signed in.
// It reports whether the record changed.
func (s *Service) UpdateProfile(user api.User) (bool, error) {
	current, ok := s.store.Current()
	if !ok || current.ID != user.ID {
		return false, nil
	}
	if current == user {
		return false, nil
	}
	if err := s.store.save(user, ReasonProfile); err != nil {
		return false, fmt.Errorf("persist profile: %w", err)
	}
	return true, nil
}
