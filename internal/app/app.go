package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/logging"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/session"
	"github.com/five82/reel/internal/ui"
)

// Options configure the reel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/reel/prefs.toml
	// APIBaseURL overrides the configured backend when set.
	APIBaseURL string
	Debug      bool
	// StartPath is the first screen to open, e.g. /movies.
	StartPath  string
	WatchEvery time.Duration
}

// Run boots the reel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if override := strings.TrimRight(strings.TrimSpace(opts.APIBaseURL), "/"); override != "" {
		cfg.APIBaseURL = override
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("api flag: %w", err)
		}
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	logger, logCloser, err := logging.New(logging.Options{Level: level, Path: cfg.LogPath})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() {
		err = multierr.Append(err, logCloser.Close())
	}()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, perr := prefs.Load(prefsPath)
	if perr != nil {
		logger.Warn().Err(perr).Msg("load prefs, using defaults")
	}

	client, err := api.NewClient(cfg.APIBaseURL, api.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store, err := session.Open(cfg.SessionPath)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	svc := session.NewService(store, client, logger)

	watchCtx, stopWatch := context.WithCancel(ctx)
	watching := StartWatcher(watchCtx, store, logger, opts.WatchEvery)
	defer func() {
		stopWatch()
		<-watching
	}()

	logger.Info().
		Str("api", cfg.APIBaseURL).
		Str("session", store.Path()).
		Bool("signed_in", store.LoggedIn()).
		Msg("starting")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Gateway:   client,
		Session:   svc,
		Logger:    logger,
		LogPath:   cfg.LogPath,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		StartPath: opts.StartPath,
	})
	if err != nil {
		logger.Error().Err(err).Msg("ui exited")
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info().Msg("exiting")
	return nil
}
