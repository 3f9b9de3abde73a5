package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWatchInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// reloader is the part of session.Store the watcher drives.
type reloader interface {
	Reload() (bool, error)
}

// StartWatcher re-reads the session file at a fixed cadence so a login or
// logout made by another reel process reaches this one. It returns a channel
// that is closed once the goroutine has stopped.
func StartWatcher(ctx context.Context, r reloader, logger zerolog.Logger, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		timer := time.NewTimer(interval)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures = check(r, logger, failures)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
	return done
}

// check runs one reload and returns the updated failure count.
func check(r reloader, logger zerolog.Logger, failures int) int {
	changed, err := r.Reload()
	if err != nil {
		failures++
		if failures == 1 || failures%10 == 0 {
			logger.Warn().Err(err).Int("failures", failures).Msg("session reload failed")
		}
		return failures
	}
	if failures > 0 {
		logger.Info().Int("failures", failures).Msg("session reload recovered")
	}
	if changed {
		logger.Info().Msg("session changed on disk")
	}
	return 0
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return maxBackoff
	}
	d := base << failures
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}
