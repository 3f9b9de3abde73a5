// Package app is reel's composition root.
//
// Run loads the configuration (TOML file plus REEL_* environment overrides),
// opens the zerolog file logger, reads UI preferences, builds the API client
// and the session service, and then blocks in the Bubble Tea program until
// the user quits or the context is cancelled.
//
// While the UI runs, a background watcher re-reads the session file every
// two seconds. A login or logout performed by another reel process is then
// delivered to the UI as a session event and the route gate re-evaluates
// the current screen. Reload failures back off exponentially up to 30
// seconds and are logged, not fatal.
//
// Shutdown errors (UI and log file close) are combined with multierr.
package app
