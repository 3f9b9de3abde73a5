// Package logging builds the zerolog logger used across reel.
//
// The terminal belongs to the UI, so logs go to a file as JSON lines. The
// in-app log viewer reads the same file back through package logtail.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every entry.
const ServiceName = "reel"

// Options configures the logger.
type Options struct {
	Level zerolog.Level
	// Path is the log file. Empty uses Output instead.
	Path string
	// Output is used when Path is empty; nil discards.
	Output io.Writer
}

// New opens the log file (creating parent directories) and returns the
// logger plus a closer for the file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}

	var output io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	switch {
	case strings.TrimSpace(opts.Path) != "":
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		output = file
		closer = file
	case opts.Output != nil:
		output = opts.Output
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.
		New(output).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger().
		Level(opts.Level)
	return logger, closer, nil
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(levelString); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
