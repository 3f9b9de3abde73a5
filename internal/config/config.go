package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings.
type Config struct {
	APIBaseURL  string `toml:"api_base_url"`
	LogPath     string `toml:"log_path"`
	LogLevel    string `toml:"log_level"`
	SessionPath string `toml:"session_path"`
}

// envOverrides mirrors Config for REEL_* variables. Empty values do not
// override the file.
type envOverrides struct {
	APIBaseURL  string `envconfig:"API_BASE_URL"`
	LogPath     string `envconfig:"LOG_PATH"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	SessionPath string `envconfig:"SESSION_PATH"`
}

func (e envOverrides) apply(cfg *Config) {
	for _, o := range []struct {
		value string
		dest  *string
	}{
		{e.APIBaseURL, &cfg.APIBaseURL},
		{e.LogPath, &cfg.LogPath},
		{e.LogLevel, &cfg.LogLevel},
		{e.SessionPath, &cfg.SessionPath},
	} {
		if strings.TrimSpace(o.value) != "" {
			*o.dest = o.value
		}
	}
}

// EnvPrefix namespaces environment overrides, e.g. REEL_API_BASE_URL.
const EnvPrefix = "REEL"

const (
	defaultConfigPath  = "~/.config/reel/config.toml"
	defaultAPIBaseURL  = "http://localhost:8080/api"
	defaultLogPath     = "~/.local/state/reel/reel.log"
	defaultLogLevel    = "info"
	defaultSessionPath = "~/.local/state/reel/session.json"
)

// Default returns the built-in settings with paths expanded.
func Default() Config {
	cfg := Config{
		APIBaseURL:  defaultAPIBaseURL,
		LogPath:     defaultLogPath,
		LogLevel:    defaultLogLevel,
		SessionPath: defaultSessionPath,
	}
	cfg.normalize()
	return cfg
}

// Load reads the config file at path (or the default location), applies
// REEL_* environment overrides, and fills in defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{}
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	env.apply(&cfg)

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the API base URL is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api_base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_base_url: missing host")
	}
	return nil
}

func (c *Config) normalize() {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogPath = expandOr(c.LogPath, defaultLogPath)
	c.SessionPath = expandOr(c.SessionPath, defaultSessionPath)
}

// StateDir is the directory holding the log and session files.
func (c Config) StateDir() string {
	return filepath.Dir(c.SessionPath)
}

func expandOr(path, fallback string) string {
	if strings.TrimSpace(path) == "" {
		path = fallback
	}
	return mustExpand(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
