// Package config loads reel's settings.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. The TOML file given with -config, or ~/.config/reel/config.toml
//  3. REEL_* environment variables (a .env file in the working directory is
//     loaded into the environment by main before Load runs)
//
// A missing config file is not an error.
//
// # Fields
//
//	api_base_url = "http://localhost:8080/api"      # REEL_API_BASE_URL
//	log_path     = "~/.local/state/reel/reel.log"    # REEL_LOG_PATH
//	log_level    = "info"                           # REEL_LOG_LEVEL
//	session_path = "~/.local/state/reel/session.json" # REEL_SESSION_PATH
//
// Paths beginning with ~ are expanded against the user's home directory and
// made absolute.
package config
