// Package config handles loading the Readup client configuration.
//
// # Configuration discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/readup/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. Overlay READUP_* environment variables, loading a local .env first
//
// Environment always wins over the file, which makes it easy to point a
// development build at a local backend without touching the stored config.
//
// # TOML format
//
// Example config.toml:
//
//	api_url = "https://api.readup.app"
//	api_token = "..."
//	catalog_url = ""            # empty uses the public Google Books API
//	catalog_key = ""
//	log_level = "info"
//
// All fields are optional. Tilde expansion is performed on the config
// path. Missing config files are NOT an error - defaults are used so the
// client works out of the box.
package config
