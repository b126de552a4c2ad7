package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the Readup client needs to reach the backend
// and the external book catalog.
type Config struct {
	APIBaseURL     string
	APIToken       string
	CatalogBaseURL string
	CatalogAPIKey  string
	LogLevel       string
}

const (
	defaultConfigPath = "~/.config/readup/config.toml"
	defaultAPIBaseURL = "https://api.readup.app"
	defaultLogLevel   = "info"
)

// Load locates and parses the client config, falling back to defaults when
// the file is missing, then applies environment overrides. A .env file in
// the working directory is folded into the environment first, so local
// development secrets never need to live in the TOML file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBaseURL: defaultAPIBaseURL, LogLevel: defaultLogLevel}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL     string `toml:"api_url"`
		APIToken   string `toml:"api_token"`
		CatalogURL string `toml:"catalog_url"`
		CatalogKey string `toml:"catalog_key"`
		LogLevel   string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)
	cfg.CatalogBaseURL = strings.TrimSpace(raw.CatalogURL)
	cfg.CatalogAPIKey = strings.TrimSpace(raw.CatalogKey)
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	return applyEnv(cfg), nil
}

// applyEnv overlays READUP_* environment variables, which win over the
// file. Errors loading .env are ignored; the file is optional.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load()

	cfg.APIBaseURL = getEnv("READUP_API_URL", cfg.APIBaseURL)
	cfg.APIToken = getEnv("READUP_API_TOKEN", cfg.APIToken)
	cfg.CatalogBaseURL = getEnv("READUP_CATALOG_URL", cfg.CatalogBaseURL)
	cfg.CatalogAPIKey = getEnv("READUP_CATALOG_KEY", cfg.CatalogAPIKey)
	cfg.LogLevel = getEnv("READUP_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
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
