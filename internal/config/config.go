// Package config handles global Lectern configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global Lectern configuration.
type Config struct {
	// Library is the path to the local passage library database.
	// Empty means DefaultLibraryPath().
	Library string `toml:"library"`

	// Sources restricts retrieval to the named sources. Empty means all
	// sources the store knows about.
	Sources []string `toml:"sources"`

	// DefaultVersions are version codes applied to citations that do not
	// name any, e.g. ["kjv"]. Empty keeps the any-version behavior.
	DefaultVersions []string `toml:"default_versions"`

	// MaxTagValues caps how many section values a single query carries.
	// Zero means the built-in default.
	MaxTagValues int `toml:"max_tag_values"`

	// QueryRate limits store queries per second. Zero disables limiting.
	QueryRate float64 `toml:"query_rate"`

	// QueryBurst is the rate limiter burst size, 1 when zero.
	QueryBurst int `toml:"query_burst"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and rendered
	// passages. Supported values are ANSI color codes ("0" to "255") or
	// hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks. Example values: "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// LibraryPath returns the configured library path, or the default.
func (c *Config) LibraryPath() string {
	if c.Library != "" {
		return c.Library
	}
	return DefaultLibraryPath()
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// ResolvePath resolves the effective config path from an optional override.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/lectern/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "lectern", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "lectern", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// DefaultLibraryPath returns the default library database path, next to the
// config file.
func DefaultLibraryPath() string {
	return filepath.Join(filepath.Dir(DefaultPath()), "library.db")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Lectern Configuration

# Path to the local passage library (sqlite).
# library = "~/.config/lectern/library.db"

# Restrict retrieval to named sources.
# sources = ["library"]

# Version codes applied when a citation names none.
# default_versions = ["kjv"]

# Section values per query. Defaults to 10.
# max_tag_values = 10

# Store queries per second. 0 disables limiting.
# query_rate = 0

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
