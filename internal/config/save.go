package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lectern-reader/lectern/internal/atomicfile"
)

// persistedConfig mirrors Config with omitempty fields so an unset option
// never serializes as an explicit zero.
type persistedConfig struct {
	Library         *string              `toml:"library,omitempty"`
	Sources         []string             `toml:"sources,omitempty"`
	DefaultVersions []string             `toml:"default_versions,omitempty"`
	MaxTagValues    *int                 `toml:"max_tag_values,omitempty"`
	QueryRate       *float64             `toml:"query_rate,omitempty"`
	QueryBurst      *int                 `toml:"query_burst,omitempty"`
	UI              *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Library:         nonEmptyPtr(cfg.Library),
		Sources:         cfg.Sources,
		DefaultVersions: cfg.DefaultVersions,
	}
	if cfg.MaxTagValues != 0 {
		out.MaxTagValues = &cfg.MaxTagValues
	}
	if cfg.QueryRate != 0 {
		out.QueryRate = &cfg.QueryRate
	}
	if cfg.QueryBurst != 0 {
		out.QueryBurst = &cfg.QueryBurst
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
