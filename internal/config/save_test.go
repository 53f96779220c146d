package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := &Config{
		Library:         "/data/library.db",
		Sources:         []string{"library"},
		DefaultVersions: []string{"kjv", "niv"},
		MaxTagValues:    15,
		QueryRate:       2.5,
		UI:              UIConfig{Accent: "#ff8800"},
	}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Library != cfg.Library {
		t.Errorf("Library = %q", loaded.Library)
	}
	if len(loaded.DefaultVersions) != 2 {
		t.Errorf("DefaultVersions = %v", loaded.DefaultVersions)
	}
	if loaded.MaxTagValues != 15 || loaded.QueryRate != 2.5 {
		t.Errorf("MaxTagValues = %d, QueryRate = %v", loaded.MaxTagValues, loaded.QueryRate)
	}
	if loaded.UI.Accent != "#ff8800" {
		t.Errorf("Accent = %q", loaded.UI.Accent)
	}
}

func TestSaveToOmitsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SaveTo(path, &Config{Library: "/data/library.db"}); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, absent := range []string{"max_tag_values", "query_rate", "accent", "sources"} {
		if strings.Contains(string(raw), absent) {
			t.Errorf("serialized config contains %q:\n%s", absent, raw)
		}
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo("  ", &Config{}); err == nil {
		t.Error("expected error for blank path")
	}
}

func TestSaveToCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	if err := SaveTo(path, &Config{Library: "/x"}); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
}
