package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate: %v", err)
	}
	if cfg.Render.Width == 0 {
		t.Error("Default() render width should be set")
	}
	if cfg.Render.Height != 0 {
		t.Error("Default() render height should stay 0 (derived)")
	}
	if cfg.View.DebounceMS != 100 {
		t.Errorf("Default() debounce = %d, want 100", cfg.View.DebounceMS)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Default() cache backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
width = 1600
style = "mono"

[view]
debounce_ms = 250

[server]
addr = ":9999"

[cache]
backend = "none"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Render.Width != 1600 {
		t.Errorf("width = %v, want 1600", cfg.Render.Width)
	}
	if cfg.Render.Style != "mono" {
		t.Errorf("style = %q, want mono", cfg.Render.Style)
	}
	if cfg.View.DebounceMS != 250 {
		t.Errorf("debounce = %d, want 250", cfg.View.DebounceMS)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheBackendNone {
		t.Errorf("backend = %q, want none", cfg.Cache.Backend)
	}

	// Untouched fields keep their defaults.
	if cfg.Render.BandHeight != Default().Render.BandHeight {
		t.Error("band height should keep its default")
	}
	if cfg.Server.MaxProfileBytes != Default().Server.MaxProfileBytes {
		t.Error("max profile bytes should keep its default")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[render]
widht = 1600
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject unknown keys")
	}
	if !strings.Contains(err.Error(), "widht") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad style", "[render]\nstyle = \"sketchy\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"negative debounce", "[view]\ndebounce_ms = -5\n"},
		{"negative width", "[render]\nwidth = -10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for a missing explicit path")
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != Default().Render.Width {
		t.Error("missing default file should yield defaults")
	}
}

func TestLoadDefaultPathWhenPresent(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "[render]\nwidth = 640\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("width = %v, want 640", cfg.Render.Width)
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	want := filepath.Join("/custom/config", appName, "config.toml")
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestCacheTTL(t *testing.T) {
	c := CacheConfig{TTLHours: 6}
	if c.TTL().Hours() != 6 {
		t.Errorf("TTL() = %v, want 6h", c.TTL())
	}

	c.TTLHours = 0
	if c.TTL() != 0 {
		t.Errorf("zero hours should mean no expiry, got %v", c.TTL())
	}
}
