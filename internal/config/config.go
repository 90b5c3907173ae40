// Package config loads Flamelens configuration from TOML files.
//
// Configuration lives at $XDG_CONFIG_HOME/flamelens/config.toml by default
// (~/.config/flamelens/config.toml when XDG_CONFIG_HOME is unset) and can be
// overridden per invocation with --config. Every field has a default, so a
// missing file is not an error; an unparsable file or one with unknown keys
// is. Flag values take precedence over file values: commands seed their flag
// defaults from the loaded config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flamelens/pkg/pipeline"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
)

const appName = "flamelens"

// Cache backend names accepted in the [cache] section.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the root configuration for all Flamelens components.
type Config struct {
	Render RenderConfig `toml:"render"`
	View   ViewConfig   `toml:"view"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig controls static artifact rendering.
type RenderConfig struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"` // 0 derives from depth × band height
	BandHeight    float64 `toml:"band_height"`
	MinLabelWidth float64 `toml:"min_label_width"`
	Flip          bool    `toml:"flip"`
	Style         string  `toml:"style"`
}

// ViewConfig controls the interactive terminal viewer.
type ViewConfig struct {
	// DebounceMS is the quiet period after a terminal resize before the
	// flame relayouts. Orientation flips bypass it.
	DebounceMS int `toml:"debounce_ms"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	MaxProfileBytes int64  `toml:"max_profile_bytes"`
}

// CacheConfig controls artifact caching.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file, redis, or none
	TTLHours  int    `toml:"ttl_hours"`
	RedisAddr string `toml:"redis_addr"`
}

// TTL returns the configured cache lifetime. Zero hours means entries
// never expire.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:         pipeline.DefaultWidth,
			BandHeight:    pipeline.DefaultBandHeight,
			MinLabelWidth: styles.MinLabelWidth,
			Style:         pipeline.DefaultStyle,
		},
		View: ViewConfig{
			DebounceMS: 100,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			MaxProfileBytes: 32 << 20, // 32 MiB
		},
		Cache: CacheConfig{
			Backend:  CacheBackendFile,
			TTLHours: 24,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads configuration from path. An empty path falls back to the
// default location, where a missing file yields Default() without error.
// An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks constraints the TOML decoder cannot express.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend %q requires redis_addr", CacheBackendRedis)
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("ttl_hours must not be negative")
	}

	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if c.Render.Width < 0 || c.Render.Height < 0 || c.Render.BandHeight < 0 || c.Render.MinLabelWidth < 0 {
		return fmt.Errorf("render dimensions must not be negative")
	}

	if c.View.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Server.MaxProfileBytes <= 0 {
		return fmt.Errorf("max_profile_bytes must be positive")
	}

	return nil
}
