package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flamelens/internal/config"
	"github.com/matzehuels/flamelens/pkg/buildinfo"
	"github.com/matzehuels/flamelens/pkg/cache"
	"github.com/matzehuels/flamelens/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flamelens"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// cfg is populated by the root command's PersistentPreRunE. Commands
	// read it for flag defaults; until then it holds config.Default().
	cfg config.Config

	// Persistent flag storage.
	logLevel   string
	noColor    bool
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg:      config.Default(),
		logLevel: "info",
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flamelens",
		Short:        "Flamelens explores call-tree profiles as flame graphs",
		Long:         `Flamelens is a flame graph viewer for call-tree profiles. It renders JSON profiles as interactive terminal flame graphs, static SVG/PNG/PDF artifacts, or serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(c.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %q (must be one of: debug, info, warn, error)", c.logLevel)
			}
			c.SetLogLevel(level)

			if c.noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
				c.Logger.SetColorProfile(termenv.Ascii)
			}

			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.logLevel, "log-level", c.logLevel, "log level: debug, info, warn, error")
	pf.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&c.configPath, "config", "", "config file (default ~/.config/flamelens/config.toml)")

	// Register all subcommands
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the cache backend selected in the [cache] config section.
// An unavailable file cache degrades to no caching rather than failing the
// command; an unreachable redis is an error because it was asked for
// explicitly.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.cfg.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		store, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisAddr, "", 0)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", c.cfg.Cache.RedisAddr, err)
		}
		return cache.NewInstrumented(store), nil
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		store, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return cache.NewInstrumented(store), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flamelens/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// seedRenderOptions fills opts from the loaded config for every flag the
// user did not set explicitly, so flag values win over file values.
func (c *CLI) seedRenderOptions(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	if !f.Changed("width") {
		opts.Width = c.cfg.Render.Width
	}
	if !f.Changed("height") {
		opts.Height = c.cfg.Render.Height
	}
	if !f.Changed("band-height") {
		opts.BandHeight = c.cfg.Render.BandHeight
	}
	if !f.Changed("flip") {
		opts.Flip = c.cfg.Render.Flip
	}
	if !f.Changed("style") {
		opts.Style = c.cfg.Render.Style
	}
	if !f.Changed("min-label-width") {
		opts.MinLabelWidth = c.cfg.Render.MinLabelWidth
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}
