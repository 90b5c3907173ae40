package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flamelens/internal/config"
	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/pipeline"
)

// renderCommand creates the render command for generating static artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}
	defaults := config.Default().Render
	opts.Width = defaults.Width
	opts.BandHeight = defaults.BandHeight
	opts.MinLabelWidth = defaults.MinLabelWidth
	opts.Style = defaults.Style

	cmd := &cobra.Command{
		Use:   "render [file|url]",
		Short: "Render a profile to static artifacts",
		Long: `Render a profile to static artifacts.

The render command reads a call-tree profile from a file or http(s) URL and
writes it as SVG, JSON, DOT, PNG, or PDF. Output paths derive from the source
name unless --out is given; with multiple formats --out acts as a base path.

Remote profiles and rendered artifacts are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.seedRenderOptions(cmd, &opts)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache reads and re-render")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "document width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "document height in pixels (0 derives from depth)")
	cmd.Flags().Float64Var(&opts.BandHeight, "band-height", opts.BandHeight, "height of one stack band in pixels")
	cmd.Flags().BoolVar(&opts.Flip, "flip", opts.Flip, "icicle orientation (root on top)")

	// View flags
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "zoom to the named frame")
	cmd.Flags().StringVar(&opts.Search, "search", "", "highlight frames matching term")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), mono")
	cmd.Flags().Float64Var(&opts.MinLabelWidth, "min-label-width", opts.MinLabelWidth, "narrowest rect that still gets a label, in pixels")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include self/total values in dot labels")

	return cmd
}

// runRender executes the pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, source string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Source = source
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", source, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, opts.Formats, output, source)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	if result.Stats.ClampedCount > 0 {
		printWarning("clamped %d negative self values to zero", result.Stats.ClampedCount)
	}
	printStats(result.Stats.FrameCount, result.Stats.MaxDepth, result.Stats.Matches, result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Explore interactively", "flamelens view "+source)

	return nil
}

// writeArtifacts writes each rendered format and returns the written paths
// in format order. A single format with an explicit output path writes
// exactly there; everything else derives <base>.<format> names.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, output, source string) ([]string, error) {
	logger := loggerFromContext(ctx)

	if len(formats) == 1 && output != "" {
		data := artifacts[formats[0]]
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		logger.Debugf("Wrote %s (%d bytes)", output, len(data))
		return []string{output}, nil
	}

	base := basePath(output, source)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		p := base + "." + format
		data := artifacts[format]
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		logger.Debugf("Wrote %s (%d bytes)", p, len(data))
		paths = append(paths, p)
	}
	return paths, nil
}

// basePath derives the base output path from the output flag and the profile
// source. Remote sources fall back to the URL's file name so artifacts land
// in the working directory.
func basePath(output, source string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}

	if apperrors.IsRemote(source) {
		trimmed := source
		if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
			trimmed = trimmed[:i]
		}
		name := path.Base(trimmed)
		if name == "." || name == "/" || name == "" {
			name = "profile"
		}
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return strings.TrimSuffix(source, filepath.Ext(source))
}
