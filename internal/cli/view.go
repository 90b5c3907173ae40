package cli

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/pipeline"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
)

// viewCommand creates the view command for interactive exploration.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		focus   string
		search  string
		flip    bool
		style   string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "view [file|url]",
		Short: "Explore a profile interactively in the terminal",
		Long: `Explore a profile interactively in the terminal.

The view command renders the profile as a full-screen flame graph. Arrow keys
or hjkl move the cursor, enter or a mouse click zooms to a frame, backspace
zooms all the way out, esc returns the cursor to the root, f flips between
flame and icicle orientation, and / opens a search prompt. Press q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("style") {
				style = c.cfg.Render.Style
			}
			if !f.Changed("flip") {
				flip = c.cfg.Render.Flip
			}
			if err := pipeline.ValidateStyle(style); err != nil {
				return err
			}
			st, _ := styles.ByName(style)

			return c.runView(cmd.Context(), args[0], viewParams{
				title:    viewTitle(args[0]),
				focus:    focus,
				search:   search,
				flip:     flip,
				style:    st,
				debounce: time.Duration(c.cfg.View.DebounceMS) * time.Millisecond,
			}, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "zoom to the named frame")
	cmd.Flags().StringVar(&search, "search", "", "highlight frames matching term")
	cmd.Flags().BoolVar(&flip, "flip", false, "icicle orientation (root on top)")
	cmd.Flags().StringVar(&style, "style", pipeline.DefaultStyle, "visual style: classic (default), mono")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache reads")

	return cmd
}

// runView loads the profile and hands the terminal to the full-screen viewer.
func (c *CLI) runView(ctx context.Context, source string, params viewParams, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Source: source, Refresh: refresh, Logger: c.Logger}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", source))
	spinner.Start()
	tree, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return fmt.Errorf("load %s: %w", source, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	p := tea.NewProgram(newViewModel(tree, params),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// viewTitle derives the header title from the profile source.
func viewTitle(source string) string {
	if apperrors.IsRemote(source) {
		if i := strings.IndexAny(source, "?#"); i >= 0 {
			source = source[:i]
		}
		return path.Base(source)
	}
	return filepath.Base(source)
}
