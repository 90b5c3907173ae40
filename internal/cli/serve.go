package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flamelens/internal/config"
	"github.com/matzehuels/flamelens/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file|url...]",
		Short: "Serve profiles over HTTP",
		Long: `Serve profiles over HTTP.

The serve command starts the flamelens HTTP API. Profiles given as arguments
are preloaded at startup; more can be uploaded with POST /api/profiles. The
index page at / lists every loaded profile with an inline flame graph.

The server shuts down gracefully on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, args, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.Default().Server.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the server, preloads the given profiles, and blocks until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config, sources []string, noCache bool) error {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	srv := server.New(cfg, store, c.Logger)
	if len(sources) > 0 {
		prog := newProgress(c.Logger)
		if err := srv.Preload(ctx, sources); err != nil {
			return fmt.Errorf("preload profiles: %w", err)
		}
		prog.done(fmt.Sprintf("Preloaded %d profiles", len(sources)))
	}

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
	return srv.Run(ctx)
}

// displayAddr turns a listen address into something a browser accepts; a
// bare ":8080" gains a localhost host part.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
