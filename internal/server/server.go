// Package server exposes loaded profiles over an HTTP API.
//
// The server keeps profiles in memory: each upload or preload builds the
// call tree once, and every request after that renders from the shared
// read-only tree. Rendered SVGs are cached in the configured cache backend
// under keys scoped to the profile id.
//
// # Endpoints
//
//	GET    /health                              liveness probe
//	GET    /                                    HTML index of loaded profiles
//	POST   /api/profiles                        upload a profile (JSON body)
//	GET    /api/profiles                        list profiles
//	GET    /api/profiles/{profileID}            profile metadata
//	DELETE /api/profiles/{profileID}            remove a profile
//	GET    /api/profiles/{profileID}/frame      render-list JSON
//	GET    /api/profiles/{profileID}/flame.svg  rendered SVG
//
// The frame and flame.svg endpoints accept width, height, flip, focus and
// search query parameters; flame.svg additionally accepts style.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/matzehuels/flamelens/internal/config"
	"github.com/matzehuels/flamelens/pkg/cache"
	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/profile"
)

// Server is the flamelens HTTP server.
type Server struct {
	router chi.Router
	store  *store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	cfg    config.Config
}

// New creates and configures the server. A nil cache disables artifact
// caching and a nil logger discards logs.
func New(cfg config.Config, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  newStore(),
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		logger: logger,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)

	r.Post("/api/profiles", s.handleCreateProfile)
	r.Get("/api/profiles", s.handleListProfiles)
	r.Get("/api/profiles/{profileID}", s.handleGetProfile)
	r.Delete("/api/profiles/{profileID}", s.handleDeleteProfile)
	r.Get("/api/profiles/{profileID}/frame", s.handleFrame)
	r.Get("/api/profiles/{profileID}/flame.svg", s.handleFlameSVG)

	s.router = r
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	s.logger.Info("server listening", "addr", s.cfg.Server.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// Preload loads profiles from files or URLs before the server starts.
func (s *Server) Preload(ctx context.Context, sources []string) error {
	for _, src := range sources {
		root, err := profile.Load(ctx, src, nil)
		if err != nil {
			return err
		}
		p, err := s.add(sourceName(src), root)
		if err != nil {
			return err
		}
		s.logger.Info("preloaded profile",
			"name", p.Name,
			"id", p.ID,
			"frames", p.Tree.Len(),
		)
	}
	return nil
}

// add builds the call tree and registers the profile. An empty name falls
// back to the root frame's name.
func (s *Server) add(name string, root *profile.Frame) (*Profile, error) {
	tree, err := profile.ToTree(root)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidProfile, err, "build call tree")
	}
	data, err := json.Marshal(root)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize profile")
	}
	if name == "" {
		name = root.Name
	}
	return s.store.Add(name, tree, cache.Hash(data)), nil
}

// sourceName derives a display name from a profile source. URLs and file
// paths both reduce to their base name without the extension.
func sourceName(source string) string {
	base := filepath.Base(source)
	if apperrors.IsRemote(source) {
		base = path.Base(strings.SplitN(source, "?", 2)[0])
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
