package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matzehuels/flamelens/pkg/cache"
	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/pipeline"
	"github.com/matzehuels/flamelens/pkg/profile"
)

// profileInfo is the JSON shape of a stored profile.
type profileInfo struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Nodes    int       `json:"nodes"`
	Depth    int32     `json:"depth"`
	Total    float64   `json:"total"`
	Uploaded time.Time `json:"uploaded"`
}

func infoFor(p *Profile) profileInfo {
	return profileInfo{
		ID:       p.ID,
		Name:     p.Name,
		Nodes:    p.Tree.Len(),
		Depth:    p.Tree.MaxDepth(),
		Total:    p.Tree.Total(),
		Uploaded: p.Uploaded,
	}
}

// =============================================================================
// Profile CRUD
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxProfileBytes)
	root, err := profile.Read(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, apperrors.New(apperrors.ErrCodeProfileTooLarge,
				"profile exceeds %d bytes", s.cfg.Server.MaxProfileBytes))
			return
		}
		s.respondError(w, err)
		return
	}

	p, err := s.add(r.URL.Query().Get("name"), root)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.logger.Info("profile uploaded",
		"id", p.ID,
		"name", p.Name,
		"frames", p.Tree.Len(),
	)
	writeJSON(w, http.StatusCreated, infoFor(p))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	list := s.store.List()
	infos := make([]profileInfo, 0, len(list))
	for _, p := range list {
		infos = append(infos, infoFor(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": infos})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, infoFor(p))
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if !s.store.Delete(id) {
		s.respondError(w, apperrors.New(apperrors.ErrCodeProfileNotFound,
			"profile %s not found", id))
		return
	}
	s.logger.Info("profile deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Rendering
// =============================================================================

// handleFrame returns the render-list JSON for a profile. The list is cached
// per profile under a key derived from the render options.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts, err := s.renderOptions(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	keyer := cache.NewScopedKeyer(s.keyer, "profile:"+p.ID+":")
	key := keyer.FrameKey(p.Hash, opts.FrameKeyOpts())
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		writeRaw(w, "application/json", data)
		return
	}

	artifacts, err := s.render(p, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	data := artifacts[pipeline.FormatJSON]
	_ = s.cache.Set(r.Context(), key, data, cache.TTLFrame)
	writeRaw(w, "application/json", data)
}

// handleFlameSVG returns a rendered SVG, cached per profile.
func (s *Server) handleFlameSVG(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts, err := s.renderOptions(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatSVG}

	keyer := cache.NewScopedKeyer(s.keyer, "profile:"+p.ID+":")
	key := keyer.ArtifactKey(p.Hash, opts.ArtifactKeyOpts(pipeline.FormatSVG))
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		writeRaw(w, "image/svg+xml", data)
		return
	}

	artifacts, err := s.render(p, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	data := artifacts[pipeline.FormatSVG]
	_ = s.cache.Set(r.Context(), key, data, cache.TTLArtifact)
	writeRaw(w, "image/svg+xml", data)
}

// render runs layout, view and render for one request.
func (s *Server) render(p *Profile, opts pipeline.Options) (map[string][]byte, error) {
	l, err := pipeline.ComputeLayout(p.Tree, opts)
	if err != nil {
		return nil, err
	}
	v := pipeline.BuildView(p.Tree, l, opts)
	return pipeline.Render(p.Tree, l, v, opts)
}

// renderOptions builds pipeline options from config defaults and the
// request's query parameters.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Width:         s.cfg.Render.Width,
		Height:        s.cfg.Render.Height,
		BandHeight:    s.cfg.Render.BandHeight,
		Flip:          s.cfg.Render.Flip,
		Style:         s.cfg.Render.Style,
		MinLabelWidth: s.cfg.Render.MinLabelWidth,
		Focus:         q.Get("focus"),
		Search:        q.Get("search"),
		Logger:        s.logger,
	}

	var err error
	if opts.Width, err = floatParam(q, "width", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q, "height", opts.Height); err != nil {
		return opts, err
	}
	if opts.Flip, err = boolParam(q, "flip", opts.Flip); err != nil {
		return opts, err
	}
	if style := q.Get("style"); style != "" {
		if err := pipeline.ValidateStyle(style); err != nil {
			return opts, err
		}
		opts.Style = style
	}

	if err := opts.ValidateForLayout(); err != nil {
		return opts, err
	}
	opts.SetRenderDefaults()
	return opts, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

// =============================================================================
// Response Helpers
// =============================================================================

// lookup resolves the profile from the URL, writing a 404 when absent.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Profile, bool) {
	id := chi.URLParam(r, "profileID")
	p, ok := s.store.Get(id)
	if !ok {
		s.respondError(w, apperrors.New(apperrors.ErrCodeProfileNotFound,
			"profile %s not found", id))
		return nil, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// respondError writes a JSON error body with the mapped status code.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(code),
	})
}

// statusFor maps application error codes to HTTP status codes.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeProfileNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeProfileTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidProfile,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidStyle,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
