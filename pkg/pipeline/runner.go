package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flamelens/pkg/cache"
	"github.com/matzehuels/flamelens/pkg/observability"
	"github.com/matzehuels/flamelens/pkg/profile"
	"github.com/matzehuels/flamelens/pkg/render/flame"
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	tree, profileHash, profileHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Source, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = tree
	result.ProfileHash = profileHash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.FrameCount = tree.Len()
	result.Stats.MaxDepth = int(tree.MaxDepth())
	result.Stats.TotalValue = tree.Total()
	result.Stats.ClampedCount = tree.ClampedCount()
	result.CacheInfo.ProfileHit = profileHit
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, tree.Len(), result.Stats.LoadTime, nil)

	r.Logger.Info("loaded profile",
		"frames", tree.Len(),
		"depth", tree.MaxDepth(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, tree.Len())
	lay, err := ComputeLayout(tree, opts)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	vw := BuildView(tree, lay, opts)
	result.Stats.Matches = vw.Matches()
	result.Blocks = buildBlocks(tree, lay, vw, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"blocks", len(result.Blocks),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, tree, lay, vw, profileHash, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Artifacts = hits
	result.CacheInfo.RenderHit = allHit(hits, opts.Formats)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the profile with caching and returns the built
// tree, the content hash of the canonical profile bytes, and whether the
// bytes came from cache. Only remote sources are cached; local files are
// already fast to reread.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*stack.Tree, string, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	cacheKey := ""
	if opts.IsRemote() {
		cacheKey = r.Keyer.HTTPKey("profile", opts.Source)
	}

	// Try cache first (unless refresh requested)
	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			root, err := profile.Read(bytes.NewReader(data))
			if err == nil {
				tree, err := profile.ToTree(root)
				if err == nil {
					return tree, cache.Hash(data), true, nil // Cache hit
				}
			}
		}
	}

	root, err := profile.Load(ctx, opts.Source, nil)
	if err != nil {
		return nil, "", false, err
	}

	// The content hash derives from re-marshaled bytes so that formatting
	// differences in the source do not split cache entries.
	data, err := json.Marshal(root)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize profile: %w", err)
	}
	if cacheKey != "" {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLProfile)
	}

	tree, err := profile.ToTree(root)
	if err != nil {
		return nil, "", false, err
	}
	return tree, cache.Hash(data), false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache info.
func (r *Runner) Load(ctx context.Context, opts Options) (*stack.Tree, error) {
	tree, _, _, err := r.LoadWithCacheInfo(ctx, opts)
	return tree, err
}

// RenderWithCacheInfo renders artifacts with caching and reports per-format
// cache hits. Formats found in the cache are not re-rendered; the rest are
// rendered and stored under keys derived from the profile hash and options.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, t *stack.Tree, l *layout.Layout, v *view.View, profileHash string, opts Options) (map[string][]byte, map[string]bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := make(map[string]bool, len(opts.Formats))

	if profileHash != "" && !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(profileHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
				hits[format] = true
			}
		}
	}

	style, _ := styles.ByName(opts.Style)
	vp := opts.ViewportFor(l)

	for _, format := range opts.Formats {
		if hits[format] {
			continue
		}
		data, err := renderFormat(t, l, v, style, vp, format, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		if profileHash != "" {
			cacheKey := r.Keyer.ArtifactKey(profileHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		}
	}

	return artifacts, hits, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache info.
func (r *Runner) Render(ctx context.Context, t *stack.Tree, l *layout.Layout, v *view.View, profileHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, t, l, v, profileHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// buildBlocks computes the render list for the resolved viewport.
func buildBlocks(t *stack.Tree, l *layout.Layout, v *view.View, opts Options) []flame.Block {
	st, _ := styles.ByName(opts.Style)
	return flame.Frame(t, l, v, opts.ViewportFor(l),
		flame.WithStyle(st),
		flame.WithMinLabelWidth(opts.MinLabelWidth))
}

// allHit reports whether every requested format was served from cache.
func allHit(hits map[string]bool, formats []string) bool {
	if len(formats) == 0 {
		return false
	}
	for _, f := range formats {
		if !hits[f] {
			return false
		}
	}
	return true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
