// Package pipeline provides the core visualization pipeline for Flamelens.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and server components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a profile from a file or URL and build the frame tree
//  2. Layout: Compute rectangle geometry and zoom state for every frame
//  3. Render: Generate output in various formats (SVG, JSON, DOT, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "profile.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	tree, err := runner.Load(ctx, opts)
//
//	// Layout with an existing tree
//	lay, err := pipeline.ComputeLayout(tree, opts)
//
//	// Render with existing layout and view state
//	artifacts, err := pipeline.Render(tree, lay, vw, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flamelens/pkg/cache"
	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/render/flame"
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/sink"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default document width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultBandHeight is the default height of one stack band in pixels.
	DefaultBandHeight = sink.DefaultBandPx

	// DefaultPNGScale is the rasterization scale for PNG export.
	// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
	DefaultPNGScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = styles.StyleClassic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.StyleClassic: true,
	styles.StyleMono:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string `json:"source"`            // file path or http(s) URL
	Refresh bool   `json:"refresh,omitempty"` // bypass cache reads

	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"` // 0 derives from depth × band height
	BandHeight float64 `json:"band_height,omitempty"`
	Flip       bool    `json:"flip,omitempty"` // icicle orientation (root on top)

	// View options
	Focus  string `json:"focus,omitempty"`  // frame name to zoom to
	Search string `json:"search,omitempty"` // highlight term

	// Render options
	Formats       []string `json:"formats,omitempty"`
	Style         string   `json:"style,omitempty"`
	MinLabelWidth float64  `json:"min_label_width,omitempty"`
	Detailed      bool     `json:"detailed,omitempty"` // DOT labels carry self/total values

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the built frame tree.
	Tree *stack.Tree

	// ProfileHash is the content hash of the canonical profile bytes.
	ProfileHash string

	// Blocks is the computed render list for the requested viewport.
	Blocks []flame.Block

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FrameCount   int
	MaxDepth     int
	TotalValue   float64
	ClampedCount int
	Matches      int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ProfileHit bool            // whether the profile bytes came from cache
	RenderHit  bool            // whether every artifact came from cache
	Artifacts  map[string]bool // per-format artifact cache hits
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return apperrors.New(apperrors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: classic, mono)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a profile.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "source is required")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.BandHeight == 0 {
		o.BandHeight = DefaultBandHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 || o.BandHeight < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"negative dimensions: width=%g height=%g band_height=%g",
			o.Width, o.Height, o.BandHeight)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.MinLabelWidth == 0 {
		o.MinLabelWidth = styles.MinLabelWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsRemote reports whether the source is an HTTP(S) URL.
func (o *Options) IsRemote() bool {
	return apperrors.IsRemote(o.Source)
}

// ViewportFor resolves the document viewport for a computed layout.
// A zero Height derives the height from the band count.
func (o *Options) ViewportFor(l *layout.Layout) layout.Viewport {
	h := o.Height
	if h == 0 {
		h = float64(l.Bands) * o.BandHeight
	}
	return layout.Viewport{Width: o.Width, Height: h, Flipped: o.Flip}
}

// FrameKeyOpts returns cache key options for render-list computation.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		BandHeight:    o.BandHeight,
		Flip:          o.Flip,
		Focus:         o.Focus,
		Search:        o.Search,
		MinLabelWidth: o.MinLabelWidth,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Width:      o.Width,
		Height:     o.Height,
		BandHeight: o.BandHeight,
		Flip:       o.Flip,
		Focus:      o.Focus,
		Search:     o.Search,
	}
}
