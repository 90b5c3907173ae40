package styles

import (
	"bytes"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style names accepted by [ByName] and the render surfaces.
const (
	StyleClassic = "classic"
	StyleMono    = "mono"
)

// Style defines the visual appearance of SVG flame output.
// Implementations control frame fills and how rects and labels are drawn.
type Style interface {
	// Name returns the style's registry name.
	Name() string
	// ColorOf picks the fill color for a frame.
	ColorOf(name, category string) string
	// RenderDefs writes SVG <defs> content shared by the document.
	RenderDefs(buf *bytes.Buffer)
	// RenderBlock writes the SVG for a single frame rect.
	RenderBlock(buf *bytes.Buffer, b Block)
	// RenderText writes the SVG for a frame's fitted label.
	RenderText(buf *bytes.Buffer, b Block)
}

// Block contains all data needed to render a single frame.
type Block struct {
	ID          int32
	Name        string // full frame name, used for tooltips
	Label       string // fitted display text, "" when the rect is too narrow
	X, Y, W, H  float64
	Color       string // final fill, highlight already applied
	FontSize    float64
	Highlighted bool
	Faded       bool
}

// ByName returns the style registered under name, or false for unknown
// names.
func ByName(name string) (Style, bool) {
	switch name {
	case StyleClassic, "":
		return Classic{}, true
	case StyleMono:
		return Mono{}, true
	default:
		return nil, false
	}
}

// =============================================================================
// Classic - Category Palette
// =============================================================================

// Classic draws category-colored rects with a thin separator stroke.
type Classic struct{}

func (Classic) Name() string { return StyleClassic }

func (Classic) ColorOf(name, category string) string { return ColorOf(name, category) }

func (Classic) RenderDefs(buf *bytes.Buffer) {}

func (Classic) RenderBlock(buf *bytes.Buffer, b Block) {
	opacity := 1.0
	if b.Faded {
		opacity = FadeOpacity
	}
	fmt.Fprintf(buf, `  <rect class="frame" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f" stroke="#ffffff" stroke-width="0.5" rx="1"/>`+"\n",
		b.X, b.Y, b.W, b.H, b.Color, opacity)
}

func (Classic) RenderText(buf *bytes.Buffer, b Block) {
	if b.Label == "" {
		return
	}
	opacity := 1.0
	if b.Faded {
		opacity = FadeOpacity
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="#1a1a1a" fill-opacity="%.2f">%s</text>`+"\n",
		b.X+3, b.Y+b.H/2+b.FontSize*0.35, b.FontSize, opacity, EscapeXML(b.Label))
}

// =============================================================================
// Mono - Single Hue
// =============================================================================

// Mono draws every frame in one restrained hue, shaded per name, for
// print-friendly output. Highlights still use [HighlightColor].
type Mono struct{}

func (Mono) Name() string { return StyleMono }

func (Mono) ColorOf(name, _ string) string {
	v := nameShade(name)
	return colorful.Hsl(210, 0.18, 0.42+0.3*v).Hex()
}

func (Mono) RenderDefs(buf *bytes.Buffer) {}

func (Mono) RenderBlock(buf *bytes.Buffer, b Block) {
	opacity := 1.0
	if b.Faded {
		opacity = FadeOpacity
	}
	fmt.Fprintf(buf, `  <rect class="frame" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f" stroke="#f5f5f5" stroke-width="0.5"/>`+"\n",
		b.X, b.Y, b.W, b.H, b.Color, opacity)
}

func (Mono) RenderText(buf *bytes.Buffer, b Block) {
	if b.Label == "" {
		return
	}
	opacity := 1.0
	if b.Faded {
		opacity = FadeOpacity
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="#ffffff" fill-opacity="%.2f">%s</text>`+"\n",
		b.X+3, b.Y+b.H/2+b.FontSize*0.35, b.FontSize, opacity, EscapeXML(b.Label))
}
