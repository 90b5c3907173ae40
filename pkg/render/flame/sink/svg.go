package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/flamelens/pkg/render/flame"
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Default document size. A zero height derives from the tree's depth so
// shallow profiles don't stretch.
const (
	DefaultWidth  = 1200.0
	DefaultBandPx = 18.0
)

const frameInteractionCSS = `
    .frame-g rect { transition: stroke-width 0.2s ease; }
    .frame-g.highlight rect { stroke: #1a1a1a; stroke-width: 1.5; }
    .frame-g.highlight text { font-weight: bold; }
    .frame-g text { pointer-events: none; }`

const frameInteractionJS = `
    document.querySelectorAll('.frame-g').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('highlight'));
      el.addEventListener('mouseleave', () => el.classList.remove('highlight'));
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	flipped       bool
	style         styles.Style
	minLabelWidth float64
}

// WithSize sets the document size in pixels. Zero values keep the
// defaults.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithFlipped draws the root band at the top (icicle orientation).
func WithFlipped() SVGOption { return func(r *svgRenderer) { r.flipped = true } }

// WithStyle picks the visual style ([styles.Classic] or [styles.Mono]).
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithMinLabelWidth overrides the narrowest rect width that still gets a
// label.
func WithMinLabelWidth(px float64) SVGOption {
	return func(r *svgRenderer) { r.minLabelWidth = px }
}

// RenderSVG renders the view as a standalone SVG document. Shown and
// faded frames become <rect> + <text> pairs grouped with a <title>
// tooltip carrying the frame's value and share of the profile; hidden
// frames are dropped. Hover highlighting is embedded as CSS and script.
func RenderSVG(t *stack.Tree, l *layout.Layout, v *view.View, opts ...SVGOption) []byte {
	r := newSVGRenderer(l, opts...)
	vp := layout.Viewport{Width: r.width, Height: r.height, Flipped: r.flipped}

	blocks := flame.Frame(t, l, v, vp,
		flame.WithStyle(r.style),
		flame.WithMinLabelWidth(r.minLabelWidth),
		flame.WithoutHidden(),
	)

	total := t.Total()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	r.style.RenderDefs(&buf)
	renderFrameInteraction(&buf)

	for _, b := range blocks {
		n, _ := t.Node(b.ID)
		fmt.Fprintf(&buf, `  <g class="frame-g" id="frame-%d">`+"\n", b.ID)
		writeTitle(&buf, n, total)
		r.style.RenderBlock(&buf, toStyleBlock(b))
		r.style.RenderText(&buf, toStyleBlock(b))
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(l *layout.Layout, opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Classic{}, minLabelWidth: styles.MinLabelWidth}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	if r.height <= 0 {
		r.height = float64(l.Bands) * DefaultBandPx
	}
	return r
}

func renderFrameInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", frameInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", frameInteractionJS)
}

func writeTitle(buf *bytes.Buffer, n *stack.Node, total float64) {
	if n == nil {
		return
	}
	value := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if total > 0 {
		fmt.Fprintf(buf, "    <title>%s (%s, %.1f%%)</title>\n",
			styles.EscapeXML(n.Name), value, n.Value/total*100)
		return
	}
	fmt.Fprintf(buf, "    <title>%s (%s)</title>\n", styles.EscapeXML(n.Name), value)
}

func toStyleBlock(b flame.Block) styles.Block {
	return styles.Block{
		ID:          b.ID,
		Name:        b.Name,
		Label:       b.Label,
		X:           b.X,
		Y:           b.Y,
		W:           b.W,
		H:           b.H,
		Color:       b.Color,
		FontSize:    b.FontSize,
		Highlighted: b.Highlighted,
		Faded:       b.Faded,
	}
}
