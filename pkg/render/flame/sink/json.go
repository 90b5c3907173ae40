package sink

import (
	"encoding/json"

	"github.com/matzehuels/flamelens/pkg/render/flame"
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width, height float64
	flipped       bool
	style         styles.Style
	minLabelWidth float64
}

// WithJSONSize sets the pixel space blocks are mapped into.
func WithJSONSize(width, height float64) JSONOption {
	return func(r *jsonRenderer) { r.width, r.height = width, height }
}

// WithJSONFlipped records and applies icicle orientation.
func WithJSONFlipped() JSONOption { return func(r *jsonRenderer) { r.flipped = true } }

// WithJSONStyle picks the style used for block colors.
func WithJSONStyle(s styles.Style) JSONOption {
	return func(r *jsonRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithJSONMinLabelWidth overrides the label threshold.
func WithJSONMinLabelWidth(px float64) JSONOption {
	return func(r *jsonRenderer) { r.minLabelWidth = px }
}

type jsonOutput struct {
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Flipped bool        `json:"flipped,omitempty"`
	Focus   int32       `json:"focus,omitempty"`
	Search  string      `json:"search,omitempty"`
	Blocks  []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Label       string  `json:"label,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Color       string  `json:"color,omitempty"`
	Value       float64 `json:"value"`
	Depth       int32   `json:"depth"`
	Highlighted bool    `json:"highlighted,omitempty"`
	Faded       bool    `json:"faded,omitempty"`
	Hidden      bool    `json:"hidden,omitempty"`
}

// RenderJSON serializes the draw list as a pretty-printed JSON document.
// Blocks appear in frame id order so re-renders of the same state diff
// cleanly. Hidden frames are included with hidden set; external tools
// filter as they see fit.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify its inputs and is safe to call concurrently.
func RenderJSON(t *stack.Tree, l *layout.Layout, v *view.View, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{style: styles.Classic{}, minLabelWidth: styles.MinLabelWidth}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	if r.height <= 0 {
		r.height = float64(l.Bands) * DefaultBandPx
	}

	vp := layout.Viewport{Width: r.width, Height: r.height, Flipped: r.flipped}
	blocks := flame.Frame(t, l, v, vp,
		flame.WithStyle(r.style),
		flame.WithMinLabelWidth(r.minLabelWidth),
	)

	out := jsonOutput{
		Width:   r.width,
		Height:  r.height,
		Flipped: r.flipped,
		Search:  v.Term(),
		Blocks:  make([]jsonBlock, 0, len(blocks)),
	}
	if v.Zoomed() {
		out.Focus = v.Focus()
	}

	for _, b := range blocks {
		jb := jsonBlock{
			ID:          b.ID,
			Name:        b.Name,
			Label:       b.Label,
			X:           b.X,
			Y:           b.Y,
			Width:       b.W,
			Height:      b.H,
			Color:       b.Color,
			Highlighted: b.Highlighted,
			Faded:       b.Faded,
			Hidden:      b.Hidden,
		}
		if n, ok := t.Node(b.ID); ok {
			jb.Value = n.Value
			jb.Depth = n.Depth
		}
		out.Blocks = append(out.Blocks, jb)
	}

	return json.MarshalIndent(out, "", "  ")
}
