package flame

import (
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Block is one frame's ready-to-draw tuple in pixel coordinates.
// Hidden blocks carry zero geometry and no label.
type Block struct {
	ID          int32
	Name        string
	Label       string
	X, Y, W, H  float64
	Color       string
	FontSize    float64
	Highlighted bool
	Faded       bool
	Hidden      bool
}

// Option configures a single Frame call.
type Option func(*builder)

type builder struct {
	style         styles.Style
	minLabelWidth float64
	withoutHidden bool
}

// WithStyle picks the render style used for frame colors.
func WithStyle(s styles.Style) Option {
	return func(b *builder) {
		if s != nil {
			b.style = s
		}
	}
}

// WithMinLabelWidth overrides the narrowest pixel width that still gets a
// label.
func WithMinLabelWidth(px float64) Option {
	return func(b *builder) { b.minLabelWidth = px }
}

// WithoutHidden drops hidden frames from the draw list entirely instead
// of emitting them with zero geometry.
func WithoutHidden() Option {
	return func(b *builder) { b.withoutHidden = true }
}

// Frame builds the draw list for one render pass: scale from the view's
// zoom window, visibility and highlights from the view, labels fitted to
// the scaled rects, colors from the style with the highlight override
// applied. The list is ordered by frame id, parents before children.
func Frame(t *stack.Tree, l *layout.Layout, v *view.View, vp layout.Viewport, opts ...Option) []Block {
	b := builder{style: styles.Classic{}, minLabelWidth: styles.MinLabelWidth}
	for _, opt := range opts {
		opt(&b)
	}

	scale := layout.NewScale(v.Window(), l.ExtentY, vp)
	fitter := styles.NewTextFitter(b.minLabelWidth)
	fontSize := styles.FontSizeFor(scale.H(0, l.BandHeight))

	blocks := make([]Block, 0, t.Len())
	nodes := t.Nodes()
	for i := range nodes {
		id := int32(i)
		n := &nodes[i]

		vis := v.Visibility(id)
		if vis == view.Hidden {
			if b.withoutHidden {
				continue
			}
			blocks = append(blocks, Block{ID: id, Name: n.Name, Hidden: true, Highlighted: v.Highlighted(id)})
			continue
		}

		r := l.Rects[i]

		// Clamp to the viewport: faded ancestors span the whole window and
		// would otherwise run far past both edges.
		x := scale.X(r.X0)
		right := scale.X(r.X1)
		if x < 0 {
			x = 0
		}
		if right > vp.Width {
			right = vp.Width
		}
		if right < x {
			right = x
		}

		highlighted := v.Highlighted(id)
		color := b.style.ColorOf(n.Name, n.Category)
		if highlighted {
			color = styles.HighlightColor
		}

		w := right - x
		blocks = append(blocks, Block{
			ID:          id,
			Name:        n.Name,
			Label:       fitter.FitLabel(n.Name, w, fontSize),
			X:           x,
			Y:           scale.Y(r.Y0, r.Y1),
			W:           w,
			H:           scale.H(r.Y0, r.Y1),
			Color:       color,
			FontSize:    fontSize,
			Highlighted: highlighted,
			Faded:       vis == view.Faded,
		})
	}

	return blocks
}
