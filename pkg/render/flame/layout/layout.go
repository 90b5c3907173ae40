package layout

import (
	"github.com/matzehuels/flamelens/pkg/stack"
)

const eps = 1e-9

// Layout holds the abstract-space rectangle for every frame of one tree.
// It is built once per tree and never mutated; zoom and resize are handled
// by [Scale].
type Layout struct {
	Rects      []Rect  // indexed by frame id
	Width      float64 // total horizontal span of the root
	BandHeight float64 // vertical span of one depth band
	Bands      int     // number of depth bands (root height + 1)
	ExtentY    float64 // BandHeight * Bands
}

// Rect returns the rectangle for frame id and whether it exists.
func (l *Layout) Rect(id int32) (Rect, bool) {
	if id < 0 || int(id) >= len(l.Rects) {
		return Rect{}, false
	}
	return l.Rects[id], true
}

// Root returns the full-width window covering the whole layout.
func (l *Layout) Root() Window { return Window{X0: 0, X1: l.Width} }

// Build partitions t into rectangles.
//
// The root spans [0, width]. Children split their parent's interval
// left to right in input order, each taking a share proportional to
// childValue / parentValue, so a frame's self value shows up as the
// uncovered tail of its interval. When a parent's value is zero the
// children take equal shares. When children oversubscribe the parent
// (self clamped to zero at build), shares renormalize to the children's
// sum so nesting still holds.
//
// Band b covers [b*bandHeight, (b+1)*bandHeight); a frame's band is its
// depth.
func Build(t *stack.Tree, width, bandHeight float64) *Layout {
	n := t.Len()
	l := &Layout{
		Rects:      make([]Rect, n),
		Width:      width,
		BandHeight: bandHeight,
	}
	if n == 0 {
		return l
	}
	l.Bands = int(t.MaxDepth()) + 1
	l.ExtentY = bandHeight * float64(l.Bands)

	l.Rects[0] = Rect{X0: 0, X1: width, Y0: 0, Y1: bandHeight}

	for id := int32(0); id < int32(n); id++ {
		parent, _ := t.Node(id)
		kids := parent.Children
		if len(kids) == 0 {
			continue
		}

		pr := l.Rects[id]
		span := pr.X1 - pr.X0
		y0 := float64(parent.Depth+1) * bandHeight
		y1 := y0 + bandHeight

		var sum float64
		for _, c := range kids {
			child, _ := t.Node(c)
			sum += child.Value
		}

		denom := parent.Value
		if sum > denom {
			denom = sum
		}

		if denom <= eps {
			// Zero-value subtree: equal shares keep the partition total.
			x := pr.X0
			for i, c := range kids {
				x1 := pr.X0 + span*float64(i+1)/float64(len(kids))
				l.Rects[c] = Rect{X0: x, X1: x1, Y0: y0, Y1: y1}
				x = x1
			}
			continue
		}

		x := pr.X0
		var cum float64
		for _, c := range kids {
			child, _ := t.Node(c)
			cum += child.Value
			x1 := pr.X0 + span*(cum/denom)
			if x1 > pr.X1 {
				x1 = pr.X1
			}
			l.Rects[c] = Rect{X0: x, X1: x1, Y0: y0, Y1: y1}
			x = x1
		}
	}

	return l
}

// BandHeightFor divides a pixel height evenly across the tree's depth
// bands, for surfaces that want the flame to fill a fixed height.
func BandHeightFor(totalHeight float64, t *stack.Tree) float64 {
	if t == nil || t.Len() == 0 || totalHeight <= 0 {
		return 0
	}
	return totalHeight / float64(t.MaxDepth()+1)
}
