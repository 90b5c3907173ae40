package layout

// Scale maps abstract layout coordinates into pixel space. It is a pure
// value built from the current zoom window and viewport, recomputed on
// every render; nothing pixel-space is cached across frames.
type Scale struct {
	win     Window
	extentY float64
	vp      Viewport
	kx, ky  float64
}

// NewScale builds the two linear maps for one render pass: the zoom
// window onto [0, vp.Width] and [0, extentY] onto [0, vp.Height].
// Degenerate windows, extents, and viewports collapse to zero instead of
// dividing by zero.
func NewScale(win Window, extentY float64, vp Viewport) Scale {
	s := Scale{win: win, extentY: extentY, vp: vp}
	if span := win.Span(); span > eps {
		s.kx = vp.Width / span
	}
	if extentY > eps {
		s.ky = vp.Height / extentY
	}
	return s
}

// X maps an abstract x coordinate to a pixel x coordinate. Coordinates
// left of the window map negative; callers clamp where that matters.
func (s Scale) X(x float64) float64 { return (x - s.win.X0) * s.kx }

// W maps an abstract horizontal interval to a pixel width.
func (s Scale) W(x0, x1 float64) float64 {
	w := (x1 - x0) * s.kx
	if w < 0 {
		return 0
	}
	return w
}

// Y maps an abstract vertical interval to the pixel y of its top edge.
// Flipped viewports place band 0 at the top (icicle); unflipped place it
// at the bottom (flame), so the whole column is mirrored.
func (s Scale) Y(y0, y1 float64) float64 {
	if s.vp.Flipped {
		return y0 * s.ky
	}
	return s.vp.Height - (y1-y0)*s.ky - y0*s.ky
}

// H maps an abstract vertical interval to a pixel height.
func (s Scale) H(y0, y1 float64) float64 {
	h := (y1 - y0) * s.ky
	if h < 0 {
		return 0
	}
	return h
}
