package layout

// Rect is one frame's rectangle in abstract layout units.
// X spans the horizontal interval, Y the depth band.
type Rect struct {
	X0, X1 float64
	Y0, Y1 float64
}

// Width returns the horizontal span of the rect.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rect.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// CenterX returns the horizontal center point of the rect.
func (r Rect) CenterX() float64 { return (r.X0 + r.X1) / 2 }

// Window is the effective horizontal interval mapped onto the viewport.
// Unzoomed it is [0, Layout.Width]; zoomed it is the focus frame's interval.
type Window struct {
	X0, X1 float64
}

// Span returns the window width in layout units.
func (w Window) Span() float64 { return w.X1 - w.X0 }

// Viewport describes the pixel surface a frame is drawn onto.
// Flipped draws the root band at the top (icicle orientation).
type Viewport struct {
	Width, Height float64
	Flipped       bool
}
