package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	charWidthRatio = 0.55
	ellipsis       = ".."
)

// MinLabelWidth is the default narrowest rect, in pixels, that still gets
// a label.
const MinLabelWidth = 28.0

// FontSizeFor steps the label font size with the pixel height of a band.
func FontSizeFor(pxHeight float64) float64 {
	switch {
	case pxHeight < 20:
		return 10
	case pxHeight < 30:
		return 12
	case pxHeight < 50:
		return 14
	default:
		return 16
	}
}

// TextFitter truncates frame names to fit pixel widths. The average glyph
// width is measured once per font size and cached for the fitter's
// lifetime; fitters are cheap and meant to live for a single render pass.
type TextFitter struct {
	minWidth float64
	glyph    map[float64]float64
}

// NewTextFitter returns a fitter that drops labels for rects narrower
// than minWidth pixels. Non-positive widths fall back to [MinLabelWidth].
func NewTextFitter(minWidth float64) *TextFitter {
	if minWidth <= 0 {
		minWidth = MinLabelWidth
	}
	return &TextFitter{
		minWidth: minWidth,
		glyph:    make(map[float64]float64, 4),
	}
}

// FitLabel returns the text to draw for name in a rect pxWidth wide: the
// full name when it fits, otherwise the longest prefix ending in ".."
// that does, otherwise "".
func (f *TextFitter) FitLabel(name string, pxWidth, fontSize float64) string {
	if pxWidth < f.minWidth || name == "" {
		return ""
	}

	gw := f.glyphWidth(fontSize)
	if gw <= 0 {
		return ""
	}

	maxChars := int(pxWidth / gw)
	runes := []rune(name)
	if len(runes) <= maxChars {
		return name
	}

	keep := maxChars - len(ellipsis)
	if keep < 1 {
		return ""
	}
	return string(runes[:keep]) + ellipsis
}

func (f *TextFitter) glyphWidth(fontSize float64) float64 {
	if w, ok := f.glyph[fontSize]; ok {
		return w
	}
	w := fontSize * charWidthRatio
	f.glyph[fontSize] = w
	return w
}

// EscapeXML escapes s for embedding in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
