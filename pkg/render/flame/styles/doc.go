// Package styles fits labels into frame rects and picks deterministic
// frame colors for flame graph rendering.
//
// # Text Fitting
//
// Labels use an estimated average glyph width (a fixed ratio of the font
// size) instead of real font metrics, the same approximation the SVG
// output relies on. [FontSizeFor] steps the font size with the band
// height, and a [TextFitter] caches the glyph width per font size while
// truncating names to ".."-terminated prefixes that fit their rect.
// Rects narrower than the fitter's minimum get no label at all.
//
// # Colors
//
// [ColorOf] is pure: the frame's category picks a hue from a fixed table
// and a weighted hash of the name's first characters picks the shade
// within it, so the same frame renders the same color in every frame of
// every session. Search hits override the fill with [HighlightColor].
//
// # Render Styles
//
// [Style] implementations draw the SVG primitives: [Classic] uses the
// category palette, [Mono] a single restrained hue for print-friendly
// output. Pick one by name with [ByName].
package styles
