// Package flame assembles render-ready draw lists for flame graphs.
//
// # Overview
//
// [Frame] is the single meeting point of the engine's parts: it takes an
// immutable tree and layout, the current view (zoom, search, cursor), and
// a viewport, and produces one [Block] per frame in pixel coordinates
// with fitted labels and final colors. Every interactive surface (TUI,
// SVG and JSON sinks, HTTP API) renders by building a frame and drawing
// its blocks; none of them reach into the engine's internals.
//
// Blocks come out in frame id order, which is pre-order, so parents
// always precede their children in the draw list. Hidden frames are
// included with Hidden set (and zero geometry) unless [WithoutHidden] is
// given; sinks skip them, tests assert on them.
//
// # Example
//
//	tree, _ := profile.ToTree(root)
//	lay := layout.Build(tree, 1000, 18)
//	v := view.New(tree, lay)
//	blocks := flame.Frame(tree, lay, v, layout.Viewport{Width: 800, Height: 600})
package flame
