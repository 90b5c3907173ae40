// Package render provides visualization rendering for call-tree profiles.
//
// # Overview
//
// This package contains the rendering pipeline that transforms profile
// trees into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Flame graphs (in [flame] subpackage)
//   - Call-graph diagrams (in [callgraph] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// flame and call-graph renderers.
//
//	svg := sink.RenderSVG(tree, lay, vw, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Flame Graphs
//
// The [flame] subpackage renders profiles as nested rectangles where each
// frame spans a horizontal share of its parent proportional to its value.
// This is Flamelens's primary visualization style.
//
// Key flame subpackages:
//   - [flame/layout]: Rectangle position computation
//   - [flame/view]: Zoom, search, and cursor state
//   - [flame/sink]: Output formats (SVG, JSON)
//   - [flame/styles]: Visual styles (classic, mono)
//
// # Call-Graph Diagrams
//
// The [callgraph] subpackage renders the same profile as a directed graph
// using Graphviz. Frames appear as boxes connected by caller arrows.
//
//	dot := callgraph.ToDOT(tree, callgraph.Options{})
//	svg, err := callgraph.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//
// [flame]: github.com/matzehuels/flamelens/pkg/render/flame
// [flame/layout]: github.com/matzehuels/flamelens/pkg/render/flame/layout
// [flame/view]: github.com/matzehuels/flamelens/pkg/render/flame/view
// [flame/sink]: github.com/matzehuels/flamelens/pkg/render/flame/sink
// [flame/styles]: github.com/matzehuels/flamelens/pkg/render/flame/styles
// [callgraph]: github.com/matzehuels/flamelens/pkg/render/callgraph
package render
