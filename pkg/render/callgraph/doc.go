// Package callgraph renders profile trees as directed call-graph diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// frames appear as boxes connected by caller arrows. It's an alternative to
// the flame graph for cases where the call structure matters more than the
// width proportions.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := callgraph.ToDOT(tree, callgraph.Options{Detailed: false})
//	svg, err := callgraph.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := callgraph.RenderPDF(ctx, dot)
//	png, err := callgraph.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include self/total values and the
//     share of the root total.
//   - MinValue: Prunes subtrees below a cumulative value threshold. Frames
//     that lost children to pruning are drawn dashed.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes. Edge stroke widths scale with the callee's share of the root
// total, so hot paths stand out the way wide rectangles do in the flame
// view. Node identifiers are the tree's frame ids, which stay unique even
// when frame names repeat.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package callgraph
