// Package sink renders flame graphs to static artifacts.
//
// # Overview
//
// Sinks consume the engine's state (tree, layout, view) and produce
// self-contained output:
//
//   - [RenderSVG]: a standalone SVG document with hover highlighting and
//     value tooltips
//   - [RenderJSON]: the draw list serialized with stable block order for
//     diffing and external tooling
//
// Zoom focus and search highlights carry through: a view zoomed into a
// subtree renders exactly what an interactive session would show, with
// ancestors faded and everything outside the focus dropped (SVG) or
// flagged hidden (JSON).
//
// # Options
//
// Both sinks take functional options for the output size, orientation,
// style, and label threshold:
//
//	svg := sink.RenderSVG(tree, lay, v,
//	    sink.WithSize(1600, 0),
//	    sink.WithStyle(styles.Mono{}),
//	)
//
// A zero height sizes the document to the tree's depth.
//
// For PNG and PDF conversion of the SVG output, see
// github.com/matzehuels/flamelens/pkg/render.
package sink
