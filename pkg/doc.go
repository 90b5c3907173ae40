// Package pkg provides the core libraries for flamelens flame graph rendering.
//
// # Overview
//
// Flamelens turns hierarchical call-tree profiles into flame graphs: static
// SVG/PNG/PDF artifacts, DOT call graphs, and an interactive terminal view.
// The pkg directory is organized into three main areas:
//
//  1. Engine - the immutable tree, geometry, and interaction state
//  2. Rendering - sinks that turn engine state into output artifacts
//  3. Infrastructure - caching, orchestration, errors, observability
//
// # Architecture
//
// The typical data flow through flamelens:
//
//	JSON profile (file or URL)
//	         ↓
//	    [profile] package (decode + validate)
//	         ↓
//	    [stack] package (arena call tree)
//	         ↓
//	    [render/flame/layout] package (normalized band geometry)
//	         ↓
//	    [render/flame/view] package (zoom, cursor, search)
//	         ↓
//	    [render/flame] + sinks (SVG/PDF/PNG/JSON/DOT output)
//
// # Quick Start
//
// Load a profile and render a flame graph to SVG:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/flamelens/pkg/profile"
//	    "github.com/matzehuels/flamelens/pkg/render/flame/layout"
//	    "github.com/matzehuels/flamelens/pkg/render/flame/sink"
//	    "github.com/matzehuels/flamelens/pkg/render/flame/view"
//	)
//
//	// 1. Load and decode the profile
//	root, _ := profile.Load(context.Background(), "cpu.json", nil)
//	tree, _ := profile.ToTree(root)
//
//	// 2. Compute geometry
//	l := layout.Build(tree, 1200, 18)
//
//	// 3. Create interaction state (zoom, search)
//	v := view.New(tree, l)
//
//	// 4. Render to SVG
//	svg := sink.RenderSVG(tree, l, v)
//	os.WriteFile("cpu.svg", svg, 0o644)
//
// # Main Packages
//
// ## Engine
//
// [stack] - Immutable arena call tree built from one profile. Nodes live in
// a flat slice with pre-order ids, so layout and view code index instead of
// chasing pointers.
//
// [render/flame/layout] - Pure partition geometry: one rect per frame in
// normalized [0,1]×band space, plus the scale mapping to any viewport.
//
// [render/flame/view] - Mutable interaction state over one (tree, layout)
// pair: zoom focus, visibility classes, keyboard cursor, and search
// highlighting.
//
// [render/flame/styles] - Color palettes, label fitting, and the style
// registry shared by every sink.
//
// ## Rendering
//
// [render/flame] - Builds the flat render list (one positioned block per
// visible frame) that every sink consumes.
//
// [render/flame/sink] - Static artifact sinks: standalone SVG and the JSON
// render-list dump.
//
// [render/callgraph] - DOT call graph sink with Graphviz-based SVG
// rendering.
//
// [render] - Format conversion utilities (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [profile] - The JSON wire format: decode, validate, fetch from file or
// URL, and convert to and from [stack] trees.
//
// [pipeline] - Complete render pipeline (load → layout → render) used by
// the CLI and the HTTP server. Ensures both entry points behave the same.
//
// [cache] - Content-addressed caching of profiles and artifacts with file,
// Redis, and null backends.
//
// [httputil] - Remote profile fetching with size caps and timeouts.
//
// [errors] - Structured error codes shared across the API surface.
//
// [observability] - Pipeline, cache, and HTTP hooks with no-op defaults.
//
// [buildinfo] - Version metadata injected at build time.
//
// [stack]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/stack
// [profile]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/profile
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/buildinfo
// [render]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render
// [render/flame]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render/flame
// [render/flame/layout]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render/flame/layout
// [render/flame/view]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render/flame/view
// [render/flame/styles]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render/flame/styles
// [render/flame/sink]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render/flame/sink
// [render/callgraph]: https://pkg.go.dev/github.com/matzehuels/flamelens/pkg/render/callgraph
package pkg
