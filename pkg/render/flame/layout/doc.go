// Package layout partitions an indexed call tree into nested rectangles
// and maps them into pixel space.
//
// # Overview
//
// Layout happens once per tree in an abstract coordinate space: the root
// frame spans [0, width] and every child occupies a slice of its parent
// proportional to its share of the parent's value. Depth picks the
// vertical band. The result is a flat rect slice indexed by frame id,
// immutable for the lifetime of the tree.
//
// Pixel placement is a separate, throwaway step: [NewScale] builds two
// linear maps (zoom window → viewport width, vertical extent → viewport
// height) and is recomputed on every render. Zooming therefore never
// rewrites rects; it only changes the window handed to the scale.
//
// # Coordinate Spaces
//
//	abstract: Rect{X0, X1, Y0, Y1}, root spans [0, Width]
//	pixel:    Scale.X/Y/W/H under a Viewport
//
// The vertical pixel mapping depends on orientation: flipped viewports
// draw the root band at the top (icicle), unflipped at the bottom
// (classic flame).
//
// # Degenerate Inputs
//
// Zero-width layouts, zero-value parents, and zero-size viewports all
// produce finite zero-size output instead of NaN or panics.
package layout
