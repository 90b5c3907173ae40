// Package view tracks the interactive state of one flame graph: zoom
// focus, per-frame visibility, search highlights, and the keyboard
// cursor.
//
// # Overview
//
// A [View] sits on top of an immutable tree and layout pair. It never
// rewrites rectangles; zooming picks a new window for the scale map and
// re-derives a visibility class for every frame:
//
//   - Shown: the focus frame and its whole subtree
//   - Faded: strict ancestors of the focus (still labeled, zoom-out targets)
//   - Hidden: everything else, i.e. siblings of the focus path and their
//     subtrees
//
// Visibility is a derived array, recomputed in full on every focus
// change, so stale flags from earlier zooms cannot survive. The walks are
// iterative; input-controlled depth never grows the call stack.
//
// # Zoom Semantics
//
// ZoomTo toggles: zooming a frame that is already the focus zooms out to
// its parent. Zooming the root while unzoomed is a no-op, as is any id
// outside the tree.
//
// # Search
//
// Search marks every frame whose name contains the term
// (case-insensitive) and reports the match count and the share of the
// profile they cover. Highlights are orthogonal to zoom: neither
// operation disturbs the other's state.
//
// # Navigation
//
// The cursor moves over visible frames only: up to the parent, down to
// the left-most visible child, left and right between visible siblings,
// and home back to the root. Moves at a boundary are no-ops. The cursor
// never changes layout or visibility.
package view
