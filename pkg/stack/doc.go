// Package stack provides the weighted call-tree model behind every
// flamelens view.
//
// # Overview
//
// Flamelens renders profiles as flame graphs: each stack frame becomes a
// rectangle whose width is proportional to the time (or bytes, or samples)
// spent in it. This package provides the core data structure: an immutable
// arena of frames with derived self values, depths and heights.
//
// The arena is a flat slice indexed by navigation id. Ids are assigned in
// depth-first pre-order with children kept in their input order, so a
// subtree always occupies a contiguous id range. That one total order is
// shared by the partition layout (sibling tie-breaking) and by keyboard
// navigation, which keeps the two perfectly consistent.
//
// # Basic Usage
//
// Build a tree from nested input frames with [Build], then query it:
//
//	t, err := stack.Build(&stack.Frame{
//	    Name: "root", Value: 100,
//	    Children: []*stack.Frame{
//	        {Name: "work", Value: 60},
//	        {Name: "idle", Value: 40},
//	    },
//	})
//	t.Total()        // 100
//	t.ChildrenOf(0)  // [1 2]
//
// # Derived values
//
// Build derives each frame's self value as its declared value minus the sum
// of its children's declared values. Profiles sometimes over-subscribe a
// frame (children sum past the parent); those self values clamp to zero and
// [Tree.ClampedCount] reports how many did. Declared values are kept as-is
// so layout proportions always follow the input.
//
// # Concurrency
//
// A Tree is immutable after Build and safe for concurrent readers. Views,
// layouts and render frames all treat it as read-only.
package stack
