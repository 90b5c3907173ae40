package stack

import "errors"

var (
	// ErrNilRoot is returned by [Build] when the root frame is nil.
	// Every profile needs at least one frame.
	ErrNilRoot = errors.New("profile has no root frame")

	// ErrTooDeep is returned by [Build] when the input nesting exceeds
	// MaxDepth. Such profiles are almost always corrupt or adversarial.
	ErrTooDeep = errors.New("profile exceeds maximum stack depth")

	// ErrTooManyFrames is returned by [Build] when the input holds more
	// than MaxFrames frames.
	ErrTooManyFrames = errors.New("profile exceeds maximum frame count")
)

// Build limits. Real-world profiles stay far below both; the caps bound
// memory for hostile input.
const (
	MaxDepth  = 8192
	MaxFrames = 1 << 22
)

// Frame is one node of raw profile input: a frame name, its cumulative
// value (including all descendants), an opaque category used only for
// coloring, and the ordered child frames.
//
// The zero value is a valid leaf with value 0.
type Frame struct {
	Name     string
	Value    float64
	Category string
	Children []*Frame
}

// Node is one frame in the built arena. All fields are fixed at Build time.
type Node struct {
	Name     string
	Category string

	// Value is the declared cumulative weight of the frame including all
	// descendants. Rectangle widths derive from it.
	Value float64

	// Self is Value minus the children's Values, clamped at zero.
	Self float64

	Parent   int32   // parent id, -1 for the root
	Children []int32 // child ids in input order

	Depth  int32 // root is 0
	Height int32 // longest path to a leaf below, 0 for leaves
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an immutable arena of profile frames indexed by navigation id.
// Ids are dense, depth-first pre-order integers in [0, Len()), with the
// root at id 0. Use [Build] to create one.
type Tree struct {
	nodes   []Node
	sizes   []int32 // subtree sizes, aligned with nodes
	clamped int
}

// Len returns the number of frames in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the id of the root frame.
func (t *Tree) Root() int32 { return 0 }

// Contains reports whether id names a frame of this tree.
func (t *Tree) Contains(id int32) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the frame with the given id.
// The returned pointer aliases tree-owned memory; callers must not mutate it.
func (t *Tree) Node(id int32) (*Node, bool) {
	if !t.Contains(id) {
		return nil, false
	}
	return &t.nodes[id], true
}

// Nodes returns the backing arena in id order.
// The slice is tree-owned and must be treated as read-only.
func (t *Tree) Nodes() []Node { return t.nodes }

// Parent returns the parent id of the given frame.
// The second return is false for the root and for unknown ids.
func (t *Tree) Parent(id int32) (int32, bool) {
	if !t.Contains(id) || t.nodes[id].Parent < 0 {
		return 0, false
	}
	return t.nodes[id].Parent, true
}

// ChildrenOf returns the child ids of the given frame in input order.
// Unknown ids yield nil.
func (t *Tree) ChildrenOf(id int32) []int32 {
	if !t.Contains(id) {
		return nil
	}
	return t.nodes[id].Children
}

// SubtreeSize returns the number of frames in the subtree rooted at id,
// including id itself. Because ids are pre-order, the subtree occupies the
// contiguous range [id, id+size).
func (t *Tree) SubtreeSize(id int32) int32 {
	if !t.Contains(id) {
		return 0
	}
	return t.sizes[id]
}

// Total returns the declared value of the root frame.
func (t *Tree) Total() float64 {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.nodes[0].Value
}

// MaxDepth returns the depth of the deepest frame (the root's height).
func (t *Tree) MaxDepth() int32 {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.nodes[0].Height
}

// ClampedCount returns how many self values were clamped to zero during
// Build because a frame's children over-subscribed it.
func (t *Tree) ClampedCount() int { return t.clamped }

// FindByName returns the id of the first frame (in pre-order) whose name
// matches exactly.
func (t *Tree) FindByName(name string) (int32, bool) {
	for i := range t.nodes {
		if t.nodes[i].Name == name {
			return int32(i), true
		}
	}
	return 0, false
}
