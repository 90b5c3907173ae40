package view

import (
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Visibility classifies one frame under the current zoom focus.
type Visibility uint8

const (
	Hidden Visibility = iota
	Faded
	Shown
)

// String returns the lowercase class name, matching the CSS classes used
// by the SVG sink.
func (v Visibility) String() string {
	switch v {
	case Faded:
		return "faded"
	case Shown:
		return "shown"
	default:
		return "hidden"
	}
}

// View is the mutable interaction state over one immutable (tree, layout)
// pair. It is confined to a single goroutine; renders derive everything
// else from it.
type View struct {
	tree   *stack.Tree
	layout *layout.Layout

	focus  int32
	cursor int32

	vis       []Visibility
	highlight []bool

	term         string
	matches      int
	matchedValue float64
}

// New returns an unzoomed view: focus and cursor on the root, every frame
// shown, no search.
func New(t *stack.Tree, l *layout.Layout) *View {
	v := &View{
		tree:      t,
		layout:    l,
		vis:       make([]Visibility, t.Len()),
		highlight: make([]bool, t.Len()),
	}
	v.recompute()
	return v
}

// Tree returns the underlying tree.
func (v *View) Tree() *stack.Tree { return v.tree }

// Layout returns the underlying layout.
func (v *View) Layout() *layout.Layout { return v.layout }

// Focus returns the id of the current zoom focus (the root when unzoomed).
func (v *View) Focus() int32 { return v.focus }

// Zoomed reports whether the view is focused below the root.
func (v *View) Zoomed() bool { return v.focus != v.tree.Root() }

// ZoomTo focuses the given frame. Zooming the current focus zooms out to
// its parent instead, so a second activation of the same frame backs out
// one level. Ids outside the tree are ignored, as is re-zooming the root
// while already unzoomed.
func (v *View) ZoomTo(target int32) {
	if !v.tree.Contains(target) {
		return
	}
	if target == v.focus {
		parent, ok := v.tree.Parent(target)
		if !ok {
			return
		}
		target = parent
	}
	v.focus = target
	v.cursor = target
	v.recompute()
}

// Reset zooms all the way out and moves the cursor back to the root.
// Search highlights are left alone.
func (v *View) Reset() {
	v.focus = v.tree.Root()
	v.cursor = v.tree.Root()
	v.recompute()
}

// Window returns the horizontal layout interval the viewport shows: the
// focus frame's interval, or the whole layout when unzoomed.
func (v *View) Window() layout.Window {
	if !v.Zoomed() {
		return v.layout.Root()
	}
	r, _ := v.layout.Rect(v.focus)
	return layout.Window{X0: r.X0, X1: r.X1}
}

// Visibility returns the class of one frame under the current focus.
// Out-of-range ids read as Hidden.
func (v *View) Visibility(id int32) Visibility {
	if id < 0 || int(id) >= len(v.vis) {
		return Hidden
	}
	return v.vis[id]
}

// recompute rebuilds the visibility array for the whole tree from the
// current focus. Everything starts hidden, the root→focus path fades,
// and the focus subtree shows; overlap resolves in that order.
func (v *View) recompute() {
	if !v.Zoomed() {
		for i := range v.vis {
			v.vis[i] = Shown
		}
		return
	}

	for i := range v.vis {
		v.vis[i] = Hidden
	}
	for _, id := range v.tree.Path(v.focus) {
		v.vis[id] = Faded
	}
	v.tree.WalkSubtree(v.focus, func(id int32, _ *stack.Node) {
		v.vis[id] = Shown
	})
}
