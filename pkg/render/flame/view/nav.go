package view

// Cursor returns the id of the keyboard cursor.
func (v *View) Cursor() int32 { return v.cursor }

// SetCursor moves the cursor to id if it is a visible frame. Hidden or
// unknown frames are ignored.
func (v *View) SetCursor(id int32) {
	if v.tree.Contains(id) && v.Visibility(id) != Hidden {
		v.cursor = id
	}
}

// Up moves the cursor to its parent. No-op on the root.
func (v *View) Up() {
	if parent, ok := v.tree.Parent(v.cursor); ok {
		v.cursor = parent
	}
}

// Down moves the cursor to the left-most visible child. No-op when every
// child is hidden.
func (v *View) Down() {
	n, ok := v.tree.Node(v.cursor)
	if !ok {
		return
	}
	for _, c := range n.Children {
		if v.Visibility(c) != Hidden {
			v.cursor = c
			return
		}
	}
}

// Left moves the cursor to the nearest visible sibling before it.
func (v *View) Left() { v.sideStep(-1) }

// Right moves the cursor to the nearest visible sibling after it.
func (v *View) Right() { v.sideStep(1) }

// Home moves the cursor back to the root without changing zoom.
func (v *View) Home() { v.cursor = v.tree.Root() }

func (v *View) sideStep(dir int) {
	parent, ok := v.tree.Parent(v.cursor)
	if !ok {
		return
	}
	siblings := v.tree.ChildrenOf(parent)

	at := -1
	for i, s := range siblings {
		if s == v.cursor {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}

	for i := at + dir; i >= 0 && i < len(siblings); i += dir {
		if v.Visibility(siblings[i]) != Hidden {
			v.cursor = siblings[i]
			return
		}
	}
}
