package stack

import "slices"

// WalkSubtree visits every frame in the subtree rooted at id in pre-order,
// id itself included. Unknown ids visit nothing. The visited node pointer
// aliases tree-owned memory and must not be retained or mutated.
//
// Pre-order ids make a subtree a contiguous block, so the walk is a plain
// range with no recursion and no allocation.
func (t *Tree) WalkSubtree(id int32, visit func(int32, *Node)) {
	if !t.Contains(id) {
		return
	}
	end := id + t.sizes[id]
	for i := id; i < end; i++ {
		visit(i, &t.nodes[i])
	}
}

// Path returns the ids on the root-to-id path, both ends inclusive.
// Unknown ids yield nil.
func (t *Tree) Path(id int32) []int32 {
	if !t.Contains(id) {
		return nil
	}
	var path []int32
	for cur := id; cur >= 0; cur = t.nodes[cur].Parent {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// IsAncestor reports whether anc is a strict ancestor of id.
func (t *Tree) IsAncestor(anc, id int32) bool {
	if !t.Contains(anc) || !t.Contains(id) {
		return false
	}
	return anc != id && id > anc && id < anc+t.sizes[anc]
}

// InSubtree reports whether id lies in the subtree rooted at root,
// root itself included.
func (t *Tree) InSubtree(root, id int32) bool {
	if !t.Contains(root) || !t.Contains(id) {
		return false
	}
	return id >= root && id < root+t.sizes[root]
}
