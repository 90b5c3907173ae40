package stack

import "math"

// Build constructs the arena tree for a profile.
//
// Ids are assigned in depth-first pre-order with children in input order.
// Nil child frames are skipped. Declared values that are negative, NaN or
// infinite are normalized to zero before any derivation, and self values
// that would go negative (over-subscribed frames) clamp to zero; both cases
// count toward [Tree.ClampedCount].
//
// Build fails only on structural problems: a nil root, nesting deeper than
// MaxDepth, or more than MaxFrames frames.
func Build(root *Frame) (*Tree, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	t := &Tree{nodes: make([]Node, 0, 64)}

	type item struct {
		f      *Frame
		parent int32
		depth  int32
	}
	work := []item{{root, -1, 0}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		if it.depth >= MaxDepth {
			return nil, ErrTooDeep
		}
		if len(t.nodes) >= MaxFrames {
			return nil, ErrTooManyFrames
		}

		value := it.f.Value
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
			t.clamped++
		}

		id := int32(len(t.nodes))
		t.nodes = append(t.nodes, Node{
			Name:     it.f.Name,
			Category: it.f.Category,
			Value:    value,
			Parent:   it.parent,
			Depth:    it.depth,
		})
		if it.parent >= 0 {
			t.nodes[it.parent].Children = append(t.nodes[it.parent].Children, id)
		}

		// Push children in reverse so they pop in input order.
		for i := len(it.f.Children) - 1; i >= 0; i-- {
			if c := it.f.Children[i]; c != nil {
				work = append(work, item{c, id, it.depth + 1})
			}
		}
	}

	derive(t)
	return t, nil
}

// derive fills in the bottom-up values: subtree sizes, heights and self
// values. Children always carry larger ids than their parents, so one
// reverse sweep settles every subtree before its parent reads it.
func derive(t *Tree) {
	n := len(t.nodes)
	t.sizes = make([]int32, n)
	childSum := make([]float64, n)

	for i := range t.sizes {
		t.sizes[i] = 1
	}
	for i := n - 1; i >= 1; i-- {
		p := t.nodes[i].Parent
		childSum[p] += t.nodes[i].Value
		t.sizes[p] += t.sizes[i]
		if h := t.nodes[i].Height + 1; h > t.nodes[p].Height {
			t.nodes[p].Height = h
		}
	}

	for i := range t.nodes {
		self := t.nodes[i].Value - childSum[i]
		if self < 0 {
			self = 0
			t.clamped++
		}
		t.nodes[i].Self = self
	}
}
