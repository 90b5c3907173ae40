package view

import "strings"

// Search highlights every frame whose name contains term,
// case-insensitively, and returns the match count. Previous highlights
// are replaced. A blank term clears the search. Zoom state is not
// touched.
func (v *View) Search(term string) int {
	v.ClearSearch()

	term = strings.TrimSpace(term)
	if term == "" {
		return 0
	}
	v.term = term
	needle := strings.ToLower(term)

	nodes := v.tree.Nodes()
	for i := range nodes {
		if strings.Contains(strings.ToLower(nodes[i].Name), needle) {
			v.highlight[i] = true
			v.matches++
		}
	}

	// Total up maximal matched subtrees only, so nested matches are not
	// double counted. Pre-order contiguity lets one pass skip each counted
	// subtree's id range.
	var skipUntil int32
	for id := int32(0); id < int32(len(nodes)); id++ {
		if id < skipUntil {
			continue
		}
		if v.highlight[id] {
			v.matchedValue += nodes[id].Value
			skipUntil = id + v.tree.SubtreeSize(id)
		}
	}

	return v.matches
}

// ClearSearch removes all highlights. Zoom state is not touched.
func (v *View) ClearSearch() {
	for i := range v.highlight {
		v.highlight[i] = false
	}
	v.term = ""
	v.matches = 0
	v.matchedValue = 0
}

// Term returns the active search term, or "" when no search is active.
func (v *View) Term() string { return v.term }

// Matches returns the number of frames the active search highlighted.
func (v *View) Matches() int { return v.matches }

// MatchedValue returns the combined value of the maximal highlighted
// subtrees.
func (v *View) MatchedValue() float64 { return v.matchedValue }

// MatchedShare returns MatchedValue as a fraction of the profile total,
// for the "N matches, X% of profile" readout. Zero-total profiles report
// 0.
func (v *View) MatchedShare() float64 {
	total := v.tree.Total()
	if total <= 0 {
		return 0
	}
	return v.matchedValue / total
}

// Highlighted reports whether one frame is highlighted by the active
// search.
func (v *View) Highlighted(id int32) bool {
	if id < 0 || int(id) >= len(v.highlight) {
		return false
	}
	return v.highlight[id]
}
