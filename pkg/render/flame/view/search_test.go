package view

import (
	"math"
	"testing"
)

func TestSearch(t *testing.T) {
	v := newScenario(t)

	got := v.Search("a1")
	if got != 1 {
		t.Fatalf("Search(a1) = %d, want 1", got)
	}

	if !v.Highlighted(2) {
		t.Error("A1 should be highlighted")
	}
	for _, id := range []int32{0, 1, 3} {
		if v.Highlighted(id) {
			t.Errorf("frame %d should not be highlighted", id)
		}
	}
	if v.Term() != "a1" {
		t.Errorf("Term() = %q, want a1", v.Term())
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	v := newScenario(t)

	if got := v.Search("ROOT"); got != 1 {
		t.Errorf("Search(ROOT) = %d, want 1", got)
	}
	if !v.Highlighted(0) {
		t.Error("root should match case-insensitively")
	}
}

func TestSearchSubstring(t *testing.T) {
	v := newScenario(t)

	// "a" matches A and A1 by substring.
	if got := v.Search("a"); got != 2 {
		t.Errorf("Search(a) = %d, want 2", got)
	}
}

func TestSearchMatchedShareCountsMaximalSubtrees(t *testing.T) {
	v := newScenario(t)

	// A and A1 both match but A1 nests inside A, so only A's subtree counts.
	v.Search("a")
	if v.MatchedValue() != 60 {
		t.Errorf("MatchedValue() = %v, want 60", v.MatchedValue())
	}
	if math.Abs(v.MatchedShare()-0.6) > 1e-9 {
		t.Errorf("MatchedShare() = %v, want 0.6", v.MatchedShare())
	}

	// Disjoint matches add up.
	v.Search("1")
	if v.MatchedValue() != 30 {
		t.Errorf("MatchedValue() = %v, want 30", v.MatchedValue())
	}
}

func TestSearchReplacesPreviousHighlights(t *testing.T) {
	v := newScenario(t)

	v.Search("b")
	v.Search("a1")

	if v.Highlighted(3) {
		t.Error("stale highlight on B survived a new search")
	}
	if !v.Highlighted(2) {
		t.Error("A1 should be highlighted by the new search")
	}
}

func TestSearchBlankClears(t *testing.T) {
	v := newScenario(t)

	v.Search("a")
	if got := v.Search("  "); got != 0 {
		t.Errorf("Search(blank) = %d, want 0", got)
	}
	if v.Matches() != 0 || v.Term() != "" {
		t.Error("blank search should clear state")
	}
}

func TestClearSearch(t *testing.T) {
	v := newScenario(t)

	v.Search("a")
	v.ClearSearch()

	if v.Matches() != 0 || v.MatchedValue() != 0 || v.Term() != "" {
		t.Error("ClearSearch() should reset all search state")
	}
	for id := int32(0); id < 4; id++ {
		if v.Highlighted(id) {
			t.Errorf("frame %d still highlighted after clear", id)
		}
	}
}

func TestSearchOrthogonalToZoom(t *testing.T) {
	v := newScenario(t)

	// Zoom first, then search: visibility untouched by the search.
	v.ZoomTo(1)
	v.Search("b")
	if v.Visibility(3) != Hidden {
		t.Error("search changed visibility")
	}
	if !v.Highlighted(3) {
		t.Error("hidden frames still participate in search")
	}

	// Zoom again: highlights untouched by the zoom.
	v.ZoomTo(3)
	if !v.Highlighted(3) {
		t.Error("zoom cleared search highlights")
	}

	// Clearing search leaves zoom alone.
	v.ClearSearch()
	if v.Focus() != 3 {
		t.Errorf("ClearSearch() moved focus to %d", v.Focus())
	}
}

func TestHighlightedOutOfRange(t *testing.T) {
	v := newScenario(t)
	if v.Highlighted(-1) || v.Highlighted(99) {
		t.Error("out-of-range ids should not read as highlighted")
	}
}

func TestMatchedShareZeroTotal(t *testing.T) {
	v := newZeroTree(t)
	v.Search("z")
	if v.MatchedShare() != 0 {
		t.Errorf("MatchedShare() = %v, want 0 for zero-total profile", v.MatchedShare())
	}
}
