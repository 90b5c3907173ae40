package styles

import (
	"regexp"
	"strings"
	"testing"
)

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestColorOfDeterministic(t *testing.T) {
	first := ColorOf("main.run", CategoryApp)
	for i := 0; i < 20; i++ {
		if got := ColorOf("main.run", CategoryApp); got != first {
			t.Fatalf("ColorOf not deterministic: %q then %q", first, got)
		}
	}
	if !hexColor.MatchString(first) {
		t.Errorf("ColorOf() = %q, want #rrggbb", first)
	}
}

func TestColorOfCategoriesDiffer(t *testing.T) {
	seen := map[string]string{}
	for _, cat := range []string{CategoryApp, CategoryLib, CategoryRuntime, CategoryKernel, CategoryExternal, CategoryInlined} {
		c := ColorOf("same.name", cat)
		if prev, dup := seen[c]; dup {
			t.Errorf("categories %s and %s share color %s", prev, cat, c)
		}
		seen[c] = cat
	}
}

func TestColorOfUnknownCategory(t *testing.T) {
	a := ColorOf("f", "no-such-category")
	b := ColorOf("f", "")
	if a != b {
		t.Errorf("unknown categories should share the default hue: %q vs %q", a, b)
	}
	if !hexColor.MatchString(a) {
		t.Errorf("ColorOf() = %q, want #rrggbb", a)
	}
}

func TestColorOfNamesVaryShade(t *testing.T) {
	a := ColorOf("alpha", CategoryApp)
	b := ColorOf("omega", CategoryApp)
	if a == b {
		t.Errorf("distinct names produced identical shade %q", a)
	}
}

func TestNameShadeRange(t *testing.T) {
	for _, name := range []string{"", "a", "main", strings.Repeat("z", 100), "\xff\xfe"} {
		v := nameShade(name)
		if v < 0 || v > 1 {
			t.Errorf("nameShade(%q) = %v, want within [0,1]", name, v)
		}
	}
}

func TestNameShadeFrontLoaded(t *testing.T) {
	// The first characters dominate: changing a late character moves the
	// shade less than changing the first one.
	base := nameShade("abcdefgh")
	frontDelta := diff(base, nameShade("bbcdefgh"))
	backDelta := diff(base, nameShade("abcdefgi"))
	if backDelta > frontDelta {
		t.Errorf("late-character delta %v exceeds first-character delta %v", backDelta, frontDelta)
	}
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestHighlightColorIsFixed(t *testing.T) {
	if !hexColor.MatchString(HighlightColor) {
		t.Errorf("HighlightColor = %q, want #rrggbb", HighlightColor)
	}
	if FadeOpacity <= 0 || FadeOpacity >= 1 {
		t.Errorf("FadeOpacity = %v, want within (0,1)", FadeOpacity)
	}
}
