package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// newScenario builds root(100){A(60){A1(30)}, B(40)} at layout width 100.
func newScenario(t *testing.T) (*stack.Tree, *layout.Layout, *view.View) {
	t.Helper()
	tree, err := stack.Build(&stack.Frame{
		Name:  "root",
		Value: 100,
		Children: []*stack.Frame{
			{Name: "A", Value: 60, Category: "app", Children: []*stack.Frame{
				{Name: "A1", Value: 30, Category: "app"},
			}},
			{Name: "B", Value: 40, Category: "lib"},
		},
	})
	if err != nil {
		t.Fatalf("stack.Build() error: %v", err)
	}
	l := layout.Build(tree, 100, 18)
	return tree, l, view.New(tree, l)
}

func TestRenderSVG(t *testing.T) {
	tree, l, v := newScenario(t)

	svg := string(RenderSVG(tree, l, v, WithSize(800, 600)))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("output should start with an svg element")
	}
	if !strings.Contains(svg, `viewBox="0 0 800.0 600.0"`) {
		t.Errorf("viewBox missing or wrong:\n%.200s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with closing svg tag")
	}

	for _, want := range []string{`id="frame-0"`, `id="frame-1"`, `id="frame-2"`, `id="frame-3"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if !strings.Contains(svg, "<title>A (60, 60.0%)</title>") {
		t.Error("tooltip with value and share missing")
	}
	if !strings.Contains(svg, "classList.add('highlight')") {
		t.Error("hover interaction script missing")
	}
	if strings.Count(svg, "<rect") != 4 {
		t.Errorf("rect count = %d, want 4", strings.Count(svg, "<rect"))
	}
}

func TestRenderSVGZoomDropsHidden(t *testing.T) {
	tree, l, v := newScenario(t)
	v.ZoomTo(1) // hides B

	svg := string(RenderSVG(tree, l, v, WithSize(800, 600)))

	if strings.Contains(svg, `id="frame-3"`) {
		t.Error("hidden frame B should be dropped from static SVG")
	}
	if !strings.Contains(svg, `fill-opacity="0.35"`) {
		t.Error("faded root should render at fade opacity")
	}
}

func TestRenderSVGHighlight(t *testing.T) {
	tree, l, v := newScenario(t)
	v.Search("a1")

	svg := string(RenderSVG(tree, l, v, WithSize(800, 600)))
	if !strings.Contains(svg, `fill="`+styles.HighlightColor+`"`) {
		t.Error("search hit should use the highlight fill")
	}
}

func TestRenderSVGDefaultHeightTracksDepth(t *testing.T) {
	tree, l, v := newScenario(t)

	svg := string(RenderSVG(tree, l, v))
	if !strings.Contains(svg, `viewBox="0 0 1200.0 54.0"`) {
		t.Errorf("default height should be bands*%.0f:\n%.200s", DefaultBandPx, svg)
	}
}

func TestRenderSVGEscapesNames(t *testing.T) {
	tree, err := stack.Build(&stack.Frame{Name: "vec<int>::push", Value: 10})
	if err != nil {
		t.Fatal(err)
	}
	l := layout.Build(tree, 100, 18)
	v := view.New(tree, l)

	svg := string(RenderSVG(tree, l, v, WithSize(800, 100)))
	if strings.Contains(svg, "<int>") {
		t.Error("frame name not escaped in output")
	}
	if !strings.Contains(svg, "vec&lt;int&gt;::push") {
		t.Error("escaped frame name missing")
	}
}

func TestRenderSVGFlipped(t *testing.T) {
	tree, l, v := newScenario(t)

	flipped := string(RenderSVG(tree, l, v, WithSize(800, 300), WithFlipped()))
	regular := string(RenderSVG(tree, l, v, WithSize(800, 300)))

	// Icicle puts the root band at the top edge, flame at the bottom.
	if got := rootRectY(t, flipped); got != `y="0.0"` {
		t.Errorf("flipped root rect %s, want y=0", got)
	}
	if got := rootRectY(t, regular); got != `y="200.0"` {
		t.Errorf("flame root rect %s, want y=200", got)
	}
}

// rootRectY extracts the y attribute of frame 0's rect.
func rootRectY(t *testing.T, svg string) string {
	t.Helper()
	at := strings.Index(svg, `id="frame-0"`)
	if at < 0 {
		t.Fatal("frame-0 group missing")
	}
	rest := svg[at:]
	y := strings.Index(rest, ` y="`)
	if y < 0 {
		t.Fatal("rect y attribute missing")
	}
	rest = rest[y+1:]
	end := strings.Index(rest[3:], `"`)
	if end < 0 {
		t.Fatal("unterminated y attribute")
	}
	return rest[:3+end+1]
}
