package callgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/flamelens/pkg/stack"
)

func testTree(t *testing.T) *stack.Tree {
	t.Helper()
	tree, err := stack.Build(&stack.Frame{
		Name: "root", Value: 100,
		Children: []*stack.Frame{
			{Name: "parse", Value: 60, Category: "app", Children: []*stack.Frame{
				{Name: "lex", Value: 30, Category: "app"},
			}},
			{Name: "emit", Value: 40, Category: "lib"},
		},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return tree
}

func TestToDOT_Basic(t *testing.T) {
	tree := testTree(t)

	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, id := range []string{`"n0"`, `"n1"`, `"n2"`, `"n3"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	if !strings.Contains(dot, `label="parse"`) {
		t.Error("ToDOT() output missing frame name label")
	}
	if !strings.Contains(dot, `"n0" -> "n1"`) || !strings.Contains(dot, `"n1" -> "n2"`) {
		t.Error("ToDOT() output missing caller edges")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	tree := testTree(t)

	dot := ToDOT(tree, Options{Detailed: true})

	if !strings.Contains(dot, "self: 30") {
		t.Error("ToDOT() detailed output missing self value")
	}
	if !strings.Contains(dot, "total: 60") {
		t.Error("ToDOT() detailed output missing total value")
	}
	if !strings.Contains(dot, "share: 60.0%") {
		t.Error("ToDOT() detailed output missing share")
	}
}

func TestToDOT_MinValuePrunes(t *testing.T) {
	tree := testTree(t)

	dot := ToDOT(tree, Options{MinValue: 50})

	if strings.Contains(dot, `"n2"`) || strings.Contains(dot, `"n3"`) {
		t.Errorf("ToDOT() kept pruned frames:\n%s", dot)
	}
	if !strings.Contains(dot, `"n0" -> "n1"`) {
		t.Error("ToDOT() dropped surviving edge")
	}
	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() truncated parent missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() truncated parent missing lightgrey fill")
	}
}

func TestToDOT_PenwidthScales(t *testing.T) {
	tree := testTree(t)

	dot := ToDOT(tree, Options{})

	if !strings.Contains(dot, "penwidth=3.40") {
		t.Errorf("ToDOT() missing penwidth for 60%% edge:\n%s", dot)
	}
	if !strings.Contains(dot, "penwidth=2.60") {
		t.Errorf("ToDOT() missing penwidth for 40%% edge:\n%s", dot)
	}
}

func TestToDOT_ZeroTotal(t *testing.T) {
	tree, err := stack.Build(&stack.Frame{
		Name:     "root",
		Children: []*stack.Frame{{Name: "idle"}},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	dot := ToDOT(tree, Options{Detailed: true})

	if strings.Contains(dot, "share:") {
		t.Error("ToDOT() zero-total tree should omit share lines")
	}
	if !strings.Contains(dot, "penwidth=1.00") {
		t.Error("ToDOT() zero-total tree should fall back to unit penwidth")
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	tree := testTree(t)
	n, _ := tree.Node(1)

	label := fmtLabel(n, tree.Total(), false)

	if label != "parse" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "parse")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	tree := testTree(t)
	n, _ := tree.Node(1)

	label := fmtLabel(n, tree.Total(), true)

	if !strings.HasPrefix(label, "parse\n") {
		t.Errorf("fmtLabel() detailed should start with frame name: %q", label)
	}
	if !strings.Contains(label, "self: 30") {
		t.Errorf("fmtLabel() detailed missing self: %q", label)
	}
	if !strings.Contains(label, "total: 60") {
		t.Errorf("fmtLabel() detailed missing total: %q", label)
	}
	if !strings.Contains(label, "share: 60.0%") {
		t.Errorf("fmtLabel() detailed missing share: %q", label)
	}
}

func TestFmtAttrs_Regular(t *testing.T) {
	attrs := fmtAttrs("test-label", false)

	if len(attrs) != 1 {
		t.Errorf("fmtAttrs() regular frame should have 1 attr, got %d", len(attrs))
	}
	if !strings.Contains(attrs[0], "label=") {
		t.Errorf("fmtAttrs() regular frame missing label attr: %v", attrs)
	}
}

func TestFmtAttrs_Truncated(t *testing.T) {
	attrs := fmtAttrs("test-label", true)

	if len(attrs) != 3 {
		t.Errorf("fmtAttrs() truncated frame should have 3 attrs, got %d: %v", len(attrs), attrs)
	}

	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, "dashed") {
		t.Error("fmtAttrs() truncated frame missing dashed style")
	}
	if !strings.Contains(joined, "lightgrey") {
		t.Error("fmtAttrs() truncated frame missing lightgrey fill")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := `digraph G { a -> b; }`
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	dot := `not valid DOT {{{`
	_, err := RenderSVG(context.Background(), dot)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
