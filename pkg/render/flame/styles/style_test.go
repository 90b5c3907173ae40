package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"classic", StyleClassic, true},
		{"mono", StyleMono, true},
		{"", StyleClassic, true},
		{"neon", "", false},
	}
	for _, tt := range tests {
		t.Run("name "+tt.name, func(t *testing.T) {
			s, ok := ByName(tt.name)
			if ok != tt.ok {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && s.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.want)
			}
		})
	}
}

func TestClassicRenderBlock(t *testing.T) {
	var buf bytes.Buffer
	Classic{}.RenderBlock(&buf, Block{X: 10, Y: 20, W: 100, H: 18, Color: "#aabbcc"})

	out := buf.String()
	for _, want := range []string{`x="10.0"`, `y="20.0"`, `width="100.0"`, `height="18.0"`, `fill="#aabbcc"`, `fill-opacity="1.00"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestRenderBlockFades(t *testing.T) {
	for _, s := range []Style{Classic{}, Mono{}} {
		var buf bytes.Buffer
		s.RenderBlock(&buf, Block{W: 10, H: 10, Color: "#aabbcc", Faded: true})
		if !strings.Contains(buf.String(), `fill-opacity="0.35"`) {
			t.Errorf("%s: faded block should carry fade opacity:\n%s", s.Name(), buf.String())
		}
	}
}

func TestRenderTextSkipsEmptyLabels(t *testing.T) {
	for _, s := range []Style{Classic{}, Mono{}} {
		var buf bytes.Buffer
		s.RenderText(&buf, Block{Label: "", FontSize: 12})
		if buf.Len() != 0 {
			t.Errorf("%s: empty label should render nothing, got %q", s.Name(), buf.String())
		}
	}
}

func TestRenderTextEscapes(t *testing.T) {
	var buf bytes.Buffer
	Classic{}.RenderText(&buf, Block{Label: "vec<int>", FontSize: 12, W: 100, H: 18})

	out := buf.String()
	if strings.Contains(out, "<int>") {
		t.Errorf("label not escaped:\n%s", out)
	}
	if !strings.Contains(out, "vec&lt;int&gt;") {
		t.Errorf("escaped label missing:\n%s", out)
	}
}

func TestMonoColorIgnoresCategory(t *testing.T) {
	m := Mono{}
	if m.ColorOf("f", CategoryApp) != m.ColorOf("f", CategoryKernel) {
		t.Error("Mono should color by name only")
	}
	if m.ColorOf("alpha", "") == m.ColorOf("omega", "") {
		t.Error("Mono should still shade by name")
	}
}
