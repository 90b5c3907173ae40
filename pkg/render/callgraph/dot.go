package callgraph

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/flamelens/pkg/stack"
)

// Options configures call-graph diagram rendering.
type Options struct {
	// Detailed includes self/total values and the share of the root total
	// in node labels. When false, only the frame name is shown.
	Detailed bool

	// MinValue prunes frames (and their subtrees) whose cumulative value
	// falls below the threshold. Zero keeps every frame.
	MinValue float64
}

// ToDOT converts a profile tree to Graphviz DOT format for call-graph
// visualization. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Frames pruned by Options.MinValue disappear together with their subtrees;
// their parents are rendered with dashed outlines and grey fill to mark the
// truncation.
func ToDOT(t *stack.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	total := t.Total()
	kept := make([]bool, t.Len())
	skipUntil := int32(-1)
	for id := int32(0); id < int32(t.Len()); id++ {
		if id < skipUntil {
			continue
		}
		n, _ := t.Node(id)
		if n.Value < opts.MinValue {
			skipUntil = id + t.SubtreeSize(id)
			continue
		}
		kept[id] = true

		label := fmtLabel(n, total, opts.Detailed)
		attrs := fmtAttrs(label, truncated(t, id, opts.MinValue))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for id := int32(0); id < int32(t.Len()); id++ {
		if !kept[id] {
			continue
		}
		for _, c := range t.ChildrenOf(id) {
			if !kept[c] {
				continue
			}
			cn, _ := t.Node(c)
			fmt.Fprintf(&buf, "  %q -> %q [penwidth=%.2f];\n", nodeID(id), nodeID(c), penwidth(cn.Value, total))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID returns the DOT identifier for a frame. Frame names repeat across
// a profile, so identifiers derive from the unique tree id instead.
func nodeID(id int32) string {
	return "n" + strconv.Itoa(int(id))
}

func fmtLabel(n *stack.Node, total float64, detailed bool) string {
	if !detailed {
		return n.Name
	}

	parts := []string{
		"self: " + fmtValue(n.Self),
		"total: " + fmtValue(n.Value),
	}
	if total > 0 {
		parts = append(parts, fmt.Sprintf("share: %.1f%%", n.Value/total*100))
	}

	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtAttrs(label string, truncated bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if truncated {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// truncated reports whether any direct child of id falls below the pruning
// threshold.
func truncated(t *stack.Tree, id int32, minValue float64) bool {
	if minValue <= 0 {
		return false
	}
	for _, c := range t.ChildrenOf(id) {
		if n, ok := t.Node(c); ok && n.Value < minValue {
			return true
		}
	}
	return false
}

// penwidth maps a frame's share of the root total to a stroke width in
// [1, 5] so hot edges read at a glance.
func penwidth(value, total float64) float64 {
	if total <= 0 {
		return 1
	}
	frac := value / total
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return 1 + 4*frac
}
