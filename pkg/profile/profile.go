package profile

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/matzehuels/flamelens/pkg/stack"
)

// =============================================================================
// Frame - Wire Format
// =============================================================================

// Frame is one node of the serialized call tree. It is the canonical
// interchange shape for profiles: API responses, files on disk, and cache
// entries all use it.
type Frame struct {
	Name     string   `json:"name"`
	Value    float64  `json:"value"`
	Category string   `json:"category,omitempty"`
	Children []*Frame `json:"children,omitempty"`
}

// UnmarshalJSON decodes a frame, coercing a malformed value to 0 rather
// than failing the document. Numbers and numeric strings are accepted;
// null, booleans, and other shapes read as 0.
func (f *Frame) UnmarshalJSON(data []byte) error {
	type alias Frame
	aux := struct {
		Value json.RawMessage `json:"value"`
		*alias
	}{alias: (*alias)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Value = coerceValue(aux.Value)
	return nil
}

func coerceValue(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}

	return 0
}

// =============================================================================
// Wire ↔ Tree Conversion
// =============================================================================

// ToTree converts a decoded profile into the indexed tree used by layout
// and navigation. The conversion preserves child order, so frame ids follow
// the document's pre-order.
func ToTree(root *Frame) (*stack.Tree, error) {
	return stack.Build(toStack(root))
}

// FromTree reconstructs the nested wire form from an indexed tree.
// Child order matches frame id order, so export after import reproduces
// the original document structure.
func FromTree(t *stack.Tree) *Frame {
	if t == nil || t.Len() == 0 {
		return nil
	}

	frames := make([]*Frame, t.Len())
	for id, n := range t.Nodes() {
		frames[id] = &Frame{Name: n.Name, Value: n.Value, Category: n.Category}
	}
	for id, n := range t.Nodes() {
		if n.Parent >= 0 {
			parent := frames[n.Parent]
			parent.Children = append(parent.Children, frames[id])
		}
	}
	return frames[0]
}

// toStack copies the wire tree into build input frames without recursion,
// skipping nil children.
func toStack(f *Frame) *stack.Frame {
	if f == nil {
		return nil
	}

	root := &stack.Frame{Name: f.Name, Value: f.Value, Category: f.Category}

	type pair struct {
		src *Frame
		dst *stack.Frame
	}
	work := []pair{{f, root}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		if len(p.src.Children) == 0 {
			continue
		}
		p.dst.Children = make([]*stack.Frame, 0, len(p.src.Children))
		for _, c := range p.src.Children {
			if c == nil {
				continue
			}
			d := &stack.Frame{Name: c.Name, Value: c.Value, Category: c.Category}
			p.dst.Children = append(p.dst.Children, d)
			work = append(work, pair{c, d})
		}
	}
	return root
}
