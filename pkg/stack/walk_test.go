package stack

import (
	"slices"
	"testing"
)

func TestWalkSubtree(t *testing.T) {
	tr, err := Build(testProfile())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tests := []struct {
		name string
		root int32
		want []int32
	}{
		{"from root", 0, []int32{0, 1, 2, 3}},
		{"from inner", 1, []int32{1, 2}},
		{"from leaf", 3, []int32{3}},
		{"out of range", 42, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int32
			tr.WalkSubtree(tt.root, func(id int32, n *Node) {
				got = append(got, id)
			})
			if !slices.Equal(got, tt.want) {
				t.Errorf("WalkSubtree(%d) visited %v, want %v", tt.root, got, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	tr, err := Build(testProfile())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tests := []struct {
		name string
		id   int32
		want []int32
	}{
		{"leaf", 2, []int32{0, 1, 2}},
		{"inner", 1, []int32{0, 1}},
		{"root", 0, []int32{0}},
		{"unknown", 9, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Path(tt.id); !slices.Equal(got, tt.want) {
				t.Errorf("Path(%d) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestIsAncestor(t *testing.T) {
	tr, err := Build(testProfile())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tests := []struct {
		name     string
		anc, id  int32
		expected bool
	}{
		{"root over leaf", 0, 2, true},
		{"root over sibling branch", 0, 3, true},
		{"inner over its leaf", 1, 2, true},
		{"not self", 1, 1, false},
		{"sibling is not ancestor", 1, 3, false},
		{"child is not ancestor of parent", 2, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.IsAncestor(tt.anc, tt.id); got != tt.expected {
				t.Errorf("IsAncestor(%d, %d) = %v, want %v", tt.anc, tt.id, got, tt.expected)
			}
		})
	}
}

func TestInSubtree(t *testing.T) {
	tr, err := Build(testProfile())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if !tr.InSubtree(1, 1) {
		t.Error("InSubtree(1, 1) = false, want true (a node is in its own subtree)")
	}
	if !tr.InSubtree(1, 2) {
		t.Error("InSubtree(1, 2) = false, want true")
	}
	if tr.InSubtree(1, 3) {
		t.Error("InSubtree(1, 3) = true, want false")
	}
}
