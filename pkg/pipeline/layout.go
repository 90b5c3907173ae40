package pipeline

import (
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// ComputeLayout computes rectangle geometry for every frame of the tree.
func ComputeLayout(t *stack.Tree, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	return layout.Build(t, opts.Width, opts.BandHeight), nil
}

// BuildView derives zoom and search state for the tree. Focus names a frame
// to zoom to; an unknown name leaves the view at the root. Search highlights
// matching frames without changing the zoom.
func BuildView(t *stack.Tree, l *layout.Layout, opts Options) *view.View {
	v := view.New(t, l)
	if opts.Focus != "" {
		if id, ok := t.FindByName(opts.Focus); ok {
			v.ZoomTo(id)
		}
	}
	if opts.Search != "" {
		v.Search(opts.Search)
	}
	return v
}
