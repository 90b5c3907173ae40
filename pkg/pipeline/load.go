package pipeline

import (
	"context"

	"github.com/matzehuels/flamelens/pkg/profile"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Load reads the profile named by opts.Source and builds the frame tree.
// Remote sources are fetched over HTTP; everything else is read from disk.
func Load(ctx context.Context, opts Options) (*stack.Tree, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	root, err := profile.Load(ctx, opts.Source, nil)
	if err != nil {
		return nil, err
	}
	return profile.ToTree(root)
}
