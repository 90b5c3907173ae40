package profile

import (
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// maxIssues bounds how many problems a single Validate call reports.
const maxIssues = 5

// Validate checks a decoded profile for structural problems before it is
// built into a tree: frame names within limits, nesting within
// [stack.MaxDepth], and total frame count within [stack.MaxFrames].
//
// Problems are accumulated (up to a small cap) so one pass surfaces several
// issues at once. An empty root name is allowed. Value problems are not
// reported here; the decoder and builder normalize those silently.
func Validate(root *Frame) error {
	if root == nil {
		return apperrors.New(apperrors.ErrCodeInvalidProfile, "profile has no root frame")
	}

	var issues []string

	type item struct {
		f     *Frame
		depth int
	}
	work := []item{{root, 0}}
	seen := 0

	for len(work) > 0 && len(issues) < maxIssues {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		seen++
		if seen > stack.MaxFrames {
			issues = append(issues, fmt.Sprintf("more than %d frames", stack.MaxFrames))
			break
		}
		if it.depth >= stack.MaxDepth {
			issues = append(issues, fmt.Sprintf("frame %q nested deeper than %d levels", it.f.Name, stack.MaxDepth))
			continue
		}
		if err := apperrors.ValidateFrameName(it.f.Name); err != nil {
			issues = append(issues, fmt.Sprintf("frame #%d: %v", seen-1, err))
		}

		for i := len(it.f.Children) - 1; i >= 0; i-- {
			if c := it.f.Children[i]; c != nil {
				work = append(work, item{c, it.depth + 1})
			}
		}
	}

	if len(issues) > 0 {
		return apperrors.New(apperrors.ErrCodeInvalidProfile, "%s", strings.Join(issues, "; "))
	}
	return nil
}
