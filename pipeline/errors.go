package pipeline

import (
	"fmt"

	"github.com/protodata-io/protodata/reporter"
)

// ErrRenderFailed wraps whichever renderer's error aborted a Run, along
// with that renderer's registration index.
type ErrRenderFailed struct {
	Renderer int
	Err      error
}

func (e *ErrRenderFailed) Error() string {
	return fmt.Sprintf("pipeline: renderer %d failed: %v", e.Renderer, e.Err)
}

func (e *ErrRenderFailed) Unwrap() error { return e.Err }

// reportAt wraps err with pos and hands it to handler, matching spec.md's
// policy that the pipeline surfaces the first failure and does not
// attempt to roll back partial writes. handler is a *reporter.Handler —
// the teacher's own "first error sticks" type, reused as-is since our
// positions are just coarser (a file path or a renderer's registration
// index rather than a line/column).
func reportAt(handler *reporter.Handler, pos reporter.SourcePos, err error) error {
	return handler.HandleError(reporter.Error(pos, err))
}
