package pipeline

import (
	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/source"
)

// Renderer mutates the SourceSet using projection state frozen after
// drain. ctx is handed to Render as a parameter rather than injected
// through mutable state, so there is no "set twice" failure mode to guard
// against — context injection is one-shot by construction, not by
// convention. A renderer must tolerate an empty or unrelated SourceSet.
type Renderer interface {
	Render(ctx *projection.Context, sources *source.SourceSet) error
}
