package renderlang

import (
	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/source"
)

// AddAtPointRenderer splices Lines in after every line in Path containing
// Point's marker, indented by ExtraIndent levels. Repeated renderers
// targeting the same point on the same file compose in registration
// order, per InsertionBuilder.Add's contract.
type AddAtPointRenderer struct {
	Path        string
	Point       source.InsertionPoint
	Lines       []string
	ExtraIndent int
}

func (r AddAtPointRenderer) Render(_ *projection.Context, sources *source.SourceSet) error {
	f, err := sources.File(r.Path)
	if err != nil {
		return err
	}
	f.At(r.Point).Add(r.Lines, r.ExtraIndent)
	return nil
}
