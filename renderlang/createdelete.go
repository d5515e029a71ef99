package renderlang

import (
	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/source"
)

// CreateFileRenderer unconditionally creates one new file.
type CreateFileRenderer struct {
	Path string
	Code string
}

func (r CreateFileRenderer) Render(_ *projection.Context, sources *source.SourceSet) error {
	sources.CreateFile(r.Path, r.Code)
	return nil
}

// DeleteRenderer deletes one existing file. FileNotFound is swallowed
// rather than surfaced as fatal, since a delete targeting something a
// prior renderer already removed is a common, harmless race in renderer
// chains built from independent plugins.
type DeleteRenderer struct {
	Path string
}

func (r DeleteRenderer) Render(_ *projection.Context, sources *source.SourceSet) error {
	err := sources.Delete(r.Path)
	if _, ok := err.(*source.NotFoundError); ok {
		return nil
	}
	return err
}
