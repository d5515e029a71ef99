package renderlang

import (
	"strings"

	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/source"
)

// InsertionPointPrinter lazily wraps every matching file's content with
// marker comments the first time that file's code is read — not at
// registration time — so files no later renderer touches are never
// perturbed on disk (the "lazy marker emission" property).
type InsertionPointPrinter struct {
	Style CommentStyle
	// Extensions restricts which files get markers, matched against the
	// path's suffix after the last '.'; empty means every file.
	Extensions []string
	Leading    []source.InsertionPoint
	Trailing   []source.InsertionPoint
}

func (r InsertionPointPrinter) Render(_ *projection.Context, sources *source.SourceSet) error {
	sources.PrepareCode(func(f *source.SourceFile) {
		if !r.matches(f.Path()) {
			return
		}
		var b strings.Builder
		for _, p := range r.Leading {
			b.WriteString(r.Style.Comment(p.Marker()))
			b.WriteString("\n")
		}
		b.WriteString(f.Code())
		for _, p := range r.Trailing {
			b.WriteString("\n")
			b.WriteString(r.Style.Comment(p.Marker()))
		}
		f.Overwrite(b.String())
	})
	return nil
}

func (r InsertionPointPrinter) matches(path string) bool {
	if len(r.Extensions) == 0 {
		return true
	}
	for _, ext := range r.Extensions {
		if strings.HasSuffix(path, "."+ext) {
			return true
		}
	}
	return false
}
