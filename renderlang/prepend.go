package renderlang

import (
	"strings"

	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/source"
)

// PrependRenderer prepends Prefix to the first occurrence, in every
// source file, of each type name the TypeNamesPlugin recorded matching
// Word — e.g. Word="Journey" turns "Journey worth taking" into
// "_Journey worth taking" given Prefix="_".
type PrependRenderer struct {
	Word   string
	Prefix string
}

func (r PrependRenderer) Render(ctx *projection.Context, sources *source.SourceSet) error {
	names := projection.Query[string](ctx, TypeNamesRepository, func(name string) bool {
		return name == r.Word
	})
	if len(names) == 0 {
		return nil
	}
	for _, f := range sources.Files() {
		code := f.Code()
		idx := strings.Index(code, r.Word)
		if idx < 0 {
			continue
		}
		f.Overwrite(code[:idx] + r.Prefix + code[idx:])
	}
	return nil
}
