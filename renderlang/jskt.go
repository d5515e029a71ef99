package renderlang

import (
	"strings"

	"github.com/protodata-io/protodata/projection"
	"github.com/protodata-io/protodata/source"
)

// JsRenderer appends a greeting to every ".js" file; KtRenderer does the
// same for ".kt" files. Together they demonstrate per-language dispatch:
// each renderer only touches files whose extension matches, and ignores
// everything else in the set.
type JsRenderer struct{}

func (JsRenderer) Render(_ *projection.Context, sources *source.SourceSet) error {
	return appendToExtension(sources, "js", " Hello JavaScript")
}

type KtRenderer struct{}

func (KtRenderer) Render(_ *projection.Context, sources *source.SourceSet) error {
	return appendToExtension(sources, "kt", " Hello Kotlin")
}

func appendToExtension(sources *source.SourceSet, ext, suffix string) error {
	for _, f := range sources.Files() {
		if !strings.HasSuffix(f.Path(), "."+ext) {
			continue
		}
		f.Overwrite(f.Code() + suffix)
	}
	return nil
}
