// Package renderlang holds small example Plugin/Renderer implementations
// used to exercise the pipeline end to end: a projection that tracks
// entered type names, a marker printer, and per-extension text renderers.
// None of this is core — it plays the role of the excluded CLI's
// externally-supplied plugin/renderer objects.
package renderlang

// CommentStyle supplies the prefix an InsertionPointPrinter wraps a
// marker in, since the core InsertionPoint protocol only defines the
// marker substring, not its comment syntax.
type CommentStyle struct {
	Prefix string
}

var (
	Java  = CommentStyle{Prefix: "//"}
	Shell = CommentStyle{Prefix: "#"}
)

// Comment renders marker as a single-line comment in this style.
func (s CommentStyle) Comment(marker string) string {
	return s.Prefix + " " + marker
}
