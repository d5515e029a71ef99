package source

import (
	"fmt"
	"strings"
)

// InsertionPoint identifies a named location inside a source file, marked
// by a comment line containing Marker().
type InsertionPoint struct {
	Label string
}

// Marker returns the canonical substring a comment line must contain for
// At().Add to find this point. The surrounding comment syntax (// , # ,
// etc.) is the caller's responsibility — see renderlang's printers.
func (p InsertionPoint) Marker() string {
	return fmt.Sprintf("INSERT:'%s'", p.Label)
}

// InsertionBuilder accumulates lines to splice in after every marker line
// for one InsertionPoint in one SourceFile.
type InsertionBuilder struct {
	file  *SourceFile
	point InsertionPoint
}

// Add inserts lines after every line containing the point's marker.
// extraIndent prepends 4*extraIndent spaces to every line. Multiple lines
// are joined with "\n" into a single block; multiple markers with the same
// label each get their own copy of the block. A file with no matching
// marker is left untouched (no-op, no Changed flip). Calling Add again at
// the same marker appends after whatever was inserted by the earlier
// call, preserving renderer-registration order.
func (b *InsertionBuilder) Add(lines []string, extraIndent int) {
	f := b.file
	if f.insertionBase == nil {
		base := f.Code()
		f.insertionBase = &base
		f.insertionBlocks = make(map[int][]string)
	}
	baseLines := strings.Split(*f.insertionBase, "\n")

	marker := b.point.Marker()
	var matched bool
	for i, line := range baseLines {
		if !strings.Contains(line, marker) {
			continue
		}
		matched = true
		f.insertionBlocks[i] = append(f.insertionBlocks[i], indentBlock(lines, extraIndent))
	}
	if !matched {
		return
	}

	out := make([]string, 0, len(baseLines))
	for i, line := range baseLines {
		out = append(out, line)
		out = append(out, f.insertionBlocks[i]...)
	}
	f.setCode(strings.Join(out, "\n"))
}

func indentBlock(lines []string, extraIndent int) string {
	indent := strings.Repeat("    ", extraIndent)
	indented := make([]string, len(lines))
	for i, line := range lines {
		indented[i] = indent + line
	}
	return strings.Join(indented, "\n")
}
