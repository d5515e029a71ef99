package source

import "fmt"

// NotFoundError reports that no stored path matched a lookup, either
// exactly or as a unique suffix.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source: no file found for %q", e.Path)
}

// AmbiguousError reports that a suffix lookup matched more than one
// stored path.
type AmbiguousError struct {
	Path    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("source: %q matches %d files: %v", e.Path, len(e.Matches), e.Matches)
}

// ReadError wraps an I/O failure encountered while populating a SourceSet
// from disk.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("source: read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps an I/O failure encountered while flushing a SourceSet
// to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("source: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
