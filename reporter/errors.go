package reporter

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is a sentinel error returned when a pipeline run aborts
// because of reported errors but the configured ErrorReporter always
// returned nil.
var ErrInvalidSource = errors.New("protodata: invalid descriptor set")

// SourcePos identifies where an error or warning originated. Unlike a
// text-source position (line/column), positions here are coarse
// identities: File is a descriptor file name or a source directory path,
// and Element optionally names the element involved (a type, field or
// service, or a renderer such as "renderer[2]").
type SourcePos struct {
	File    string
	Element string
}

func (p SourcePos) String() string {
	if p.Element == "" {
		return p.File
	}
	return fmt.Sprintf("%s: %s", p.File, p.Element)
}

// ErrorWithPos is an error that includes the descriptor position that
// caused it.
//
// The value of Error() contains both the SourcePos and Underlying error.
// The value of Unwrap() is only the Underlying error.
type ErrorWithPos interface {
	error
	GetPosition() SourcePos
	Unwrap() error
}

func Error(pos SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

func Errorf(pos SourcePos, format string, args ...interface{}) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

// errorWithSourcePos is an error about a descriptor element that includes
// information about where that element came from.
//
// Errors that include position info *might* be of this type. Callers
// examining errors for position info should look for the ErrorWithPos
// interface instead, which matches other implementations too.
type errorWithSourcePos struct {
	underlying error
	pos        SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.GetPosition(), e.underlying)
}

// GetPosition implements ErrorWithPos.
func (e errorWithSourcePos) GetPosition() SourcePos {
	return e.pos
}

// Unwrap implements ErrorWithPos, supplying the underlying error without
// position information.
func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
