package lawk

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures of a run.
type ErrorKind int

const (
	// OK is the kind of a nil error.
	OK ErrorKind = iota
	// FieldOutOfRange means a line has more fields than the table holds,
	// or the table capacity is below one.
	FieldOutOfRange
	// LineOutOfRange means a line does not fit the line buffer.
	LineOutOfRange
	// OpenFailed means the input file could not be opened.
	OpenFailed
	// PatternCompileError means Pattern is not a valid expression.
	PatternCompileError
	// ReadFailed means the input failed in the middle of the stream.
	ReadFailed
	// Unknown is the kind of errors not produced by lawk.
	Unknown
)

var kindMessages = [...]string{
	OK:                  "success",
	FieldOutOfRange:     "fields is too small",
	LineOutOfRange:      "line is too small",
	OpenFailed:          "open file failed",
	PatternCompileError: "pattern compile failed",
	ReadFailed:          "read failed",
	Unknown:             "unknown failed",
}

var kindNames = [...]string{
	OK:                  "OK",
	FieldOutOfRange:     "FieldOutOfRange",
	LineOutOfRange:      "LineOutOfRange",
	OpenFailed:          "OpenFailed",
	PatternCompileError: "PatternCompileError",
	ReadFailed:          "ReadFailed",
	Unknown:             "Unknown",
}

// Message returns the fixed description of the kind.
func (k ErrorKind) Message() string {
	if k < OK || k > Unknown {
		k = Unknown
	}
	return kindMessages[k]
}

func (k ErrorKind) String() string {
	if k < OK || k > Unknown {
		k = Unknown
	}
	return kindNames[k]
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrFieldOutOfRange     = &Error{Kind: FieldOutOfRange}
	ErrLineOutOfRange      = &Error{Kind: LineOutOfRange}
	ErrOpenFailed          = &Error{Kind: OpenFailed}
	ErrPatternCompileError = &Error{Kind: PatternCompileError}
	ErrReadFailed          = &Error{Kind: ReadFailed}
)

// Error is returned by Run and RunReader.
type Error struct {
	Kind ErrorKind
	Path string // input name, empty for readers
	Line int    // 1-based input line, 0 when not tied to a line
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	switch {
	case e.Path != "" && e.Line > 0:
		msg = fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	case e.Path != "":
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	case e.Line > 0:
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err: OK for nil, Unknown for errors that do
// not come from lawk.
func KindOf(err error) ErrorKind {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// ErrorMessage returns the fixed description of err's kind, suitable for
// display without the input-specific details of err.Error().
func ErrorMessage(err error) string {
	return KindOf(err).Message()
}
