// Package errors is the structured error type every layer returns
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for the wire and for status mapping
// values are sent as numbers, append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is an unclassified error
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is a panic recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable means a dependency may answer on retry
	ErrorCodeUnavailable
	// ErrorCodeConflict is an event that does not fit the session state
	ErrorCodeConflict
	// ErrorCodeInvalidArgument is a malformed resource or parameter
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is a request body that failed validation
	ErrorCodeValidation
	// ErrorCodeJSON is a request body that is not the expected json
	ErrorCodeJSON
	// ErrorCodeNotFound is a missing resource
	ErrorCodeNotFound
	// ErrorCodeDuplicateKey is a unique constraint violation
	ErrorCodeDuplicateKey
	// ErrorCodeDB is any other database failure
	ErrorCodeDB
	// ErrorCodeIO is a local filesystem failure, corpus cache or export scratch files
	ErrorCodeIO
)

var codeNames = [...]string{
	"unknown", "panic", "unavailable", "conflict", "invalid_argument",
	"validation", "json", "not_found", "duplicate_key", "db", "io",
}

// String is the log name of c
func (c ErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatus maps c to a response status
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeConflict, ErrorCodeDuplicateKey:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrNotFound is the shared not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a message and optionally the offending field, the op and a cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error renders "msg: cause" when there is a cause
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	default:
		return e.msg
	}
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field
func (e *Error) Field() string { return e.field }

// Op returns the operation label
func (e *Error) Op() string { return e.op }

// Wire is the error part of a json response
// the cause stays server side
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom renders any error for the wire, foreign errors as Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns the code of the outermost *Error, Unknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether CodeOf(err) is code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return CodeOf(err).HTTPStatus() }

// WithField returns a copy of the *Error in err with field set, foreign errors pass through
func WithField(err error, field string) error {
	return edit(err, func(c *Error) { c.field = field })
}

// WithOp returns a copy of the *Error in err with op set, foreign errors pass through
func WithOp(err error, op string) error {
	return edit(err, func(c *Error) { c.op = op })
}

func edit(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// New returns an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns an *Error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error with orig as its cause
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns an *Error with a formatted message and orig as its cause
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// NotFoundf returns a NotFound error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an InvalidArgument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Conflictf returns a Conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// Unavailablef returns an Unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// DBf returns a DB error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// IOf returns an IO error
func IOf(format string, a ...any) error { return Newf(ErrorCodeIO, format, a...) }

// PanicErrf returns a Panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Internalf returns an Unknown error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
