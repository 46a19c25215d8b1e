package load

import (
	"errors"
	"strings"
)

// ErrParse indicates a model document that could not be decoded.
var ErrParse = errors.New("polygen: malformed model")

// ParseError is returned when the model document is not valid structured text.
type ParseError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("polygen: parse error")
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
