package structured

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse matches any *ParseError through errors.Is.
var ErrParse = errors.New("parse error")

// ParseError is returned when a payload cannot be decoded, or when a decoded
// payload is missing something a result requires.
type ParseError struct {
	// Format is the payload format being decoded ("xml" or "json"), empty for mapping failures.
	Format string
	// Field is the dotted path of the offending field, if any.
	Field string
	// Line is the 1-based line of a syntax error, 0 if unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	var out strings.Builder
	out.WriteString("greatschools: parse error")
	if e.Format != "" {
		fmt.Fprintf(&out, " (%s)", e.Format)
	}
	if e.Field != "" {
		fmt.Fprintf(&out, " in field %q", e.Field)
	}
	if e.Line > 0 {
		fmt.Fprintf(&out, " at line %d", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(&out, ": %s", e.Err)
	}
	return out.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ErrMissingField is the cause of a ParseError raised for an absent required field.
var ErrMissingField = errors.New("required field is missing")

func MissingField(field string) *ParseError {
	return &ParseError{Field: field, Err: ErrMissingField}
}

func InvalidField(field string, err error) *ParseError {
	return &ParseError{Field: field, Err: err}
}
