package greatschools

import (
	"errors"
	"fmt"
	"greatschools/lib/greatschools/structured"
	"greatschools/lib/greatschools/transport"
	"net/http"
)

// NetworkError is returned when the service could not be reached or did not
// answer within the configured timeout.
type NetworkError = transport.NetworkError

// ParseError is returned when a response body cannot be decoded or lacks a
// field the result requires.
type ParseError = structured.ParseError

var (
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("invalid parameter")
	// ErrBadResponse matches any *BadResponseError.
	ErrBadResponse = errors.New("bad response")
	// ErrNetwork matches any *NetworkError.
	ErrNetwork = transport.ErrNetwork
	// ErrParse matches any *ParseError.
	ErrParse = structured.ErrParse
)

// ValidationError is returned before any request is made when a
// caller-supplied parameter is missing or invalid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("greatschools: invalid parameter %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func missingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required"}
}

// BadResponseError is returned for any response whose status is not 200,
// regardless of its body.
type BadResponseError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	// Path is the request path (with its query string) that was sent.
	Path string
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf(
		"greatschools: bad response %d %s for %s",
		e.StatusCode, http.StatusText(e.StatusCode), transport.RedactKey(e.Path),
	)
}

func (e *BadResponseError) Is(target error) bool {
	return target == ErrBadResponse
}
