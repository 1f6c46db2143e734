package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
)

// ErrNetwork matches any *NetworkError through errors.Is.
var ErrNetwork = errors.New("network error")

// NetworkError is returned when a request could not be completed, this covers
// connection, DNS, TLS and timeout failures.
type NetworkError struct {
	// Site is the display form of the endpoint that was being contacted.
	Site      string
	Transport string
	Timeout   bool
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("greatschools: request to %s timed out (%s): %s", e.Site, e.Transport, e.Err)
	}
	return fmt.Sprintf("greatschools: request to %s failed (%s): %s", e.Site, e.Transport, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func newNetworkError(transport string, endpoint Endpoint, err error) *NetworkError {
	return &NetworkError{
		Site:      endpoint.Site(),
		Transport: transport,
		Timeout:   isTimeout(err),
		Err:       redactURLError(err),
	}
}

var keyParam = regexp.MustCompile(`([?&]key=)[^&]*`)

// RedactKey replaces the value of the api key in a path or url.
func RedactKey(path string) string {
	return keyParam.ReplaceAllString(path, "${1}REDACTED")
}

// the engines report failures as *url.Error, which carries the full
// request url including the key.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: RedactKey(urlErr.URL),
		Err: urlErr.Err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
