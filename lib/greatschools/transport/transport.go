package transport

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("greatschools/transport")

// Request is a single GET against the service.
type Request struct {
	Endpoint Endpoint
	// Path is the request path including its encoded query string.
	Path    string
	Header  http.Header
	Timeout time.Duration
}

// Response is the raw result of a Request, it is not retained by the client.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Transport executes requests. Implementations must be safe for concurrent use
// and must return a *NetworkError when the request could not be completed.
//
// note: fault injection point
type Transport interface {
	Name() string
	Perform(ctx context.Context, req Request) (*Response, error)
}

// New selects a transport variant, `concurrent` selects the pooled engine.
func New(concurrent bool) Transport {
	if concurrent {
		return NewPooled()
	}
	return NewStandard()
}

// redirects are returned to the caller as they are, a 3xx is not a 200
func keepRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// connection-level headers differ between variants, they are not part of the response
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func endToEndHeader(header http.Header) http.Header {
	out := header.Clone()
	if out == nil {
		out = http.Header{}
	}
	for _, name := range hopByHopHeaders {
		out.Del(name)
	}
	return out
}
