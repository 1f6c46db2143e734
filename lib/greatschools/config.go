package greatschools

import (
	"greatschools/lib/greatschools/transport"
	"log/slog"
)

// Config is read once by NewClient, later changes to it have no effect on
// the client.
type Config struct {
	// Hostname of the service, [scheme://]host[:port][/path]. Defaults to DefaultHostname.
	Hostname string `json:"hostname"`
	// Key is appended to every request's query string, it is omitted when empty.
	Key string `json:"key"`
	// TimeoutSeconds bounds each request. 0 selects DefaultTimeoutSeconds,
	// negative values are rejected.
	TimeoutSeconds int `json:"timeout"`
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string `json:"user_agent"`
	// Headers are sent with every request, they take precedence over UserAgent.
	Headers map[string]string `json:"headers"`
	// UseConcurrentTransport selects the pooled transport over the standard
	// connection-per-request one.
	UseConcurrentTransport bool `json:"concurrent"`

	// Logger receives debug traces of every call, defaults to slog.Default().
	Logger *slog.Logger `json:"-"`
	// Transport overrides the variant selected by UseConcurrentTransport.
	Transport transport.Transport `json:"-"`
}
