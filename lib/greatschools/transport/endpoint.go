package transport

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// accepts [scheme://]host[:port][/path]
var hostPattern = regexp.MustCompile(`^((https?)://)?([^:/]+)(:(\d+))?(/.*)?$`)

// Endpoint is a parsed hostname, it is the connection target of every request.
type Endpoint struct {
	Scheme   string
	Host     string
	Port     int
	BasePath string
}

func defaultPort(scheme string) int {
	if scheme == "https" {
		return 443
	}
	return 80
}

// ParseEndpoint parses a hostname of the form [scheme://]host[:port][/path].
// scheme defaults to http, port defaults to the scheme's default port.
func ParseEndpoint(hostname string) (Endpoint, error) {
	match := hostPattern.FindStringSubmatch(strings.TrimSpace(hostname))
	if match == nil {
		return Endpoint{}, fmt.Errorf("invalid hostname %q", hostname)
	}

	scheme := match[2]
	if scheme == "" {
		scheme = "http"
	}

	port := defaultPort(scheme)
	if match[5] != "" {
		parsed, err := strconv.Atoi(match[5])
		if err != nil || parsed <= 0 || parsed > 65535 {
			return Endpoint{}, fmt.Errorf("invalid port in hostname %q", hostname)
		}
		port = parsed
	}

	return Endpoint{
		Scheme:   scheme,
		Host:     match[3],
		Port:     port,
		BasePath: strings.TrimSuffix(match[6], "/"),
	}, nil
}

// Address is the literal host:port connection target.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Site is the display form of the endpoint, the port is omitted when it
// is the scheme's default. It is only meant for logging.
func (e Endpoint) Site() string {
	if e.Port == defaultPort(e.Scheme) {
		return fmt.Sprintf("%s://%s", e.Scheme, e.Host)
	}
	return fmt.Sprintf("%s://%s", e.Scheme, e.Address())
}

// URL joins the connection target with a request path (which may carry a query string).
func (e Endpoint) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s://%s%s%s", e.Scheme, e.Address(), e.BasePath, path)
}
