// Package greatschools is a client for the GreatSchools school information API.
//
// Every operation returns a slice of records, even when the service answers
// with a single element. Errors are one of *ValidationError, *NetworkError,
// *BadResponseError or *ParseError and never come with partial results.
package greatschools

import (
	"context"
	"fmt"
	"greatschools/lib/greatschools/structured"
	"greatschools/lib/greatschools/transport"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("lib/greatschools")
var meter = otel.Meter("lib/greatschools")
var requestCounter, _ = meter.Int64Counter(
	"greatschools.requests",
	metric.WithDescription("requests made to the greatschools api by operation and outcome"),
)

// Client is safe for concurrent use, it holds no state besides its
// configuration.
type Client struct {
	endpoint  transport.Endpoint
	hostname  string
	key       string
	timeout   time.Duration
	headers   http.Header
	transport transport.Transport
	logger    *slog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	hostname := cfg.Hostname
	if hostname == "" {
		hostname = DefaultHostname
	}
	endpoint, err := transport.ParseEndpoint(hostname)
	if err != nil {
		return nil, &ValidationError{Field: "hostname", Reason: err.Error()}
	}

	timeoutSeconds := cfg.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = DefaultTimeoutSeconds
	}
	if timeoutSeconds < 0 {
		return nil, &ValidationError{Field: "timeout", Reason: "must be positive"}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	headers := http.Header{}
	headers.Set("User-Agent", userAgent)
	for key, value := range cfg.Headers {
		headers.Set(key, value)
	}

	t := cfg.Transport
	if t == nil {
		t = transport.New(cfg.UseConcurrentTransport)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint:  endpoint,
		hostname:  hostname,
		key:       cfg.Key,
		timeout:   time.Duration(timeoutSeconds) * time.Second,
		headers:   headers,
		transport: t,
		logger:    logger,
	}, nil
}

func (c *Client) Key() string {
	return c.key
}

func (c *Client) Hostname() string {
	return c.hostname
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

// Site is the display form of the configured host.
func (c *Client) Site() string {
	return c.endpoint.Site()
}

func (c *Client) Transport() string {
	return c.transport.Name()
}

// Search finds schools in a state matching a query.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]SearchResult, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()

	path, err := buildSearchPath(params, c.key)
	if err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}
	root, err := c.call(ctx, "search", path, searchRepeated)
	if err != nil {
		span.SetStatus(codes.Error, "failed to call")
		return nil, err
	}
	results, err := mapSearchResults(root)
	if err != nil {
		span.SetStatus(codes.Error, "failed to map results")
		return nil, err
	}
	span.SetAttributes(attribute.Int("greatschools.results", len(results)))
	return results, nil
}

// Profile fetches the profile of a single school, the result always holds
// exactly one profile when err is nil.
func (c *Client) Profile(ctx context.Context, state, gsID string, params Params) ([]SchoolProfile, error) {
	ctx, span := tracer.Start(ctx, "client:Profile")
	defer span.End()

	path, err := buildSchoolPath("/schools", state, gsID, params, c.key)
	if err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}
	root, err := c.call(ctx, "profile", path, profileRepeated)
	if err != nil {
		span.SetStatus(codes.Error, "failed to call")
		return nil, err
	}
	profiles, err := mapSchoolProfiles(root)
	if err != nil {
		span.SetStatus(codes.Error, "failed to map results")
		return nil, err
	}
	if len(profiles) > 1 {
		profiles = profiles[:1]
	}
	return profiles, nil
}

// Tests fetches the test scores of a single school.
func (c *Client) Tests(ctx context.Context, state, gsID string, params Params) ([]TestScoreRecord, error) {
	ctx, span := tracer.Start(ctx, "client:Tests")
	defer span.End()

	path, err := buildSchoolPath("/school/tests", state, gsID, params, c.key)
	if err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}
	root, err := c.call(ctx, "tests", path, testsRepeated)
	if err != nil {
		span.SetStatus(codes.Error, "failed to call")
		return nil, err
	}
	records, err := mapTestScores(root)
	if err != nil {
		span.SetStatus(codes.Error, "failed to map results")
		return nil, err
	}
	span.SetAttributes(attribute.Int("greatschools.results", len(records)))
	return records, nil
}

func (c *Client) call(ctx context.Context, operation, path string, repeated []string) (*structured.Node, error) {
	debug := c.logger.Enabled(ctx, slog.LevelDebug)
	if debug {
		c.logger.DebugContext(
			ctx, fmt.Sprintf("calling %s%s", c.endpoint.Site(), transport.RedactKey(path)),
			"operation", operation,
			"headers", c.headers.Clone(),
			"transport", c.transport.Name(),
		)
	}

	res, err := c.transport.Perform(ctx, transport.Request{
		Endpoint: c.endpoint,
		Path:     path,
		Header:   c.headers.Clone(),
		Timeout:  c.timeout,
	})
	if err != nil {
		c.count(ctx, operation, "network_error")
		return nil, err
	}

	if debug {
		c.logger.DebugContext(
			ctx, "received response",
			"operation", operation,
			"status", res.StatusCode,
			"body", string(res.Body),
		)
	}

	root, err := interpret(res, path, repeated...)
	if err != nil {
		outcome := "parse_error"
		if res.StatusCode != http.StatusOK {
			outcome = "bad_response"
		}
		c.count(ctx, operation, outcome)
		return nil, err
	}
	c.count(ctx, operation, "ok")
	return root, nil
}

func (c *Client) count(ctx context.Context, operation, outcome string) {
	requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
