package transport

import (
	"context"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const standardName = "net/http"

// Standard opens a fresh connection for every request and closes it afterwards.
type Standard struct {
	roundTripper http.RoundTripper
}

func NewStandard() *Standard {
	return &Standard{
		roundTripper: otelhttp.NewTransport(&http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		}),
	}
}

func (s *Standard) Name() string {
	return standardName
}

func (s *Standard) Perform(ctx context.Context, req Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "standard:Perform")
	defer span.End()
	span.SetAttributes(attribute.String("greatschools.site", req.Endpoint.Site()))

	// read timeout covers the whole exchange, including reading the body
	client := &http.Client{
		Transport:     s.roundTripper,
		Timeout:       req.Timeout,
		CheckRedirect: keepRedirect,
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Endpoint.URL(req.Path), nil)
	if err != nil {
		span.SetStatus(codes.Error, "failed to create request")
		return nil, newNetworkError(standardName, req.Endpoint, err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	res, err := client.Do(httpReq)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, newNetworkError(standardName, req.Endpoint, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		span.SetStatus(codes.Error, "failed to read body")
		return nil, newNetworkError(standardName, req.Endpoint, err)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Body:       body,
		Header:     endToEndHeader(res.Header),
	}, nil
}
