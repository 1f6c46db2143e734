package transport

import (
	"context"
	"greatschools/lib/telemetry"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const pooledName = "resty"

// Pooled dispatches requests through a single resty client, connections are
// pooled and reused across concurrent calls.
type Pooled struct {
	http *resty.Client
}

func NewPooled() *Pooled {
	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(keepRedirect))
	telemetry.InstrumentResty(client, "greatschools/transport/pooled")
	return &Pooled{http: client}
}

func (p *Pooled) Name() string {
	return pooledName
}

func (p *Pooled) Perform(ctx context.Context, req Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "pooled:Perform")
	defer span.End()
	span.SetAttributes(attribute.String("greatschools.site", req.Endpoint.Site()))

	// the engine takes its timeout in milliseconds
	timeoutMs := req.Timeout.Milliseconds()
	if timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	res, err := p.http.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header).
		Get(req.Endpoint.URL(req.Path))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, newNetworkError(pooledName, req.Endpoint, err)
	}

	return &Response{
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
		Header:     endToEndHeader(res.Header()),
	}, nil
}
