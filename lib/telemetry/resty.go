package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type instrumentResty struct {
	tracer    trace.Tracer
	idcounter *uint64
}

// InstrumentResty attaches a span and a debug log line to every request
// made through the client.
func InstrumentResty(client *resty.Client, tracerName string) {
	var idcounter uint64
	i := instrumentResty{
		tracer:    otel.Tracer(tracerName),
		idcounter: &idcounter,
	}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id        uint64
	startTime time.Time
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), req.Method)

	id := atomic.AddUint64(i.idcounter, 1)
	ctx = context.WithValue(ctx, reqCtxKey, reqCtx{
		id:        id,
		startTime: time.Now(),
	})
	slog.DebugContext(
		ctx, "start request",
		"method", req.Method,
		"message_id", strconv.FormatUint(id, 10),
	)

	req.SetContext(ctx)
	return nil
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(
		attribute.Int("http.status_code", res.StatusCode()),
		attribute.Int("http.response_content_length", len(res.Body())),
	)

	rc, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		return nil
	}
	slog.DebugContext(
		ctx, "request finished",
		"method", res.Request.Method,
		"status", res.StatusCode(),
		"duration", time.Since(rc.startTime).String(),
		"message_id", strconv.FormatUint(rc.id, 10),
	)
	return nil
}

// withoutQuery strips the query string from the url of a transport error,
// query parameters may carry credentials.
func withoutQuery(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	target := urlErr.URL
	if u, parseErr := url.Parse(target); parseErr == nil {
		u.RawQuery = ""
		u.ForceQuery = false
		target = u.String()
	} else if idx := strings.IndexByte(target, '?'); idx >= 0 {
		target = target[:idx]
	}
	return &url.Error{Op: urlErr.Op, URL: target, Err: urlErr.Err}
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	err = withoutQuery(err)
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", req.Method))
	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")

	args := []any{"method", req.Method, "err", err}
	rc, ok := ctx.Value(reqCtxKey).(reqCtx)
	if ok {
		args = append(
			args,
			"duration", time.Since(rc.startTime).String(),
			"message_id", strconv.FormatUint(rc.id, 10),
		)
	}
	slog.DebugContext(ctx, "request failed", args...)
}
