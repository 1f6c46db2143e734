package telemetry

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestWithoutQuery(t *testing.T) {
	err := withoutQuery(&url.Error{
		Op:  "Get",
		URL: "http://127.0.0.1:1/search/schools?key=SECRET-KEY&q=a",
		Err: http.ErrServerClosed,
	})
	require.Equal(t, `Get "http://127.0.0.1:1/search/schools": http: Server closed`, err.Error())
	require.ErrorIs(t, err, http.ErrServerClosed)

	require.Equal(t, http.ErrServerClosed, withoutQuery(http.ErrServerClosed))
}

func TestInstrumentRestyFailureLog(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	client := resty.New()
	InstrumentResty(client, "telemetry-test")
	_, err := client.R().Get(addr + "/search/schools?key=SECRET-KEY&q=a")
	require.Error(t, err)

	require.Contains(t, logs.String(), "request failed")
	require.NotContains(t, logs.String(), "SECRET-KEY")
}
