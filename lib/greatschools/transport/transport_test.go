package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newRequest(t testing.TB, url, path string, timeout time.Duration) Request {
	endpoint, err := ParseEndpoint(url)
	if err != nil {
		t.Fatal(err)
	}
	return Request{
		Endpoint: endpoint,
		Path:     path,
		Header:   http.Header{"User-Agent": {"transport-test"}, "X-Extra": {"1"}},
		Timeout:  timeout,
	}
}

func TestVariantsAreIdentical(t *testing.T) {
	body := []byte(`<?xml version="1.0"?><schools><school><gsId>1</gsId></school></schools>`)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a fixed Date keeps both responses byte for byte equal
		w.Header().Set("Date", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.Header().Set("Content-Type", "text/xml;charset=UTF-8")
		w.Header().Set("X-Echo-Agent", r.Header.Get("User-Agent"))
		w.Header().Set("X-Echo-Extra", r.Header.Get("X-Extra"))
		w.Header().Set("X-Echo-Query", r.URL.RawQuery)
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
		w.Write(body)
	}))
	defer server.Close()

	for _, path := range []string{"/search/schools?key=abc&q=a+b", "/missing"} {
		req := newRequest(t, server.URL, path, 5*time.Second)

		standard, err := New(false).Perform(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		pooled, err := New(true).Perform(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(standard, pooled); diff != "" {
			t.Fatalf("responses differ for %s (-standard +pooled):\n%s", path, diff)
		}
		require.Equal(t, body, standard.Body)
		require.Equal(t, "transport-test", standard.Header.Get("X-Echo-Agent"))
		require.Equal(t, "1", standard.Header.Get("X-Echo-Extra"))
		require.Empty(t, standard.Header.Get("Connection"))
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	for _, variant := range []Transport{NewStandard(), NewPooled()} {
		req := newRequest(t, server.URL, "/slow", 50*time.Millisecond)

		res, err := variant.Perform(context.Background(), req)
		require.Nil(t, res)
		require.ErrorIs(t, err, ErrNetwork, variant.Name())

		var networkErr *NetworkError
		require.ErrorAs(t, err, &networkErr)
		require.True(t, networkErr.Timeout, variant.Name())
		require.Equal(t, variant.Name(), networkErr.Transport)
		require.Contains(t, err.Error(), "timed out")
	}
}

func TestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	for _, variant := range []Transport{NewStandard(), NewPooled()} {
		_, err := variant.Perform(context.Background(), newRequest(t, url, "/", time.Second))

		var networkErr *NetworkError
		require.ErrorAs(t, err, &networkErr, variant.Name())
		require.False(t, networkErr.Timeout, variant.Name())
		require.NotNil(t, networkErr.Unwrap())
	}
}

func TestRedirectsAreNotFollowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			w.Write([]byte("<schools></schools>"))
			return
		}
		http.Redirect(w, r, "/moved", http.StatusMovedPermanently)
	}))
	defer server.Close()

	for _, variant := range []Transport{NewStandard(), NewPooled()} {
		res, err := variant.Perform(context.Background(), newRequest(t, server.URL, "/search/schools?q=a", time.Second))
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, http.StatusMovedPermanently, res.StatusCode, variant.Name())
		require.Equal(t, "/moved", res.Header.Get("Location"), variant.Name())
	}
}
