package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	testCases := []struct {
		hostname string
		expected Endpoint
		site     string
		address  string
	}{
		{
			hostname: "api.greatschools.org",
			expected: Endpoint{Scheme: "http", Host: "api.greatschools.org", Port: 80},
			site:     "http://api.greatschools.org",
			address:  "api.greatschools.org:80",
		},
		{
			hostname: "https://x.org:8443",
			expected: Endpoint{Scheme: "https", Host: "x.org", Port: 8443},
			site:     "https://x.org:8443",
			address:  "x.org:8443",
		},
		{
			hostname: "https://x.org",
			expected: Endpoint{Scheme: "https", Host: "x.org", Port: 443},
			site:     "https://x.org",
			address:  "x.org:443",
		},
		{
			hostname: "http://x.org:443",
			expected: Endpoint{Scheme: "http", Host: "x.org", Port: 443},
			site:     "http://x.org:443",
			address:  "x.org:443",
		},
		{
			hostname: "localhost:8080/api/v1/",
			expected: Endpoint{Scheme: "http", Host: "localhost", Port: 8080, BasePath: "/api/v1"},
			site:     "http://localhost:8080",
			address:  "localhost:8080",
		},
	}

	for _, test := range testCases {
		endpoint, err := ParseEndpoint(test.hostname)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expected, endpoint, test.hostname)
		require.Equal(t, test.site, endpoint.Site(), test.hostname)
		require.Equal(t, test.address, endpoint.Address(), test.hostname)
	}
}

func TestParseEndpointInvalid(t *testing.T) {
	for _, hostname := range []string{
		"",
		"ftp://x.org",
		"x.org:http",
		"x.org:0",
		"x.org:70000",
		"https://",
	} {
		_, err := ParseEndpoint(hostname)
		require.Error(t, err, hostname)
	}
}

func TestEndpointURL(t *testing.T) {
	endpoint, err := ParseEndpoint("api.greatschools.org")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t,
		"http://api.greatschools.org:80/search/schools?key=a&q=b",
		endpoint.URL("/search/schools?key=a&q=b"),
	)

	endpoint, err = ParseEndpoint("https://x.org:8443/base")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://x.org:8443/base/schools/CA/1", endpoint.URL("schools/CA/1"))
}
