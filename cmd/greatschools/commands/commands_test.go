package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const searchXml = `<schools>
	<school><gsId>1</gsId><name>Alameda High School</name><type>public</type><city>Alameda</city><state>CA</state></school>
</schools>`

const testsXml = `<testResults>
	<schoolName>Alameda High School</schoolName>
	<test>
		<name>California Standards Tests</name>
		<abbreviation>CST</abbreviation>
		<testResult><gradeName>Grade 9</gradeName><score>61</score><subjectName>Math</subjectName><year>2011</year></testResult>
	</test>
</testResults>`

func run(t testing.TB, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "cli-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/search/schools":
			w.Write([]byte(searchXml))
		case "/school/tests/CA/1":
			w.Write([]byte(testsXml))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	config := filepath.Join(dir, "greatschools.json5")
	err := os.WriteFile(config, []byte(`{hostname: "`+server.URL+`", key: "cli-key", timeout: 5}`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", config, "search", "Alameda", "--state", "CA")
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, out, "Alameda High School")

	out, err = run(t, "--config", config, "--concurrent", "tests", "CA", "1")
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, out, "CST")
	require.Contains(t, out, "Grade 9")

	_, err = run(t, "--config", config, "profile", "CA", "2")
	require.ErrorContains(t, err, "404")

	_, err = run(t, "--config", config, "--key", "wrong", "search", "Alameda", "--state", "CA")
	require.ErrorContains(t, err, "403")
}

func TestTelemetryShutdownAfterFailure(t *testing.T) {
	previous := shutdownTelemetry
	t.Cleanup(func() { shutdownTelemetry = previous })
	shutdowns := 0
	shutdownTelemetry = func() { shutdowns++ }

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--timeout", "0", "search", "Alameda", "--state", "CA"})
	err := execute(context.Background())
	require.ErrorContains(t, err, "--timeout must be positive")
	require.Equal(t, 1, shutdowns)
}
