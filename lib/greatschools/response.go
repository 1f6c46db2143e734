package greatschools

import (
	"greatschools/lib/greatschools/structured"
	"greatschools/lib/greatschools/transport"
	"net/http"
)

// interpret checks the status of a response and decodes its body. `repeated`
// names the elements that are normalized into sequences.
func interpret(res *transport.Response, path string, repeated ...string) (*structured.Node, error) {
	if res.StatusCode != http.StatusOK {
		return nil, &BadResponseError{
			StatusCode: res.StatusCode,
			Body:       res.Body,
			Header:     res.Header,
			Path:       path,
		}
	}

	format := structured.FormatFromContentType(res.Header.Get("Content-Type"))
	root, err := structured.Decode(format, res.Body)
	if err != nil {
		return nil, err
	}
	structured.Normalize(root, repeated...)
	return root, nil
}
