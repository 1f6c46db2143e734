package structured

import (
	"mime"
	"strings"
)

type Format string

const (
	XML  Format = "xml"
	JSON Format = "json"
)

// FormatFromContentType picks the payload format from a Content-Type header.
// XML is the service's native format, so anything not recognizably JSON is XML.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(mediaType)
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "/json5") {
		return JSON
	}
	return XML
}

func Decode(format Format, body []byte) (*Node, error) {
	if format == JSON {
		return DecodeJSON(body)
	}
	return DecodeXML(body)
}
