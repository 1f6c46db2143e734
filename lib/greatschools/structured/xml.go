package structured

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"

	"github.com/antchfx/xmlquery"
)

var errNoRootElement = errors.New("no root element")

// DecodeXML parses an XML payload into a mapping holding its root element.
//
// Elements with neither attributes nor child elements become scalars of their
// trimmed text. Other elements become mappings: attributes are stored under
// "@name", child elements under their local name (repeated children are
// collected into a sequence) and non-blank text under "#text".
func DecodeXML(body []byte) (*Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		parseErr := &ParseError{Format: "xml", Err: err}
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			parseErr.Line = syntaxErr.Line
		}
		return nil, parseErr
	}

	var root *xmlquery.Node
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			root = child
			break
		}
	}
	if root == nil {
		return nil, &ParseError{Format: "xml", Err: errNoRootElement}
	}

	out := NewMapping()
	out.Set(root.Data, convertElement(root))
	return out, nil
}

func convertElement(el *xmlquery.Node) *Node {
	var children []*xmlquery.Node
	var text strings.Builder
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			children = append(children, child)
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(child.Data)
		}
	}

	var attrs []xmlquery.Attr
	for _, attr := range el.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		attrs = append(attrs, attr)
	}

	trimmed := strings.TrimSpace(text.String())
	if len(children) == 0 && len(attrs) == 0 {
		return NewScalar(trimmed)
	}

	out := NewMapping()
	for _, attr := range attrs {
		out.Add("@"+attr.Name.Local, NewScalar(attr.Value))
	}
	for _, child := range children {
		out.Add(child.Data, convertElement(child))
	}
	if trimmed != "" {
		out.Set("#text", NewScalar(trimmed))
	}
	return out
}
