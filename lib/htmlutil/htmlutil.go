package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// elements that visually separate their contents from the surrounding text
var breakingElements = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		buffer.WriteString(node.Data)
		return
	case html.ElementNode:
		if node.Data == "script" || node.Data == "style" {
			return
		}
		if breakingElements[node.Data] {
			buffer.WriteByte(' ')
		}
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var whitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// PlainText renders an HTML fragment as a single line of text, entities
// are decoded and runs of whitespace are collapsed. Text without markup
// passes through unchanged apart from whitespace.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(whitespace.ReplaceAllString(fragment, " "))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(whitespace.ReplaceAllString(fragment, " "))
	}

	var text strings.Builder
	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		for _, n := range body.Nodes {
			text.WriteString(GetText(n))
		}
	})

	out := removeNonPrintable(text.String())
	out = whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
