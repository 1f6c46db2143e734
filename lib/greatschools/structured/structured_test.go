package structured

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeXML(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<schools>
	<school>
		<gsId>1</gsId>
		<name>Alameda High School</name>
		<type>public</type>
	</school>
	<school>
		<gsId>2</gsId>
		<name><![CDATA[Encinal Junior & Senior High]]></name>
	</school>
</schools>`)

	root, err := DecodeXML(body)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"schools"}, root.Keys())

	schools := root.List("schools")
	require.Len(t, schools, 1)
	list := schools[0].List("school")
	require.Len(t, list, 2)
	require.Equal(t, "1", list[0].Field("gsId").Text())
	require.Equal(t, "Alameda High School", list[0].Field("name").Text())
	require.Equal(t, "public", list[0].Field("type").Text())
	require.Equal(t, "Encinal Junior & Senior High", list[1].Field("name").Text())
	require.False(t, list[1].Has("type"))
}

func TestDecodeXMLAttributes(t *testing.T) {
	root, err := DecodeXML([]byte(`<test id="7" xmlns="urn:x">STAR<name>CST</name></test>`))
	if err != nil {
		t.Fatal(err)
	}
	test := root.Field("test")
	require.Equal(t, Mapping, test.Kind())
	require.Equal(t, []string{"@id", "name", "#text"}, test.Keys())
	require.Equal(t, "7", test.Field("@id").Text())
	require.Equal(t, "STAR", test.Field("#text").Text())
}

func TestDecodeXMLMalformed(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "mismatched tags", body: "<schools>\n<school></schools>"},
		{name: "plain text", body: "Service Unavailable"},
		{name: "empty", body: ""},
		{name: "json", body: `{"schools": []}`},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeXML([]byte(test.body))
			require.ErrorIs(t, err, ErrParse)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, "xml", parseErr.Format)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	root, err := DecodeJSON([]byte(`{
		"schools": {"school": [{"gsId": 1, "name": "A", "charter": true, "fax": null}]},
	}`))
	if err != nil {
		t.Fatal(err)
	}
	school := root.Field("schools").List("school")
	require.Len(t, school, 1)
	require.Equal(t, "1", school[0].Field("gsId").Text())
	require.Equal(t, "true", school[0].Field("charter").Text())
	require.Equal(t, "", school[0].Field("fax").Text())
	require.Equal(t, []string{"charter", "fax", "gsId", "name"}, school[0].Keys())

	_, err = DecodeJSON([]byte(`[1, 2]`))
	require.ErrorIs(t, err, ErrParse)
	_, err = DecodeJSON([]byte(`{"a": `))
	require.ErrorIs(t, err, ErrParse)
}

func TestNormalize(t *testing.T) {
	single, err := DecodeXML([]byte(`<schools><school><gsId>1</gsId></school></schools>`))
	if err != nil {
		t.Fatal(err)
	}
	double, err := DecodeXML([]byte(`<schools><school><gsId>1</gsId></school><school><gsId>2</gsId></school></schools>`))
	if err != nil {
		t.Fatal(err)
	}
	empty, err := DecodeXML([]byte(`<schools></schools>`))
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, Mapping, single.Field("schools").Field("school").Kind())

	Normalize(single, "school")
	Normalize(double, "school")
	Normalize(empty, "school")

	require.Equal(t, Sequence, single.Field("schools").Field("school").Kind())
	require.Equal(t, Sequence, double.Field("schools").Field("school").Kind())
	require.Len(t, single.Field("schools").Field("school").Items(), 1)
	require.Len(t, double.Field("schools").Field("school").Items(), 2)
	require.Len(t, empty.Field("schools").List("school"), 0)
}

func TestNormalizeNested(t *testing.T) {
	root, err := DecodeXML([]byte(`<testResults>
		<test><name>A</name><testResult><score>1</score></testResult></test>
		<test><name>B</name><testResult><score>2</score></testResult><testResult><score>3</score></testResult></test>
	</testResults>`))
	if err != nil {
		t.Fatal(err)
	}
	Normalize(root, "test", "testResult")

	tests := root.Field("testResults").Field("test")
	require.Equal(t, Sequence, tests.Kind())
	for _, test := range tests.Items() {
		require.Equal(t, Sequence, test.Field("testResult").Kind())
	}
	require.Len(t, tests.Items()[0].List("testResult"), 1)
	require.Len(t, tests.Items()[1].List("testResult"), 2)
}

func TestNilNode(t *testing.T) {
	var n *Node
	require.Equal(t, "", n.Text())
	require.Nil(t, n.Items())
	require.Nil(t, n.Field("x"))
	require.False(t, n.Has("x"))
	require.Len(t, n.List("x"), 0)
}

func TestFormatFromContentType(t *testing.T) {
	testCases := []struct {
		contentType string
		expected    Format
	}{
		{contentType: "", expected: XML},
		{contentType: "text/xml; charset=UTF-8", expected: XML},
		{contentType: "application/xml", expected: XML},
		{contentType: "application/json", expected: JSON},
		{contentType: "application/json; charset=utf-8", expected: JSON},
		{contentType: "application/vnd.api+json", expected: JSON},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, FormatFromContentType(test.contentType), test.contentType)
	}
}
