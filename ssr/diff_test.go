package ssr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
)

func TestDiffNodesNoDifference(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sDiv := server.CreateElement("div")
	server.AppendChild(sDiv, server.CreateTextNode("hello"))

	cDiv := client.CreateElement("div")
	client.AppendChild(cDiv, client.CreateTextNode("hello"))

	mismatches := DiffNodes(server, sDiv, client, cDiv)
	require.Empty(t, mismatches)
}

func TestDiffNodesTextMismatch(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sText := server.CreateTextNode("2024-01-15T12:00:00Z")
	cText := client.CreateTextNode("2024-01-15T12:00:01Z")

	mismatches := DiffNodes(server, sText, client, cText)
	require.Len(t, mismatches, 1)
	require.Equal(t, MismatchText, mismatches[0].Type)
	require.Contains(t, mismatches[0].Suggestion, "timestamp")
}

func TestDiffNodesTagMismatch(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sDiv := server.CreateElement("div")
	cSpan := client.CreateElement("span")

	mismatches := DiffNodes(server, sDiv, client, cSpan)
	require.Len(t, mismatches, 1)
	require.Equal(t, MismatchTag, mismatches[0].Type)
	require.Equal(t, "div", mismatches[0].Expected)
	require.Equal(t, "span", mismatches[0].Actual)
}

func TestDiffNodesAttributeMismatch(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sDiv := server.CreateElement("div")
	server.SetAttribute(sDiv, "data-id", "1")
	cDiv := client.CreateElement("div")
	client.SetAttribute(cDiv, "data-id", "2")

	mismatches := DiffNodes(server, sDiv, client, cDiv)
	require.Len(t, mismatches, 1)
	require.Equal(t, MismatchAttribute, mismatches[0].Type)
	require.Equal(t, "div[data-id]", mismatches[0].Path)
}

func TestDiffNodesExtraChild(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sDiv := server.CreateElement("div")
	server.AppendChild(sDiv, server.CreateElement("span"))

	cDiv := client.CreateElement("div")
	client.AppendChild(cDiv, client.CreateElement("span"))
	client.AppendChild(cDiv, client.CreateElement("span"))

	mismatches := DiffNodes(server, sDiv, client, cDiv)
	require.Len(t, mismatches, 1)
	require.Equal(t, MismatchExtra, mismatches[0].Type)
	require.Contains(t, mismatches[0].Suggestion, "1")
}

func TestDiffNodesMissingChild(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sDiv := server.CreateElement("div")
	server.AppendChild(sDiv, server.CreateElement("span"))
	server.AppendChild(sDiv, server.CreateElement("p"))

	cDiv := client.CreateElement("div")
	client.AppendChild(cDiv, client.CreateElement("span"))

	mismatches := DiffNodes(server, sDiv, client, cDiv)
	require.Len(t, mismatches, 1)
	require.Equal(t, MismatchMissing, mismatches[0].Type)
}

func TestDiffNodesIgnoresCommentChildren(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	sDiv := server.CreateElement("div")
	server.AppendChild(sDiv, server.CreateComment("when-start"))
	server.AppendChild(sDiv, server.CreateTextNode("x"))
	server.AppendChild(sDiv, server.CreateComment("when-end"))

	cDiv := client.CreateElement("div")
	client.AppendChild(cDiv, client.CreateTextNode("x"))

	mismatches := DiffNodes(server, sDiv, client, cDiv)
	require.Empty(t, mismatches)
}

func TestDiffNodesLongTextTruncated(t *testing.T) {
	server := mockdom.New()
	client := mockdom.New()

	long := ""
	for i := 0; i < 100; i++ {
		long += "a"
	}
	sText := server.CreateTextNode(long)
	cText := client.CreateTextNode(long + "b")

	mismatches := DiffNodes(server, sText, client, cText)
	require.Len(t, mismatches, 1)
	require.LessOrEqual(t, len(mismatches[0].Expected), 83)
	require.Contains(t, mismatches[0].Expected, "...")
}

func TestMarshalReportProducesJSONArray(t *testing.T) {
	out, err := MarshalReport([]Mismatch{{Type: MismatchTag, Path: "div", Expected: "div", Actual: "span"}})
	require.NoError(t, err)
	require.Contains(t, string(out), `"type":"tag"`)
}

func TestMarshalReportEmptyListIsEmptyArray(t *testing.T) {
	out, err := MarshalReport(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(out))
}
