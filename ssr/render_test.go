package ssr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
)

func TestRenderToStringSimpleElement(t *testing.T) {
	a := mockdom.New()
	div := a.CreateElement("div")
	a.AddClass(div, "counter")
	a.SetAttribute(div, "data-testid", "root")
	text := a.CreateTextNode("hello")
	a.AppendChild(div, text)

	html, err := RenderToString(a, div)
	require.NoError(t, err)
	require.Contains(t, html, "<div")
	require.Contains(t, html, `class="counter"`)
	require.Contains(t, html, `data-testid="root"`)
	require.Contains(t, html, ">hello</div>")
}

func TestRenderToStringEscapesText(t *testing.T) {
	a := mockdom.New()
	span := a.CreateElement("span")
	a.AppendChild(span, a.CreateTextNode("<script>alert(1)</script>"))

	html, err := RenderToString(a, span)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, "&lt;script&gt;")
}

func TestRenderToStringIncludesComments(t *testing.T) {
	a := mockdom.New()
	frag := a.CreateDocumentFragment()
	a.AppendChild(frag, a.CreateComment("client-only"))

	html, err := RenderToString(a, frag)
	require.NoError(t, err)
	require.Contains(t, html, "<!--client-only-->")
}

func TestRenderToStringIncludesInlineStyle(t *testing.T) {
	a := mockdom.New()
	div := a.CreateElement("div")
	a.SetStyle(div, "display", "flex")

	html, err := RenderToString(a, div)
	require.NoError(t, err)
	require.Contains(t, html, `style="display: flex;"`)
}

func TestRenderToStringRejectsNonWalkableAdapter(t *testing.T) {
	_, err := RenderToString(nonWalkableAdapter{}, nil)
	require.ErrorIs(t, err, ErrNotWalkable)
}

type nonWalkableAdapter struct{ domkit.Adapter }
