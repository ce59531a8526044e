//go:build !js && !wasm

package devtools

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
)

func TestBuildMockTreeReconstructsElementShape(t *testing.T) {
	a := mockdom.New()

	n := &domNode{
		Kind:    "element",
		Tag:     "div",
		Classes: []string{"counter"},
		Attrs:   map[string]string{"data-testid": "root"},
		Styles:  map[string]string{"display": "flex"},
		Children: []*domNode{
			{Kind: "text", Text: "hello"},
		},
	}

	node := buildMockTree(a, n)

	require.Equal(t, "div", a.Tag(node))
	require.Contains(t, a.Classes(node), "counter")
	require.Equal(t, "root", a.Attrs(node)["data-testid"])
	require.Equal(t, "flex", a.Styles(node)["display"])
	require.Len(t, a.Children(node), 1)
	require.Equal(t, "hello", a.Text(a.Children(node)[0]))
}

func TestCountNodesHandlesNilRoot(t *testing.T) {
	require.Equal(t, 0, countNodes(nil))
}
