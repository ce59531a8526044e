package ssr

import (
	"errors"
	"sort"
	"strings"

	g "maragu.dev/gomponents"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
)

// ErrNotWalkable is returned by RenderToString when the given adapter
// does not implement domkit.TreeWalker. Only a tree-introspectable
// adapter (domkit/mockdom.Adapter) can be serialized this way; there is
// nothing to walk back out of a real browser adapter.
var ErrNotWalkable = errors.New("ssr: adapter does not implement domkit.TreeWalker")

// RenderToString serializes node's subtree, as seen through a, to an
// HTML string. It builds a maragu.dev/gomponents tree mirroring the
// adapter's own tree and renders that, rather than hand-writing an HTML
// encoder, so element/attribute escaping and void-element handling stay
// consistent with the rest of the teacher stack's HTML output.
func RenderToString(a domkit.Adapter, n domkit.Node) (string, error) {
	tw, ok := a.(domkit.TreeWalker)
	if !ok {
		return "", ErrNotWalkable
	}
	var b strings.Builder
	if err := toGomponents(tw, n).Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func toGomponents(tw domkit.TreeWalker, n domkit.Node) g.Node {
	switch tw.Kind(n) {
	case domkit.KindText:
		return g.Text(tw.Text(n))
	case domkit.KindComment:
		return g.Raw("<!--" + tw.Text(n) + "-->")
	case domkit.KindFragment:
		children := tw.Children(n)
		nodes := make([]g.Node, len(children))
		for i, c := range children {
			nodes[i] = toGomponents(tw, c)
		}
		return g.Group(nodes)
	default:
		return elementToGomponents(tw, n)
	}
}

func elementToGomponents(tw domkit.TreeWalker, n domkit.Node) g.Node {
	var parts []g.Node

	attrs := tw.Attrs(n)
	for _, name := range sortedKeys(attrs) {
		parts = append(parts, g.Attr(name, attrs[name]))
	}
	if classes := tw.Classes(n); len(classes) > 0 {
		parts = append(parts, g.Attr("class", strings.Join(classes, " ")))
	}
	if styles := tw.Styles(n); len(styles) > 0 {
		parts = append(parts, g.Attr("style", styleString(styles)))
	}

	for _, c := range tw.Children(n) {
		parts = append(parts, toGomponents(tw, c))
	}

	return g.El(tw.Tag(n), parts...)
}

func styleString(styles map[string]string) string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	decls := make([]string, len(names))
	for i, name := range names {
		decls[i] = name + ": " + styles[name] + ";"
	}
	return strings.Join(decls, " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
