package builder

import (
	"sort"
	"strings"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// Node is a built piece of DOM plus the effects and listeners that keep
// it reactive. Disposing it tears those down in reverse registration
// order; it does not itself remove the underlying DOM node (callers
// that want that call domkit.Adapter.RemoveNode separately, the way
// Unmount does).
type Node struct {
	Handle   domkit.Node
	disposes []func()
}

// Dispose runs every registered effect/listener teardown for this node
// and its attribute bindings, in reverse order. Idempotent.
func (n *Node) Dispose() {
	for i := len(n.disposes) - 1; i >= 0; i-- {
		n.disposes[i]()
	}
	n.disposes = nil
}

func (n *Node) own(d func()) {
	n.disposes = append(n.disposes, d)
}

// OnDispose registers an additional teardown function, run in the same
// reverse order as every other effect/listener this node owns. Used by
// the component package to splice unmount callbacks in ahead of the
// node's own attribute/child effect disposal.
func (n *Node) OnDispose(d func()) {
	n.own(d)
}

// Attrs maps attribute/event names to either a literal value, a
// func() string / func() bool producing a reactively-bound value, or a
// func(domkit.Event) event handler for keys beginning with "on".
type Attrs map[string]any

// El builds an element from a CSS-selector shorthand:
// `tag.class1.class2#id[name=value]`. attrs may be nil. Functional attrs
// establish an effect that re-applies the attribute on change.
func El(selector string, attrs Attrs, children ...*Node) *Node {
	a := domkit.Get()
	parsed := globalSelectorCache.get(selector)

	handle := a.CreateElement(parsed.Tag)
	n := &Node{Handle: handle}

	if parsed.ID != "" {
		a.SetAttribute(handle, "id", parsed.ID)
	}
	for _, class := range parsed.Classes {
		a.AddClass(handle, class)
	}
	for name, value := range parsed.Attrs {
		applyStaticAttr(a, handle, name, value)
	}

	// Deterministic application order independent of Go's randomized map
	// iteration, so event listener attach order is stable across runs.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bindAttr(n, a, handle, name, attrs[name])
	}

	for _, child := range children {
		if child == nil {
			continue
		}
		a.AppendChild(handle, child.Handle)
		n.own(child.Dispose)
	}

	return n
}

func applyStaticAttr(a domkit.Adapter, handle domkit.Node, name, value string) {
	if domkit.IsURLAttribute(name) {
		value = domkit.SanitizeURL(value)
	}
	a.SetAttribute(handle, name, value)
}

func bindAttr(n *Node, a domkit.Adapter, handle domkit.Node, name string, value any) {
	if isEventAttr(name) {
		handler, ok := value.(func(domkit.Event))
		if !ok {
			return
		}
		unsubscribe := a.AddEventListener(handle, eventNameFromAttr(name), handler)
		n.own(unsubscribe)
		return
	}

	switch v := value.(type) {
	case func() string:
		dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
			applyStaticAttr(a, handle, name, v())
			return nil
		})
		n.own(func() { dispose() })
	case func() bool:
		dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
			if v() {
				a.SetAttribute(handle, name, "")
			} else {
				a.RemoveAttribute(handle, name)
			}
			return nil
		})
		n.own(func() { dispose() })
	case string:
		applyStaticAttr(a, handle, name, v)
	case bool:
		if v {
			a.SetAttribute(handle, name, "")
		}
	default:
		// Unrecognized attr shapes are ignored rather than panicking; a
		// malformed generated-code call site is a compiler bug to fix,
		// not a runtime crash to surface to end users.
	}
}

func isEventAttr(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && name[2] >= 'A' && name[2] <= 'Z'
}

func eventNameFromAttr(name string) string {
	return strings.ToLower(name[2:])
}

// Text builds a reactive or static text node.
func Text(value any) *Node {
	a := domkit.Get()
	switch v := value.(type) {
	case func() string:
		handle := a.CreateTextNode("")
		n := &Node{Handle: handle}
		dispose := reactivity.CreateEffect(func() reactivity.CleanupFunc {
			a.SetTextContent(handle, v())
			return nil
		})
		n.own(func() { dispose() })
		return n
	case string:
		return &Node{Handle: a.CreateTextNode(v)}
	default:
		return &Node{Handle: a.CreateTextNode("")}
	}
}
