// Package domkit defines the single DOM-mutation interface the rest of
// the framework programs against, plus the process-wide slot that
// selects a concrete implementation.
package domkit

import "time"

// Node is an opaque handle into an adapter's own tree. The reactivity,
// builder and ssr packages never assert its concrete type; only an
// Adapter implementation knows what is underneath.
type Node interface{}

// TimerHandle identifies a pending setTimeout registration so it can be
// cancelled with ClearTimeout.
type TimerHandle interface{}

// Event is an opaque handle an Adapter hands back to event listeners.
// Handlers recover typed details (target, key, value...) via the
// Adapter's own accessors rather than a shared Event interface, since
// the real DOM and the mock tree expose different event shapes.
type Event interface{}

// EventAccessor is the minimal surface both concrete adapters' event
// wrappers implement, letting builder-level code call PreventDefault
// and StopPropagation without knowing which adapter produced the event.
type EventAccessor interface {
	Target() Node
	Type() string
	PreventDefault()
	StopPropagation()
}

// Adapter is the uniform mutation surface a real browser DOM or an
// in-memory mock tree must both satisfy. Every builder,
// component and SSR-diff operation goes through this interface instead
// of touching a concrete DOM library directly.
type Adapter interface {
	CreateElement(tag string) Node
	CreateTextNode(text string) Node
	CreateComment(text string) Node
	CreateDocumentFragment() Node

	SetAttribute(n Node, name, value string)
	RemoveAttribute(n Node, name string)
	GetAttribute(n Node, name string) string

	AddClass(n Node, class string)
	RemoveClass(n Node, class string)
	ToggleClass(n Node, class string) bool

	SetStyle(n Node, prop, value string)
	GetStyle(n Node, prop string) string

	SetProperty(n Node, name string, value any)
	GetProperty(n Node, name string) any

	SetTextContent(n Node, text string)
	GetTextContent(n Node) string

	AppendChild(parent, child Node)
	InsertBefore(parent, child, reference Node)
	RemoveNode(n Node)
	GetNextSibling(n Node) Node
	GetParentNode(n Node) Node

	AddEventListener(n Node, eventType string, handler func(Event)) (unsubscribe func())
	RemoveEventListener(n Node, eventType string, handler func(Event))
	DispatchEvent(n Node, eventType string, detail any)

	QueueMicrotask(fn func())
	SetTimeout(fn func(), d time.Duration) TimerHandle
	ClearTimeout(h TimerHandle)

	QuerySelector(root Node, selector string) Node
	GetBody() Node

	IsNode(n Node) bool
	IsElement(n Node) bool

	// GetTagName returns the lower-cased tag name, or "" for non-element
	// nodes (text, comment, fragment).
	GetTagName(n Node) string
	// GetInputType returns the "type" attribute of an <input>, defaulting
	// to "text" the way the HTML spec does.
	GetInputType(n Node) string
}
