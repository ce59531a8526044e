// Package mockdom is an in-memory implementation of domkit.Adapter used
// for tests, SSR rendering and hydration-mismatch diagnosis, grounded on
// the teacher's mockdom package but rebuilt against domkit.Node instead
// of a JS-value shape.
package mockdom

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
)

type kind int

const (
	kindElement kind = iota
	kindText
	kindComment
	kindFragment
)

// listenerEntry pairs a registered handler with the code pointer behind
// it, so RemoveEventListener can tell apart two distinct handlers
// registered for the same (node, eventType) — e.g. el.go's attribute
// handler and bind.go's default two-way binding both listening for
// "input" on the same element — instead of always dropping whichever
// was added first.
type listenerEntry struct {
	fn  func(domkit.Event)
	ptr uintptr
}

func handlerPtr(fn func(domkit.Event)) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// node is the concrete backing type behind every domkit.Node this
// adapter hands out.
type node struct {
	kind     kind
	tag      string
	text     string
	attrs    map[string]string
	classes  map[string]bool
	styles   map[string]string
	props    map[string]any
	parent   *node
	children []*node

	mu        sync.Mutex
	listeners map[string][]listenerEntry
}

func newNode(k kind) *node {
	return &node{
		kind:      k,
		attrs:     make(map[string]string),
		classes:   make(map[string]bool),
		styles:    make(map[string]string),
		props:     make(map[string]any),
		listeners: make(map[string][]listenerEntry),
	}
}

func asNode(n domkit.Node) *node {
	if n == nil {
		return nil
	}
	return n.(*node)
}

// MockEvent is the concrete event type dispatched by Adapter.DispatchEvent
// and delivered to listeners registered via AddEventListener.
type MockEvent struct {
	target          domkit.Node
	typ             string
	Detail          any
	defaultPrevented bool
	propagationStopped bool
}

func (e *MockEvent) Target() domkit.Node    { return e.target }
func (e *MockEvent) Type() string           { return e.typ }
func (e *MockEvent) PreventDefault()        { e.defaultPrevented = true }
func (e *MockEvent) StopPropagation()       { e.propagationStopped = true }
func (e *MockEvent) DefaultPrevented() bool { return e.defaultPrevented }

var _ domkit.EventAccessor = (*MockEvent)(nil)

// Adapter is an in-memory domkit.Adapter. The zero value is not usable;
// construct with New.
type Adapter struct {
	mu sync.Mutex

	body *node

	microtasks []func()
	timers     map[int]*timer
	timerSeq   int

	storage map[string]string
}

type timer struct {
	fn       func()
	fireAt   time.Duration
	elapsed  time.Duration
	cleared  bool
}

// New builds an empty mock document with a <body> root.
func New() *Adapter {
	body := newNode(kindElement)
	body.tag = "body"
	return &Adapter{
		body:    body,
		timers:  make(map[int]*timer),
		storage: make(map[string]string),
	}
}

var _ domkit.Adapter = (*Adapter)(nil)
var _ domkit.Storage = (*Adapter)(nil)

// GetStorageItem reads a previously stored value, mimicking
// localStorage.getItem.
func (a *Adapter) GetStorageItem(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.storage[key]
	return v, ok
}

// SetStorageItem writes a value, mimicking localStorage.setItem.
func (a *Adapter) SetStorageItem(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.storage[key] = value
}

// RemoveStorageItem deletes a value, mimicking localStorage.removeItem.
func (a *Adapter) RemoveStorageItem(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.storage, key)
}

func (a *Adapter) CreateElement(tag string) domkit.Node {
	n := newNode(kindElement)
	n.tag = strings.ToLower(tag)
	return n
}

func (a *Adapter) CreateTextNode(text string) domkit.Node {
	n := newNode(kindText)
	n.text = text
	return n
}

func (a *Adapter) CreateComment(text string) domkit.Node {
	n := newNode(kindComment)
	n.text = text
	return n
}

func (a *Adapter) CreateDocumentFragment() domkit.Node {
	return newNode(kindFragment)
}

func (a *Adapter) SetAttribute(n domkit.Node, name, value string) {
	asNode(n).attrs[name] = value
}

func (a *Adapter) RemoveAttribute(n domkit.Node, name string) {
	delete(asNode(n).attrs, name)
}

func (a *Adapter) GetAttribute(n domkit.Node, name string) string {
	return asNode(n).attrs[name]
}

func (a *Adapter) AddClass(n domkit.Node, class string) {
	asNode(n).classes[class] = true
}

func (a *Adapter) RemoveClass(n domkit.Node, class string) {
	delete(asNode(n).classes, class)
}

func (a *Adapter) ToggleClass(n domkit.Node, class string) bool {
	real := asNode(n)
	if real.classes[class] {
		delete(real.classes, class)
		return false
	}
	real.classes[class] = true
	return true
}

func (a *Adapter) SetStyle(n domkit.Node, prop, value string) {
	asNode(n).styles[prop] = value
}

func (a *Adapter) GetStyle(n domkit.Node, prop string) string {
	return asNode(n).styles[prop]
}

func (a *Adapter) SetProperty(n domkit.Node, name string, value any) {
	asNode(n).props[name] = value
}

func (a *Adapter) GetProperty(n domkit.Node, name string) any {
	return asNode(n).props[name]
}

func (a *Adapter) SetTextContent(n domkit.Node, text string) {
	real := asNode(n)
	real.children = nil
	real.text = text
}

func (a *Adapter) GetTextContent(n domkit.Node) string {
	real := asNode(n)
	if real.kind == kindText || real.kind == kindComment {
		return real.text
	}
	var b strings.Builder
	var walk func(*node)
	walk = func(x *node) {
		if x.kind == kindText {
			b.WriteString(x.text)
			return
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(real)
	return b.String()
}

func detach(n *node) {
	if n.parent == nil {
		return
	}
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// AppendChild appends child to parent. If child is already attached
// elsewhere, it is detached first. Appending a fragment moves its
// children and leaves the fragment itself empty and unattached.
func (a *Adapter) AppendChild(parent, child domkit.Node) {
	p, c := asNode(parent), asNode(child)
	if c.kind == kindFragment {
		kids := c.children
		c.children = nil
		for _, k := range kids {
			k.parent = nil
			a.AppendChild(p, k)
		}
		return
	}
	detach(c)
	c.parent = p
	p.children = append(p.children, c)
}

func (a *Adapter) InsertBefore(parent, child, reference domkit.Node) {
	p, c := asNode(parent), asNode(child)
	ref := asNode(reference)
	if ref == nil {
		a.AppendChild(parent, child)
		return
	}
	if c.kind == kindFragment {
		kids := c.children
		c.children = nil
		for _, k := range kids {
			k.parent = nil
			a.InsertBefore(p, k, ref)
		}
		return
	}
	detach(c)
	idx := -1
	for i, x := range p.children {
		if x == ref {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.children = append(p.children, c)
	} else {
		p.children = append(p.children[:idx], append([]*node{c}, p.children[idx:]...)...)
	}
	c.parent = p
}

func (a *Adapter) RemoveNode(n domkit.Node) {
	detach(asNode(n))
}

func (a *Adapter) GetNextSibling(n domkit.Node) domkit.Node {
	real := asNode(n)
	if real.parent == nil {
		return nil
	}
	for i, c := range real.parent.children {
		if c == real {
			if i+1 < len(real.parent.children) {
				return real.parent.children[i+1]
			}
			return nil
		}
	}
	return nil
}

func (a *Adapter) GetParentNode(n domkit.Node) domkit.Node {
	real := asNode(n)
	if real.parent == nil {
		return nil
	}
	return real.parent
}

func (a *Adapter) AddEventListener(n domkit.Node, eventType string, handler func(domkit.Event)) func() {
	real := asNode(n)
	real.mu.Lock()
	real.listeners[eventType] = append(real.listeners[eventType], listenerEntry{fn: handler, ptr: handlerPtr(handler)})
	real.mu.Unlock()
	return func() {
		a.RemoveEventListener(n, eventType, handler)
	}
}

func (a *Adapter) RemoveEventListener(n domkit.Node, eventType string, handler func(domkit.Event)) {
	real := asNode(n)
	real.mu.Lock()
	defer real.mu.Unlock()
	list := real.listeners[eventType]
	target := handlerPtr(handler)
	for i, entry := range list {
		if entry.ptr == target {
			real.listeners[eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// DispatchEvent fires eventType at n and bubbles up the parent chain
// until a listener calls StopPropagation, matching real DOM bubbling.
func (a *Adapter) DispatchEvent(n domkit.Node, eventType string, detail any) {
	ev := &MockEvent{target: n, typ: eventType, Detail: detail}
	cur := asNode(n)
	for cur != nil {
		cur.mu.Lock()
		entries := append([]listenerEntry{}, cur.listeners[eventType]...)
		cur.mu.Unlock()
		for _, entry := range entries {
			entry.fn(ev)
		}
		if ev.propagationStopped {
			return
		}
		cur = cur.parent
	}
}

func (a *Adapter) QueueMicrotask(fn func()) {
	a.mu.Lock()
	a.microtasks = append(a.microtasks, fn)
	a.mu.Unlock()
}

// FlushMicrotasks drains queued microtasks, including ones scheduled by
// microtasks that ran during this flush.
func (a *Adapter) FlushMicrotasks() {
	for {
		a.mu.Lock()
		if len(a.microtasks) == 0 {
			a.mu.Unlock()
			return
		}
		fn := a.microtasks[0]
		a.microtasks = a.microtasks[1:]
		a.mu.Unlock()
		fn()
	}
}

func (a *Adapter) SetTimeout(fn func(), d time.Duration) domkit.TimerHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timerSeq++
	id := a.timerSeq
	a.timers[id] = &timer{fn: fn, fireAt: d}
	return id
}

func (a *Adapter) ClearTimeout(h domkit.TimerHandle) {
	id, ok := h.(int)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.timers[id]; ok {
		t.cleared = true
	}
}

// RunAllTimers fires every pending, non-cleared timer in fire-order,
// including ones newly scheduled by a timer callback, then stops (it
// does not simulate real elapsed wall-clock time beyond that one pass
// plus whatever new timers those callbacks themselves add).
func (a *Adapter) RunAllTimers() {
	for {
		a.mu.Lock()
		ids := make([]int, 0, len(a.timers))
		for id, t := range a.timers {
			if !t.cleared {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool {
			return a.timers[ids[i]].fireAt < a.timers[ids[j]].fireAt
		})
		if len(ids) == 0 {
			a.mu.Unlock()
			return
		}
		id := ids[0]
		t := a.timers[id]
		delete(a.timers, id)
		a.mu.Unlock()
		t.fn()
	}
}

func (a *Adapter) QuerySelector(root domkit.Node, selector string) domkit.Node {
	found := querySelectorAll(asNode(root), selector, true)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// QuerySelectorAll is exposed for tests and devtools beyond the minimal
// Adapter interface (spec's querySelector is single-result; list queries
// are a supplemented convenience grounded on the teacher's
// bridge.DOMElement.QuerySelectorAll).
func (a *Adapter) QuerySelectorAll(root domkit.Node, selector string) []domkit.Node {
	return querySelectorAll(asNode(root), selector, false)
}

func (a *Adapter) GetBody() domkit.Node {
	return a.body
}

func (a *Adapter) IsNode(n domkit.Node) bool {
	_, ok := n.(*node)
	return ok
}

func (a *Adapter) IsElement(n domkit.Node) bool {
	real, ok := n.(*node)
	return ok && real.kind == kindElement
}

func (a *Adapter) GetTagName(n domkit.Node) string {
	real := asNode(n)
	if real == nil || real.kind != kindElement {
		return ""
	}
	return real.tag
}

func (a *Adapter) GetInputType(n domkit.Node) string {
	real := asNode(n)
	if real == nil || real.tag != "input" {
		return ""
	}
	if t, ok := real.attrs["type"]; ok && t != "" {
		return t
	}
	return "text"
}

// Kind reports which of the four mock node kinds n is, satisfying
// domkit.TreeWalker.
func (a *Adapter) Kind(n domkit.Node) domkit.NodeKind {
	switch asNode(n).kind {
	case kindText:
		return domkit.KindText
	case kindComment:
		return domkit.KindComment
	case kindFragment:
		return domkit.KindFragment
	default:
		return domkit.KindElement
	}
}

// Tag returns the lower-cased tag name for an element, "" otherwise.
func (a *Adapter) Tag(n domkit.Node) string {
	real := asNode(n)
	if real.kind != kindElement {
		return ""
	}
	return real.tag
}

// Text returns the raw text of a text or comment node, "" otherwise.
func (a *Adapter) Text(n domkit.Node) string {
	real := asNode(n)
	if real.kind != kindText && real.kind != kindComment {
		return ""
	}
	return real.text
}

// Classes returns an element's classes in sorted order, for deterministic
// rendering and diffing.
func (a *Adapter) Classes(n domkit.Node) []string {
	real := asNode(n)
	out := make([]string, 0, len(real.classes))
	for c := range real.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Attrs returns a copy of an element's attribute map.
func (a *Adapter) Attrs(n domkit.Node) map[string]string {
	real := asNode(n)
	out := make(map[string]string, len(real.attrs))
	for k, v := range real.attrs {
		out[k] = v
	}
	return out
}

// Styles returns a copy of an element's inline style declarations.
func (a *Adapter) Styles(n domkit.Node) map[string]string {
	real := asNode(n)
	out := make(map[string]string, len(real.styles))
	for k, v := range real.styles {
		out[k] = v
	}
	return out
}

// Children returns n's direct children in order.
func (a *Adapter) Children(n domkit.Node) []domkit.Node {
	real := asNode(n)
	out := make([]domkit.Node, len(real.children))
	for i, c := range real.children {
		out[i] = c
	}
	return out
}

var _ domkit.TreeWalker = (*Adapter)(nil)
