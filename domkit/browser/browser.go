//go:build js && wasm

// Package browser implements domkit.Adapter against the real DOM via
// honnef.co/go/js/dom/v2, the same library the teacher's dom package
// wraps, falling back to syscall/js directly for event wiring exactly
// as the teacher's ElementBuilder.OnEvent does.
package browser

import (
	"strings"
	"syscall/js"
	"time"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	wdom "honnef.co/go/js/dom/v2"
)

// Adapter drives the live browser DOM. Node values it hands out are
// always wdom.Node (usually wdom.Element or *wdom.Text/*wdom.Comment).
type Adapter struct {
	doc       wdom.Document
	listeners map[js.Value]map[string][]js.Func
}

// New wraps the current window's document.
func New() *Adapter {
	return &Adapter{
		doc:       wdom.GetWindow().Document(),
		listeners: make(map[js.Value]map[string][]js.Func),
	}
}

var _ domkit.Adapter = (*Adapter)(nil)

func asNode(n domkit.Node) wdom.Node {
	if n == nil {
		return nil
	}
	return n.(wdom.Node)
}

func asElement(n domkit.Node) wdom.Element {
	if n == nil {
		return nil
	}
	return n.(wdom.Element)
}

func (a *Adapter) CreateElement(tag string) domkit.Node {
	return a.doc.CreateElement(tag)
}

func (a *Adapter) CreateTextNode(text string) domkit.Node {
	return a.doc.CreateTextNode(text)
}

func (a *Adapter) CreateComment(text string) domkit.Node {
	underlying := js.Global().Get("document").Call("createComment", text)
	return wdom.WrapNode(underlying)
}

func (a *Adapter) CreateDocumentFragment() domkit.Node {
	underlying := js.Global().Get("document").Call("createDocumentFragment")
	return wdom.WrapNode(underlying)
}

func (a *Adapter) SetAttribute(n domkit.Node, name, value string) {
	asElement(n).SetAttribute(name, value)
}

func (a *Adapter) RemoveAttribute(n domkit.Node, name string) {
	asElement(n).RemoveAttribute(name)
}

func (a *Adapter) GetAttribute(n domkit.Node, name string) string {
	return asElement(n).GetAttribute(name)
}

func (a *Adapter) AddClass(n domkit.Node, class string) {
	asElement(n).Class().Add(class)
}

func (a *Adapter) RemoveClass(n domkit.Node, class string) {
	asElement(n).Class().Remove(class)
}

func (a *Adapter) ToggleClass(n domkit.Node, class string) bool {
	return asElement(n).Class().Toggle(class)
}

func (a *Adapter) SetStyle(n domkit.Node, prop, value string) {
	asNode(n).Underlying().Get("style").Call("setProperty", prop, value)
}

func (a *Adapter) GetStyle(n domkit.Node, prop string) string {
	return asNode(n).Underlying().Get("style").Call("getPropertyValue", prop).String()
}

func (a *Adapter) SetProperty(n domkit.Node, name string, value any) {
	asNode(n).Underlying().Set(name, value)
}

func (a *Adapter) GetProperty(n domkit.Node, name string) any {
	v := asNode(n).Underlying().Get(name)
	switch v.Type() {
	case js.TypeString:
		return v.String()
	case js.TypeNumber:
		return v.Float()
	case js.TypeBoolean:
		return v.Bool()
	default:
		return nil
	}
}

func (a *Adapter) SetTextContent(n domkit.Node, text string) {
	asNode(n).SetTextContent(text)
}

func (a *Adapter) GetTextContent(n domkit.Node) string {
	return asNode(n).TextContent()
}

func (a *Adapter) AppendChild(parent, child domkit.Node) {
	asNode(parent).AppendChild(asNode(child))
}

func (a *Adapter) InsertBefore(parent, child, reference domkit.Node) {
	if reference == nil {
		a.AppendChild(parent, child)
		return
	}
	asNode(parent).InsertBefore(asNode(child), asNode(reference))
}

func (a *Adapter) RemoveNode(n domkit.Node) {
	real := asNode(n)
	if p := real.ParentNode(); p != nil {
		p.RemoveChild(real)
	}
}

func (a *Adapter) GetNextSibling(n domkit.Node) domkit.Node {
	sib := asNode(n).NextSibling()
	if sib == nil {
		return nil
	}
	return sib
}

func (a *Adapter) GetParentNode(n domkit.Node) domkit.Node {
	p := asNode(n).ParentNode()
	if p == nil {
		return nil
	}
	return p
}

// browserEvent adapts a wdom.Event to domkit.EventAccessor.
type browserEvent struct{ wdom.Event }

func (e browserEvent) Target() domkit.Node {
	if t := e.Event.Target(); t != nil {
		return t
	}
	return nil
}
func (e browserEvent) Type() string { return e.Event.Type() }

var _ domkit.EventAccessor = browserEvent{}

// AddEventListener mirrors the teacher's ElementBuilder.OnEvent: a raw
// js.FuncOf registered with the underlying addEventListener call, kept
// in a table so RemoveEventListener and the returned unsubscribe can
// release it symmetrically.
func (a *Adapter) AddEventListener(n domkit.Node, eventType string, handler func(domkit.Event)) func() {
	underlying := asNode(n).Underlying()
	jsFunc := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler(browserEvent{wdom.WrapEvent(args[0])})
		return nil
	})
	underlying.Call("addEventListener", eventType, jsFunc)

	if a.listeners[underlying] == nil {
		a.listeners[underlying] = make(map[string][]js.Func)
	}
	a.listeners[underlying][eventType] = append(a.listeners[underlying][eventType], jsFunc)

	return func() {
		underlying.Call("removeEventListener", eventType, jsFunc)
		jsFunc.Release()
	}
}

func (a *Adapter) RemoveEventListener(n domkit.Node, eventType string, handler func(domkit.Event)) {
	underlying := asNode(n).Underlying()
	funcs := a.listeners[underlying][eventType]
	if len(funcs) == 0 {
		return
	}
	f := funcs[0]
	underlying.Call("removeEventListener", eventType, f)
	f.Release()
	a.listeners[underlying][eventType] = funcs[1:]
}

func (a *Adapter) DispatchEvent(n domkit.Node, eventType string, detail any) {
	ctor := js.Global().Get("CustomEvent")
	init := js.ValueOf(map[string]any{"detail": detail, "bubbles": true})
	ev := ctor.New(eventType, init)
	asNode(n).Underlying().Call("dispatchEvent", ev)
}

func (a *Adapter) QueueMicrotask(fn func()) {
	js.Global().Call("queueMicrotask", js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	}))
}

func (a *Adapter) SetTimeout(fn func(), d time.Duration) domkit.TimerHandle {
	var jsFunc js.Func
	jsFunc = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer jsFunc.Release()
		fn()
		return nil
	})
	id := js.Global().Call("setTimeout", jsFunc, d.Milliseconds())
	return id
}

func (a *Adapter) ClearTimeout(h domkit.TimerHandle) {
	v, ok := h.(js.Value)
	if !ok {
		return
	}
	js.Global().Call("clearTimeout", v)
}

func (a *Adapter) QuerySelector(root domkit.Node, selector string) domkit.Node {
	var el wdom.Element
	if root == nil {
		el = a.doc.QuerySelector(selector)
	} else {
		el = asElement(root).QuerySelector(selector)
	}
	if el == nil {
		return nil
	}
	return el
}

func (a *Adapter) GetBody() domkit.Node {
	return a.doc.Body()
}

func (a *Adapter) IsNode(n domkit.Node) bool {
	_, ok := n.(wdom.Node)
	return ok
}

func (a *Adapter) IsElement(n domkit.Node) bool {
	_, ok := n.(wdom.Element)
	return ok
}

func (a *Adapter) GetTagName(n domkit.Node) string {
	el, ok := n.(wdom.Element)
	if !ok {
		return ""
	}
	return strings.ToLower(el.TagName())
}

func (a *Adapter) GetInputType(n domkit.Node) string {
	el, ok := n.(wdom.Element)
	if !ok || strings.ToLower(el.TagName()) != "input" {
		return ""
	}
	if t := el.GetAttribute("type"); t != "" {
		return t
	}
	return "text"
}

var _ domkit.Storage = (*Adapter)(nil)

// GetStorageItem wraps window.localStorage.getItem. localStorage returns
// null (a js.Value of type Null) for a missing key, not an empty string.
func (a *Adapter) GetStorageItem(key string) (string, bool) {
	v := js.Global().Get("localStorage").Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (a *Adapter) SetStorageItem(key, value string) {
	js.Global().Get("localStorage").Call("setItem", key, value)
}

func (a *Adapter) RemoveStorageItem(key string) {
	js.Global().Get("localStorage").Call("removeItem", key)
}
