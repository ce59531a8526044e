//go:build !js && !wasm

// Package devtools drives a headless Chrome instance against a running
// Pulse page to pull out live reactive-graph and DOM state for CI
// diagnostics, independent of anything running inside the Go process
// itself.
package devtools

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit/mockdom"
)

// Config configures the headless Chrome instance an Inspector drives.
type Config struct {
	Headless bool
	Timeout  time.Duration
}

// DefaultConfig returns a sensible headless configuration for CI use.
func DefaultConfig() Config {
	return Config{Headless: true, Timeout: 10 * time.Second}
}

// Inspector attaches to a headless Chrome instance.
type Inspector struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// New launches a headless Chrome instance per config.
func New(config Config) (*Inspector, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	combinedCancel := func() {
		browserCancel()
		allocCancel()
		cancel()
	}

	return &Inspector{ctx: browserCtx, cancel: combinedCancel}, nil
}

// Close tears down the underlying browser and allocator contexts.
func (i *Inspector) Close() { i.cancel() }

// Snapshot is a point-in-time capture of a running page's reactive graph
// size and DOM tree.
type Snapshot struct {
	// ID uniquely identifies this snapshot so CI logs can correlate it
	// against a later one for the same inspection run.
	ID string
	// ReactiveNodeCount is the combined count of live signals, computeds
	// and effects, as reported by the page's own debug bridge.
	ReactiveNodeCount int
	// Root is the captured <body> subtree, rebuilt into a mockdom tree
	// so it can be passed directly to ssr.DiffNodes against a
	// server-rendered tree for hydration comparison.
	Root    domkit.Node
	Adapter *mockdom.Adapter
	// LiveDOMNodeCount is the real browser's own count of DOM nodes in
	// the document, counted from (and including) the document node itself,
	// fetched via the CDP DOM domain directly rather than
	// the JS bridge, as a cross-check against len(Root's subtree).
	LiveDOMNodeCount int
}

// bridgeScript calls a debug hook a Pulse page installs at
// "window.__pulseDevtools__" (a thin wrapper the runtime exposes when
// built with devtools support) and returns its JSON-serializable result.
const bridgeScript = `window.__pulseDevtools__ ? window.__pulseDevtools__.snapshot() : { reactiveNodeCount: 0, tree: null }`

type bridgeResult struct {
	ReactiveNodeCount int      `json:"reactiveNodeCount"`
	Tree              *domNode `json:"tree"`
}

type domNode struct {
	Kind     string            `json:"kind"` // "element" | "text" | "comment"
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	Classes  []string          `json:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Styles   map[string]string `json:"styles,omitempty"`
	Children []*domNode        `json:"children,omitempty"`
}

// Inspect navigates to url, waits for waitSelector to become visible (the
// app's mount point), and pulls a Snapshot via the page's debug bridge.
func (i *Inspector) Inspect(url, waitSelector string) (*Snapshot, error) {
	var result bridgeResult
	var docRoot *cdp.Node

	err := chromedp.Run(i.ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitSelector, chromedp.ByQuery),
		chromedp.Evaluate(bridgeScript, &result),
		chromedp.ActionFunc(func(ctx context.Context) error {
			n, err := dom.GetDocument().WithDepth(-1).Do(ctx)
			if err != nil {
				return err
			}
			docRoot = n
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("devtools: inspect %s: %w", url, err)
	}

	a := mockdom.New()
	var root domkit.Node = a.GetBody()
	if result.Tree != nil {
		root = buildMockTree(a, result.Tree)
		a.AppendChild(a.GetBody(), root)
	}

	return &Snapshot{
		ID:                uuid.New().String(),
		ReactiveNodeCount: result.ReactiveNodeCount,
		Root:              root,
		Adapter:           a,
		LiveDOMNodeCount:  countNodes(docRoot),
	}, nil
}

func countNodes(n *cdp.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

func buildMockTree(a *mockdom.Adapter, n *domNode) domkit.Node {
	switch n.Kind {
	case "text":
		return a.CreateTextNode(n.Text)
	case "comment":
		return a.CreateComment(n.Text)
	default:
		el := a.CreateElement(n.Tag)
		for _, c := range n.Classes {
			a.AddClass(el, c)
		}
		for k, v := range n.Attrs {
			a.SetAttribute(el, k, v)
		}
		for k, v := range n.Styles {
			a.SetStyle(el, k, v)
		}
		for _, child := range n.Children {
			a.AppendChild(el, buildMockTree(a, child))
		}
		return el
	}
}
