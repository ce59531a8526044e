package ssr

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/builder"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
)

// ClientOnly renders factory's subtree only on the client. In SSR mode it
// never invokes factory: it renders fallback if supplied, otherwise a
// "client-only" comment placeholder a client-side hydration pass knows
// to replace.
func ClientOnly(factory func() *builder.Node, fallback ...func() *builder.Node) *builder.Node {
	if IsSSR() {
		if len(fallback) > 0 {
			return fallback[0]()
		}
		return commentNode("client-only")
	}
	return factory()
}

// ServerOnly renders factory's subtree only during SSR. On the client it
// renders a "server-only" comment placeholder instead, never invoking
// factory.
func ServerOnly(factory func() *builder.Node) *builder.Node {
	if IsSSR() {
		return factory()
	}
	return commentNode("server-only")
}

func commentNode(text string) *builder.Node {
	return &builder.Node{Handle: domkit.Get().CreateComment(text)}
}
