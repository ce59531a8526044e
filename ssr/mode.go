// Package ssr implements server-side rendering support: the SSR mode
// flag, the ClientOnly/ServerOnly selective-rendering factories, HTML
// serialization of a built tree, and hydration-mismatch diffing between
// a server-rendered and a client-rendered tree.
package ssr

import "github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"

// SetMode toggles server-side-rendering mode for the process. The flag
// itself lives in reactivity (it governs effect/mount behavior there
// too); ssr only re-exposes it under the name generated code and tooling
// expect.
func SetMode(on bool) {
	reactivity.SetSSRMode(on)
}

// IsSSR reports the current mode.
func IsSSR() bool {
	return reactivity.IsSSR()
}
