package reactivity

// ssrMode is the process-wide SSR flag. It is
// deliberately a single package-level bool: the runtime is single
// threaded, and tests that flip it must reset it in teardown.
var ssrMode bool

// SetSSRMode toggles server-side-rendering mode.
func SetSSRMode(on bool) {
	ssrMode = on
}

// IsSSR reports the current mode.
func IsSSR() bool {
	return ssrMode
}
