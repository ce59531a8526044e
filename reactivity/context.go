package reactivity

// Context is a named reactive root owning a set of signals, computeds and
// effects for isolation between tests or SSR requests.
// Pulse's signals/computeds/effects don't self-register with a context —
// instead, ownership is tracked the same way DOM/element ownership is:
// via the disposer each constructor returns. Context simply collects
// disposers for whatever was created while it was current.
type Context struct {
	name      string
	disposers []func()
	reset     bool
}

var currentContext *Context

// CreateContext creates a new, not-yet-active reactive root.
func CreateContext(name string) *Context {
	return &Context{name: name}
}

// Name returns the context's name.
func (c *Context) Name() string { return c.name }

// own registers a disposer to run when this context is reset. Intended
// for use by Own/effect/signal helpers that want context-scoped cleanup.
func (c *Context) own(dispose func()) {
	if c.reset {
		dispose()
		return
	}
	c.disposers = append(c.disposers, dispose)
}

// Own ties a disposer (typically returned by CreateEffect, or a Signal's
// Subscribe) to ctx's lifetime.
func (ctx *Context) Own(dispose func()) {
	ctx.own(dispose)
}

// Reset tears down every node owned by the context, in reverse
// registration order, and marks it so any further Own calls dispose
// immediately. Idempotent.
func (c *Context) Reset() {
	if c.reset {
		return
	}
	c.reset = true
	for i := len(c.disposers) - 1; i >= 0; i-- {
		c.disposers[i]()
	}
	c.disposers = nil
}

// WithContext makes ctx the current context for the duration of fn,
// restoring the previous context on all exit paths including panics.
func WithContext(ctx *Context, fn func()) {
	previous := currentContext
	currentContext = ctx
	defer func() { currentContext = previous }()
	fn()
}

// CurrentContext returns the context currently installed by WithContext,
// or nil at the top level.
func CurrentContext() *Context {
	return currentContext
}
