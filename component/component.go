// Package component implements component(setup): a
// factory that runs a setup function inside a fresh mount context,
// schedules its mount callbacks on a microtask, and ties the returned
// node's unmount to the effects that setup created.
package component

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/builder"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/logutil"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// SetupContext is passed to a component's setup function. Props carries
// whatever the caller passed to the factory; OnMount/OnUnmount/Effect
// are convenience aliases for the package-level functions of the same
// name, scoped to this component automatically since they're called
// while this component's context is current.
type SetupContext[P any] struct {
	Props     P
	OnMount   func(func())
	OnUnmount func(func())
	Effect    func(fn func() reactivity.CleanupFunc) reactivity.Disposer
}

// mountContext accumulates what a single setup() call registers while
// it is the innermost entry on the stack. Its effect-disposal half is
// delegated to a reactivity.Context instead of keeping its own slice,
// the same way DOM node ownership already defers to builder.Node's
// own disposer list — one context per Component() call, installed as
// the current one (reactivity.WithContext) for the duration of setup
// so a nested reactivity.CurrentContext() call sees it too.
type mountContext struct {
	ctx              *reactivity.Context
	mountCallbacks   []func()
	unmountCallbacks []func()
}

var stack []*mountContext

func current() *mountContext {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// OnMount registers cb to run once, on a microtask, after the current
// component's node is fully built. Outside any component context (a
// top-level builder.Mount call), it defers straight to the current
// adapter's microtask queue.
func OnMount(cb func()) {
	if c := current(); c != nil {
		c.mountCallbacks = append(c.mountCallbacks, cb)
		return
	}
	domkit.Get().QueueMicrotask(cb)
}

// OnUnmount registers cb to run when the current component unmounts, in
// reverse registration order along with every other unmount callback.
// A no-op outside a component context.
func OnUnmount(cb func()) {
	if c := current(); c != nil {
		c.unmountCallbacks = append(c.unmountCallbacks, cb)
	}
}

// Effect creates an effect whose disposer is owned by the current
// component's reactivity.Context, torn down on unmount after the
// component's unmount callbacks have run, as setup-time El()/List()
// bindings are. Outside a component context the effect still runs but
// nothing owns its disposer.
func Effect(fn func() reactivity.CleanupFunc) reactivity.Disposer {
	d := reactivity.CreateEffect(fn)
	if c := current(); c != nil {
		c.ctx.Own(func() { d() })
	}
	return d
}

func runMountCallbacks(cbs []func()) {
	for _, cb := range cbs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logutil.Logf("pulse: mount callback panicked: %v", r)
				}
			}()
			cb()
		}()
	}
}

// Component returns a factory that builds a Node from props. Each call:
//  1. pushes a fresh mount context (the prior one, if any, is restored
//     on return even if setup panics);
//  2. runs setup, which may register OnMount/OnUnmount/Effect callbacks
//     that default to this context;
//  3. schedules the accumulated mount callbacks on the current
//     adapter's microtask queue, so a test can observe pre-mount state
//     and then drive them deterministically via flushMicrotasks();
//  4. wires the node's Dispose so unmounting fires unmount callbacks in
//     reverse order, then disposes every effect setup created, before
//     the caller removes the node from its parent.
func Component[P any](setup func(ctx SetupContext[P]) *builder.Node) func(P) *builder.Node {
	return func(props P) *builder.Node {
		mc := &mountContext{ctx: reactivity.CreateContext("component")}
		stack = append(stack, mc)
		defer func() { stack = stack[:len(stack)-1] }()

		var node *builder.Node
		reactivity.WithContext(mc.ctx, func() {
			sc := SetupContext[P]{
				Props:     props,
				OnMount:   OnMount,
				OnUnmount: OnUnmount,
				Effect:    Effect,
			}
			node = setup(sc)
		})

		mountCbs := mc.mountCallbacks
		if a := domkit.Get(); a != nil {
			a.QueueMicrotask(func() { runMountCallbacks(mountCbs) })
		}

		node.OnDispose(mc.ctx.Reset)
		node.OnDispose(func() {
			for i := len(mc.unmountCallbacks) - 1; i >= 0; i-- {
				mc.unmountCallbacks[i]()
			}
		})

		return node
	}
}
