package reactivity

import "github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"

// Computed is a read-only derived reactive cell.
type Computed[T any] interface {
	Get() T
	Peek() T
}

// ComputedOption configures a computed at creation time.
type ComputedOption[T any] func(*computedConfig[T])

type computedConfig[T any] struct {
	equals func(a, b T) bool
	lazy   bool
}

// WithComputedEquals overrides the equality predicate used to decide
// whether a recompute actually changed the value.
func WithComputedEquals[T any](eq func(a, b T) bool) ComputedOption[T] {
	return func(c *computedConfig[T]) { c.equals = eq }
}

// WithEager makes the computed recompute as soon as it is invalidated
// instead of waiting for the next read (spec: "lazy: false").
func WithEager[T any]() ComputedOption[T] {
	return func(c *computedConfig[T]) { c.lazy = false }
}

type computed[T any] struct {
	compute  func() T
	equals   func(a, b T) bool
	lazy     bool
	value    T
	hasValue bool
	dirty    bool
	computing bool
	disposed bool

	deps      map[producer]struct{}
	consumers map[consumer]struct{}
}

// CreateComputed builds a lazily (by default) recomputed derived cell.
// Within one flush it is recomputed at most once no matter how many of
// its upstream producers changed.
func CreateComputed[T any](compute func() T, opts ...ComputedOption[T]) Computed[T] {
	cfg := computedConfig[T]{equals: defaultEquals[T], lazy: true}
	for _, o := range opts {
		o(&cfg)
	}
	c := &computed[T]{
		compute:   compute,
		equals:    cfg.equals,
		lazy:      cfg.lazy,
		dirty:     true,
		deps:      make(map[producer]struct{}),
		consumers: make(map[consumer]struct{}),
	}
	if !c.lazy {
		c.ensureFresh()
	}
	return c
}

func (c *computed[T]) removeConsumer(cons consumer) {
	delete(c.consumers, cons)
}

func (c *computed[T]) Get() T {
	track(c, func(cons consumer) { c.consumers[cons] = struct{}{} })
	c.ensureFresh()
	return c.value
}

func (c *computed[T]) Peek() T {
	c.ensureFresh()
	return c.value
}

// onStale implements consumer: it is called when one of this computed's
// own upstream producers changes.
func (c *computed[T]) onStale() {
	if c.dirty || c.disposed {
		return
	}
	c.dirty = true
	// Dirty marking (and effect enqueueing) propagates synchronously,
	// regardless of batch depth or laziness; stops here next time because c.dirty is now true.
	notify(c.consumers)
	if !c.lazy {
		sched.enqueue(c)
	}
}

// runScheduled implements schedulable for eager computeds: the actual
// recompute is deferred to flush time so it still happens at most once
// per flush even though onStale fires synchronously per producer change.
func (c *computed[T]) runScheduled() {
	c.ensureFresh()
}

func (c *computed[T]) ensureFresh() {
	if !c.dirty || c.disposed {
		return
	}
	if c.computing {
		err := pulseerr.New(pulseerr.CircularDependency, "computed read its own value while computing")
		panic(err)
	}
	c.computing = true

	var newVal T
	newDeps := func() (deps map[producer]struct{}) {
		defer func() {
			c.computing = false
			if r := recover(); r != nil {
				// Leave dirty so the next read retries; propagate to caller.
				panic(r)
			}
		}()
		return runTracked(c, func() { newVal = c.compute() })
	}()

	detachStale(c, c.deps, newDeps)
	c.deps = newDeps

	changed := !c.hasValue || !c.equals(c.value, newVal)
	c.value = newVal
	c.hasValue = true
	c.dirty = false

	if changed {
		notify(c.consumers)
	}
}
