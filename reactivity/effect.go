package reactivity

import "github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"

// CleanupFunc is returned by an effect body to register teardown work
// that runs before the next run and at disposal.
type CleanupFunc func()

// Effect represents a running reactive computation that can be disposed.
type Effect interface {
	Dispose()
}

// EffectOption configures an effect at creation time.
type EffectOption func(*effectConfig)

type effectConfig struct {
	onError func(error)
}

// WithOnError installs a handler invoked when the effect body panics.
// Without one, errors are logged and the flush continues.
func WithOnError(fn func(error)) EffectOption {
	return func(c *effectConfig) { c.onError = fn }
}

type effectNode struct {
	fn       func() CleanupFunc
	onErr    func(error)
	deps     map[producer]struct{}
	cleanups []func()
	disposed bool
	running  bool
	rerun    bool
}

// CreateEffect registers a reactive effect that runs immediately and then
// re-runs whenever any producer it read last time changes.
func CreateEffect(fn func() CleanupFunc, opts ...EffectOption) Disposer {
	cfg := effectConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	e := &effectNode{fn: fn, onErr: cfg.onError, deps: make(map[producer]struct{})}
	e.run()
	return e.Dispose
}

// onCleanupEffect is the effect currently executing, used by the
// package-level OnCleanup function. It is distinct from the tracking
// stack because cleanup registration must target the innermost running
// effect even if a computed's compute function is nested inside it.
var cleanupStack []*effectNode

// OnCleanup registers fn to run before the current effect re-runs and when
// it is disposed. Outside of a running effect, it is a no-op.
func OnCleanup(fn func()) {
	if len(cleanupStack) == 0 {
		return
	}
	e := cleanupStack[len(cleanupStack)-1]
	if e.disposed {
		return
	}
	e.cleanups = append(e.cleanups, fn)
}

func (e *effectNode) onStale() {
	if e.disposed {
		return
	}
	sched.enqueue(e)
}

func (e *effectNode) runScheduled() {
	e.run()
}

func (e *effectNode) run() {
	if e.disposed {
		return
	}
	if e.running {
		// A producer changed while this run was still in progress: run
		// again once it finishes instead of dropping the change.
		e.rerun = true
		return
	}
	e.running = true
	defer func() {
		e.running = false
		if e.rerun && !e.disposed {
			e.rerun = false
			sched.enqueue(e)
		}
	}()

	e.runCleanups()

	cleanupStack = append(cleanupStack, e)
	var ret CleanupFunc
	newDeps := func() (deps map[producer]struct{}) {
		defer func() {
			if r := recover(); r != nil {
				deps = e.deps // keep prior deps on panic; don't rebuild mid-failure
				e.reportError(recoverToError(r))
			}
		}()
		return runTracked(e, func() { ret = e.fn() })
	}()
	cleanupStack = cleanupStack[:len(cleanupStack)-1]

	if ret != nil {
		e.cleanups = append(e.cleanups, ret)
	}

	detachStale(e, e.deps, newDeps)
	e.deps = newDeps
}

func (e *effectNode) runCleanups() {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i]()
	}
	e.cleanups = nil
}

func (e *effectNode) reportError(err *pulseerr.Error) {
	if e.onErr != nil {
		e.onErr(err)
		return
	}
	logError(err)
}

// Dispose stops the effect: fires pending cleanups once and detaches from
// every tracked dependency. Idempotent.
func (e *effectNode) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.runCleanups()
	for p := range e.deps {
		p.removeConsumer(e)
	}
	e.deps = nil
}
