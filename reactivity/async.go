package reactivity

import (
	"sync/atomic"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
)

// Epoch implements the "versioned" pattern required for effects
// that perform I/O: Begin() yields a token; an in-flight operation should
// check the token is still Current() before applying its result, so a
// late resolution from a superseded Begin() is silently dropped rather
// than retroactively registering state from a cancelled request.
type Epoch struct {
	current int64
}

// EpochToken identifies one generation of work started by Begin.
type EpochToken int64

// Begin starts a new generation, invalidating any token from a previous
// Begin call, and returns the new token.
func (e *Epoch) Begin() EpochToken {
	return EpochToken(atomic.AddInt64(&e.current, 1))
}

// Current reports whether token is still the latest generation.
func (e *Epoch) Current(token EpochToken) bool {
	return atomic.LoadInt64(&e.current) == int64(token)
}

// Resource provides reactive access to an asynchronously loaded value:
// Data (zero until first success), Loading, and Error, all backed by
// signals.
type Resource[T any] interface {
	Data() T
	Loading() bool
	Error() error
}

type resourceImpl[T any] struct {
	data    Signal[T]
	loading Signal[bool]
	err     Signal[error]
	epoch   Epoch
}

func (r *resourceImpl[T]) Data() T       { return r.data.Get() }
func (r *resourceImpl[T]) Loading() bool { return r.loading.Get() }
func (r *resourceImpl[T]) Error() error  { return r.err.Get() }

// CreateResource wires an asynchronous fetcher to a source signal. Every
// time source changes, fetcher is scheduled on the current adapter's
// microtask queue rather than a goroutine, so it runs on the same
// single cooperative thread as every other reactive update; only the
// result from the most recent invocation is applied (stale resolutions
// are dropped via the Epoch pattern above). Call domkit.Set before
// creating a resource — with no adapter installed the fetcher never
// runs and the resource stays perpetually loading.
func CreateResource[S any, T any](source Signal[S], fetcher func(S) (T, error)) Resource[T] {
	r := &resourceImpl[T]{
		data:    CreateSignal(*new(T)),
		loading: CreateSignal(false),
		err:     CreateSignal[error](nil),
	}

	CreateEffect(func() CleanupFunc {
		s := source.Get()
		token := r.epoch.Begin()
		r.loading.Set(true)
		r.err.Set(nil)

		a := domkit.Get()
		if a == nil {
			return nil
		}
		a.QueueMicrotask(func() {
			if !r.epoch.Current(token) {
				return
			}
			data, fetchErr := fetcher(s)
			if !r.epoch.Current(token) {
				return
			}
			if fetchErr != nil {
				r.err.Set(fetchErr)
			} else {
				r.data.Set(data)
			}
			r.loading.Set(false)
		})

		return nil
	})

	return r
}
