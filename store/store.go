// Package store provides a thin, domain-facing entry point onto the
// reactivity engine's fine-grained store, plus a storage-adapter-backed
// persistence helper built on top of it.
package store

import (
	"github.com/go-json-experiment/json"

	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// Store re-exports reactivity.Store so callers of this package don't need
// a second import just to name the type.
type Store[T any] = reactivity.Store[T]

// Adapt re-exports reactivity.Adapt, casting a Signal[any] from Select
// into a typed signal.
func Adapt[V any](s reactivity.Signal[any]) reactivity.Signal[V] {
	return reactivity.Adapt[V](s)
}

// Create builds a fine-grained reactive store seeded with initial,
// returning the store and its setState function.
func Create[T any](initial T) (Store[T], func(...any)) {
	return reactivity.CreateStore(initial)
}

// Persist builds a store the same as Create, except it first hydrates
// initial from any value already saved under key in storage, and after
// every setState call re-serializes the whole store and saves it back.
//
// Persist takes the store's starting value rather than an
// already-constructed Store because reactivity.Store has no
// whole-object change notification — Select gives fine-grained signals
// for individual paths, not a single hook that fires on any mutation —
// so the only place "on every change" can be observed for an arbitrary
// T is the setState call itself. Persist wraps that call instead of
// subscribing to the store after the fact.
func Persist[T any](initial T, key string, storage domkit.Storage) (Store[T], func(...any)) {
	if raw, ok := storage.GetStorageItem(key); ok {
		var hydrated T
		if err := json.Unmarshal([]byte(raw), &hydrated); err == nil {
			initial = hydrated
		}
	}

	st, setState := Create(initial)

	persisting := func(args ...any) {
		setState(args...)
		if data, err := json.Marshal(st.Get()); err == nil {
			storage.SetStorageItem(key, string(data))
		}
	}

	if data, err := json.Marshal(st.Get()); err == nil {
		storage.SetStorageItem(key, string(data))
	}

	return st, persisting
}
