package router

import (
	"net/url"

	"github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"
)

// Location holds the parsed components of a URL.
type Location struct {
	Pathname string
	Search   string
	Hash     string
	State    any
}

// State is a signal-backed holder of the current location. It has no
// dependency on a browser history API — callers own wiring popstate (or
// any other navigation source) into Navigate.
type State struct {
	location reactivity.Signal[Location]
}

// NewState creates a State seeded with the given initial location.
func NewState(initial Location) *State {
	return &State{location: reactivity.CreateSignal(initial)}
}

// Location returns the current location. Called from within an effect,
// this registers a fine-grained dependency the same as any other signal read.
func (s *State) Location() Location {
	return s.location.Get()
}

// Navigate parses path (which may carry a query string and/or fragment,
// e.g. "/users/42?tab=bio#top") and sets it as the current location,
// notifying subscribers if it differs from the current one. An optional state value is attached for the
// navigation, mirroring history.pushState's state argument.
func (s *State) Navigate(path string, state ...any) {
	loc := parseLocation(path)
	if len(state) > 0 {
		loc.State = state[0]
	}
	s.location.Set(loc)
}

// Subscribe registers fn to run whenever Navigate changes the location
// and returns a Disposer that unregisters it. A Navigate that yields a
// Location equal to the current one does not call fn.
func (s *State) Subscribe(fn func(Location)) reactivity.Disposer {
	return s.location.Subscribe(fn)
}

func parseLocation(path string) Location {
	u, err := url.Parse(path)
	if err != nil {
		return Location{Pathname: path}
	}
	return Location{Pathname: u.Path, Search: u.RawQuery, Hash: u.Fragment}
}
