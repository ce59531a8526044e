package form

import (
	"github.com/vincenthirtz/pulse-js-framework-sub000/builder"
	"github.com/vincenthirtz/pulse-js-framework-sub000/domkit"
)

// ForOptions configures FormFor's submit handling.
type ForOptions struct {
	// OnSubmit runs after a successful Validate, unless Validate is
	// false, in which case it always runs.
	OnSubmit func(*State) error
	// Validate gates OnSubmit on state.Validate() passing. Defaults to
	// true via DefaultForOptions.
	Validate bool
	Attrs    builder.Attrs
}

// DefaultForOptions returns ForOptions with validation enabled.
func DefaultForOptions() ForOptions {
	return ForOptions{Validate: true}
}

// FormFor builds a <form> element wired to state: submitting it
// prevents the browser's own navigation, runs validation per options,
// and calls OnSubmit with the current state.
func FormFor(state *State, options ForOptions, children ...*builder.Node) *builder.Node {
	attrs := builder.Attrs{}
	for k, v := range options.Attrs {
		attrs[k] = v
	}
	attrs["onSubmit"] = func(ev domkit.Event) {
		if accessor, ok := ev.(domkit.EventAccessor); ok {
			accessor.PreventDefault()
		}
		if options.OnSubmit == nil {
			return
		}
		if options.Validate && !state.Validate() {
			return
		}
		options.OnSubmit(state)
	}

	return builder.El("form", attrs, children...)
}

// SimpleForm builds a FormFor with default options and the given
// submit handler.
func SimpleForm(state *State, onSubmit func(*State) error, children ...*builder.Node) *builder.Node {
	options := DefaultForOptions()
	options.OnSubmit = onSubmit
	return FormFor(state, options, children...)
}
