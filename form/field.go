package form

import "github.com/vincenthirtz/pulse-js-framework-sub000/builder"

// FieldOptions configures how Field renders a single schema field.
type FieldOptions struct {
	ShowLabel bool
	ShowError bool
	// InputType is the <input type="..."> attribute; defaults to "text".
	InputType string
	Attrs     builder.Attrs
}

// DefaultFieldOptions returns sensible defaults for field rendering.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{ShowLabel: true, ShowError: true, InputType: "text"}
}

// Field renders a labeled <input> bound two-way to name's value signal,
// plus a reactive error message, inside a wrapping <div>.
func Field(state *State, name string, options FieldOptions) *builder.Node {
	f := state.Field(name)
	if f == nil {
		return builder.El("div", nil, builder.Text("field not found: "+name))
	}

	inputType := options.InputType
	if inputType == "" {
		inputType = "text"
	}

	attrs := builder.Attrs{"type": inputType, "name": f.Def.Name}
	for k, v := range options.Attrs {
		attrs[k] = v
	}
	input := builder.El("input", attrs)
	builder.Bind(input, f.Value)

	var children []*builder.Node
	if options.ShowLabel && f.Def.Label != "" {
		children = append(children, builder.El("label.form-field-label", nil, builder.Text(f.Def.Label)))
	}
	children = append(children, input)
	if options.ShowError {
		children = append(children, builder.El("div.field-error", nil, builder.Text(func() string {
			if err := f.Error.Get(); err != nil {
				return err.Error()
			}
			return ""
		})))
	}

	return builder.El("div.form-field", nil, children...)
}
