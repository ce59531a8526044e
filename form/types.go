// Package form wires named input fields to string signals and runs
// caller-supplied validator functions against them. It manages field
// state only: no validation-rule DSL, no HTTP submission helper.
package form

import "github.com/vincenthirtz/pulse-js-framework-sub000/reactivity"

// Validator checks a field's current value, returning a non-nil error
// to report a validation failure.
type Validator func(value string) error

// FieldDef describes one field in a form's schema.
type FieldDef struct {
	Name         string
	Label        string
	InitialValue string
	Validators   []Validator
}

// Field holds one field's live value and validation error as signals,
// so builder.Bind/builder.Model can wire directly to them.
type Field struct {
	Def   FieldDef
	Value reactivity.Signal[string]
	Error reactivity.Signal[error]
}

// State is a form's full set of fields, addressable by name.
type State struct {
	schema []FieldDef
	fields []*Field
	byName map[string]*Field
}

// NewState builds a State from a field schema, seeding each field's
// value signal with its InitialValue.
func NewState(schema []FieldDef) *State {
	st := &State{schema: schema, byName: make(map[string]*Field, len(schema))}
	for _, def := range schema {
		f := &Field{
			Def:   def,
			Value: reactivity.CreateSignal(def.InitialValue),
			Error: reactivity.CreateSignal[error](nil),
		}
		st.fields = append(st.fields, f)
		st.byName[def.Name] = f
	}
	return st
}

// Field looks up a field by name, or nil if the schema has none by
// that name.
func (s *State) Field(name string) *Field { return s.byName[name] }

// Fields returns every field in schema order.
func (s *State) Fields() []*Field { return s.fields }

// Values snapshots every field's current value.
func (s *State) Values() map[string]string {
	values := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		values[f.Def.Name] = f.Value.Peek()
	}
	return values
}

// ValidateField runs name's validators against its current value,
// updating its Error signal and returning the first failure (nil if
// the field passes or doesn't exist).
func (s *State) ValidateField(name string) error {
	f := s.byName[name]
	if f == nil {
		return nil
	}
	value := f.Value.Peek()
	for _, v := range f.Def.Validators {
		if err := v(value); err != nil {
			f.Error.Set(err)
			return err
		}
	}
	f.Error.Set(nil)
	return nil
}

// Validate runs ValidateField across every field, reporting whether
// all of them passed.
func (s *State) Validate() bool {
	ok := true
	for _, f := range s.fields {
		if err := s.ValidateField(f.Def.Name); err != nil {
			ok = false
		}
	}
	return ok
}

// Reset restores every field to its InitialValue and clears errors.
func (s *State) Reset() {
	for _, f := range s.fields {
		f.Value.Set(f.Def.InitialValue)
		f.Error.Set(nil)
	}
}
