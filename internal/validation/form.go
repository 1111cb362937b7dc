package validation

import "maps"

// Form is the transient per-view state: current values and the error shown
// next to each field.
type Form struct {
	schema Schema
	values map[string]string
	errors Errors
}

// NewForm returns an empty form for schema.
func NewForm(schema Schema) *Form {
	return &Form{
		schema: schema,
		values: make(map[string]string),
		errors: Errors{},
	}
}

// Schema returns the form's schema.
func (f *Form) Schema() Schema { return f.schema }

// Set stores value for name and clears that field's error.
func (f *Form) Set(name, value string) {
	f.values[name] = value
	delete(f.errors, name)
}

// Value returns the current value of name.
func (f *Form) Value(name string) string { return f.values[name] }

// Values returns a copy of all values.
func (f *Form) Values() map[string]string { return maps.Clone(f.values) }

// Error returns the message for name, or "".
func (f *Form) Error(name string) string { return f.errors[name] }

// Errors returns a copy of the error map.
func (f *Form) Errors() Errors { return maps.Clone(f.errors) }

// Validate replaces the error map with the schema's verdict and reports
// whether the form is valid.
func (f *Form) Validate() bool {
	f.errors = f.schema.Validate(f.values)
	return len(f.errors) == 0
}

// Reset clears values and errors.
func (f *Form) Reset() {
	f.values = make(map[string]string)
	f.errors = Errors{}
}
