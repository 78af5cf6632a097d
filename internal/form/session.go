package form

import "errors"

// ErrInvalid is returned by Submit when validation fails; the per-field
// messages are available through Errors.
var ErrInvalid = errors.New("form: validation failed")

// Session holds the editing state for one schema-validated record: current
// values, touched/dirty flags and field-level validation errors.
type Session struct {
	schema   Schema
	values   map[string]any
	defaults map[string]any
	touched  map[string]bool
	errors   map[string]string

	submitting bool
}

// NewSession seeds a session from the schema's zero values overlaid with the
// supplied defaults.
func NewSession(schema Schema, defaults map[string]any) *Session {
	values := make(map[string]any, len(schema))
	saved := make(map[string]any, len(schema))
	for name, field := range schema {
		def := definition(field.Kind)
		v := def.zero()
		if raw, ok := defaults[name]; ok {
			v = def.coerce(raw)
		}
		values[name] = v
		saved[name] = v
	}
	return &Session{
		schema:   schema,
		values:   values,
		defaults: saved,
		touched:  make(map[string]bool),
		errors:   make(map[string]string),
	}
}

// SetValue coerces raw input through the field's kind and stores it, marking
// the field touched and clearing its previous error.
func (s *Session) SetValue(name string, raw any) {
	field, ok := s.schema[name]
	if !ok {
		return
	}
	s.values[name] = definition(field.Kind).coerce(raw)
	s.touched[name] = true
	delete(s.errors, name)
}

func (s *Session) Value(name string) any {
	return s.values[name]
}

func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *Session) Touched(name string) bool {
	return s.touched[name]
}

// Dirty reports whether a field's value differs from its default.
func (s *Session) Dirty(name string) bool {
	return !valueEqual(s.values[name], s.defaults[name])
}

func (s *Session) Error(name string) string {
	return s.errors[name]
}

func (s *Session) Errors() map[string]string {
	return s.errors
}

func (s *Session) IsRequired(name string) bool {
	return s.schema.IsRequired(name)
}

func (s *Session) IsSubmitting() bool {
	return s.submitting
}

// Submit validates the current values. When valid it invokes the callback
// with the typed record and relays its error; when invalid it surfaces the
// field errors and never calls the callback.
func (s *Session) Submit(cb func(values map[string]any) error) error {
	errs := s.schema.Validate(s.values)
	if len(errs) > 0 {
		s.errors = errs
		return ErrInvalid
	}
	s.errors = make(map[string]string)

	s.submitting = true
	defer func() { s.submitting = false }()
	return cb(s.Values())
}

func valueEqual(a, b any) bool {
	if as, ok := a.([]string); ok {
		bs, ok := b.([]string)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	}
	return a == b
}
