package form

import (
	"errors"
	"log/slog"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Form is the mutable state of one form instance.
type Form struct {
	schema          *schema.Schema
	specs           []schema.FieldSpec
	fields          map[string]*FieldState
	submitAttempted bool
	status          Status

	logger    *slog.Logger
	listeners []subscription
	nextSubID int
}

// Option configures a Form.
type Option func(*Form)

// WithLogger routes transition logs to logger. Forms log at debug level only.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a form with every field at its default value, untouched and
// without errors.
func New(s *schema.Schema, opts ...Option) (*Form, error) {
	if s == nil || s.Len() == 0 {
		return nil, schema.ErrEmptySchema
	}
	f := &Form{
		schema: s,
		specs:  s.Fields(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.init()
	return f, nil
}

// MustNew is New that panics on error.
func MustNew(s *schema.Schema, opts ...Option) *Form {
	f, err := New(s, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Form) init() {
	f.fields = make(map[string]*FieldState, len(f.specs))
	for _, spec := range f.specs {
		f.fields[spec.Name] = &FieldState{Name: spec.Name, Value: spec.Default}
	}
	f.submitAttempted = false
	f.status = StatusEditing
}

// Schema returns the schema the form is bound to.
func (f *Form) Schema() *schema.Schema { return f.schema }

// SetFieldValue stores value, marks the field touched and re-validates that
// field only. Unknown names and values of the wrong shape are programmer
// errors and leave the form unchanged.
func (f *Form) SetFieldValue(name string, value any) error {
	spec, state, err := f.lookup(name)
	if err != nil {
		return err
	}
	coerced, ok := schema.Coerce(spec.Kind, value)
	if !ok {
		return &InvalidValueError{Field: name, Kind: spec.Kind.Name(), Value: value}
	}

	f.status = StatusEditing
	state.Value = coerced
	state.Touched = true
	f.evaluate(state)

	f.logger.Debug("form field changed", "field", name, "valid", state.Valid())
	f.emit(Event{Type: EventFieldChanged, Field: name, State: *state})
	return nil
}

// SetFieldInput converts raw text with schema.ParseInput and calls
// SetFieldValue. When the text cannot be converted the field is set to its
// kind's zero value and an *InputError is returned so the caller can report
// the raw input back to the user.
func (f *Form) SetFieldInput(name, raw string) error {
	spec, _, err := f.lookup(name)
	if err != nil {
		return err
	}
	value, parseErr := schema.ParseInput(spec.Kind, raw)
	if parseErr == nil {
		return f.SetFieldValue(name, value)
	}

	if err := f.SetFieldValue(name, schema.ZeroValue(spec.Kind)); err != nil {
		return err
	}
	msg := "Invalid value"
	if errors.Is(parseErr, schema.ErrNotANumber) {
		msg = "Must be a number"
	}
	return &InputError{Field: name, Input: raw, Message: msg, Err: parseErr}
}

// ValidateField touches and validates a single field, as when an input loses
// focus. It reports whether the field is valid.
func (f *Form) ValidateField(name string) (bool, error) {
	_, state, err := f.lookup(name)
	if err != nil {
		return false, err
	}
	f.status = StatusEditing
	state.Touched = true
	f.evaluate(state)

	f.emit(Event{Type: EventFieldValidated, Field: name, State: *state})
	return state.Valid(), nil
}

// ValidateAll touches and validates every field and returns IsValid.
// Calling it twice in a row yields the same field states.
func (f *Form) ValidateAll() bool {
	f.status = StatusEditing
	f.validateAll()
	valid := f.IsValid()
	f.logger.Debug("form validated", "valid", valid, "errors", len(f.Errors()))
	f.emit(Event{Type: EventValidated})
	return valid
}

func (f *Form) validateAll() {
	for _, spec := range f.specs {
		state := f.fields[spec.Name]
		state.Touched = true
		f.evaluate(state)
	}
}

// AttemptSubmit marks the form as submit-attempted and validates every
// field. When the form is valid it calls onValid exactly once with a snapshot
// of the values and returns true. Otherwise onValid is not called, the field
// errors stay in place and false is returned. A nil onValid validates only.
func (f *Form) AttemptSubmit(onValid func(Values)) bool {
	f.submitAttempted = true
	f.status = StatusSubmitPending
	f.validateAll()

	if !f.IsValid() {
		f.status = StatusSubmitFailed
		f.logger.Debug("form submit blocked", "errors", len(f.Errors()))
		f.emit(Event{Type: EventSubmitFailed})
		return false
	}

	snapshot := f.Values()
	f.status = StatusSubmitSucceeded
	f.logger.Debug("form submitted", "fields", len(snapshot))
	f.emit(Event{Type: EventSubmitted})
	// The handoff may reset or edit the form; nothing after it writes state.
	if onValid != nil {
		onValid(snapshot)
	}
	return true
}

// Reset restores the state New produced: defaults, untouched, no errors and
// no submit attempt. Subscribers are kept.
func (f *Form) Reset() {
	f.init()
	f.logger.Debug("form reset")
	f.emit(Event{Type: EventReset})
}

// Field returns a copy of the named field's state.
func (f *Form) Field(name string) (FieldState, bool) {
	state, ok := f.fields[name]
	if !ok {
		return FieldState{}, false
	}
	return *state, true
}

// Fields returns copies of every field state in schema order.
func (f *Form) Fields() []FieldState {
	out := make([]FieldState, len(f.specs))
	for i, spec := range f.specs {
		out[i] = *f.fields[spec.Name]
	}
	return out
}

// Values returns a snapshot of every field value.
func (f *Form) Values() Values {
	out := make(Values, len(f.fields))
	for name, state := range f.fields {
		out[name] = state.Value
	}
	return out
}

// Errors returns the current message of every field that has one.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	for name, state := range f.fields {
		if state.Error != "" {
			out[name] = state.Error
		}
	}
	return out
}

// IsValid reports whether no field currently carries an error. A fresh form
// is valid until validation runs, whatever its defaults.
func (f *Form) IsValid() bool {
	for _, state := range f.fields {
		if state.Error != "" {
			return false
		}
	}
	return true
}

// SubmitAttempted reports whether AttemptSubmit ran since creation or the
// last Reset.
func (f *Form) SubmitAttempted() bool { return f.submitAttempted }

// Status returns the form-level submission state.
func (f *Form) Status() Status { return f.status }

func (f *Form) lookup(name string) (schema.FieldSpec, *FieldState, error) {
	state, ok := f.fields[name]
	if !ok {
		return schema.FieldSpec{}, nil, &schema.UnknownFieldError{Name: name}
	}
	for _, spec := range f.specs {
		if spec.Name == name {
			return spec, state, nil
		}
	}
	return schema.FieldSpec{}, nil, &schema.UnknownFieldError{Name: name}
}

func (f *Form) evaluate(state *FieldState) {
	msg, err := schema.EvaluateField(f.schema, state.Name, state.Value)
	if err != nil {
		// fields and schema share the same names, so this is unreachable.
		panic(err)
	}
	state.Error = msg
}
