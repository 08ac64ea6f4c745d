package form

import (
	"fmt"
	"sort"
)

// FieldState is the runtime state of one field. Error is "" until the field
// has been validated and whenever its constraints pass.
type FieldState struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Touched bool   `json:"touched"`
	Error   string `json:"error,omitempty"`
}

// Valid reports whether the field currently carries no error.
func (s FieldState) Valid() bool { return s.Error == "" }

// Pristine reports whether the field has never been edited or validated.
func (s FieldState) Pristine() bool { return !s.Touched }

// Values maps field names to their current values. Text, email and enum
// values are strings, numbers are float64 (or nil) and booleans are bool.
type Values map[string]any

// String returns the string value of name, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns the boolean value of name.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Number returns the numeric value of name and whether one is set.
func (v Values) Number(name string) (float64, bool) {
	n, ok := v[name].(float64)
	return n, ok
}

// Names returns the keys sorted alphabetically.
func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status is the form-level submission state.
type Status int

const (
	// StatusEditing is the resting state; any mutation returns the form here.
	StatusEditing Status = iota
	// StatusSubmitPending is held while AttemptSubmit validates and hands off.
	StatusSubmitPending
	// StatusSubmitSucceeded follows a submit whose handoff ran.
	StatusSubmitSucceeded
	// StatusSubmitFailed follows a submit blocked by field errors.
	StatusSubmitFailed
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitPending:
		return "submit-pending"
	case StatusSubmitSucceeded:
		return "submit-succeeded"
	case StatusSubmitFailed:
		return "submit-failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText renders the status name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// InvalidValueError reports a value whose shape does not match the field's
// kind, for instance a string passed to a number field.
type InvalidValueError struct {
	Field string
	Kind  string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("form: field %q expects a %s value, got %T", e.Field, e.Kind, e.Value)
}

// InputError is returned by SetFieldInput when raw text cannot be converted
// to the field's kind. Unlike InvalidValueError it describes user input.
type InputError struct {
	Field   string
	Input   string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("form: field %q: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error { return e.Err }
