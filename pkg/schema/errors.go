package schema

import (
	"errors"
	"fmt"
)

// ErrEmptySchema is returned when DefineSchema receives no fields.
var ErrEmptySchema = errors.New("schema: at least one field is required")

// DuplicateFieldError reports two field specs sharing a name.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("schema: duplicate field %q", e.Name)
}

// InvalidDefaultError reports a default value whose shape does not match the
// field's kind.
type InvalidDefaultError struct {
	Field string
	Kind  string
	Value any
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("schema: field %q default %#v does not fit kind %s", e.Field, e.Value, e.Kind)
}

// InvalidFieldError reports a structurally malformed field spec: a blank
// name, a missing kind, or a constraint that cannot evaluate the kind.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
}

// InvalidValueError reports a value passed to EvaluateField whose shape does
// not match the field's kind.
type InvalidValueError struct {
	Field string
	Kind  string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("schema: field %q expects a %s value, got %T", e.Field, e.Kind, e.Value)
}

// UnknownFieldError reports a lookup of a name the schema does not declare.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("schema: unknown field %q", e.Name)
}
