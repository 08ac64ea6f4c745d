// Package form holds the runtime state of one form instance bound to a
// schema.Schema: the current value of every field, whether it has been
// touched, and the message of its first failing constraint.
//
// A Form is mutated only through its operations. SetFieldValue re-validates
// the edited field alone; ValidateAll touches and validates every field;
// AttemptSubmit validates everything and hands a snapshot of the values to
// the caller's onValid callback only when no field carries an error. Reset
// returns the form to the state New produced.
//
// Validation failures are data, read back through Field, Fields and Errors.
// Go errors are reserved for programmer mistakes such as unknown field names
// or values of the wrong shape.
//
// A Form is owned by a single screen and is not safe for concurrent use.
package form
