// Package schema declares the immutable field model consumed by the form
// engine. A Schema is an ordered list of FieldSpecs; each FieldSpec carries a
// value Kind (text, email, number, boolean or enum), a default value and an
// ordered list of Constraints. Constraints are pure predicates paired with a
// message and a rank, and EvaluateField reports the message of the first
// failing constraint only.
//
// Schemas can be assembled three ways: struct literals passed to
// DefineSchema, the fluent FieldBuilder returned by NewField, or a JSON/YAML
// document handed to Load. All three resolve to the same rule catalogue
// (required, minLength, maxLength, min, max, exclusiveMin, exclusiveMax,
// integer, pattern, email, url, accepted, oneOf) so renderers can map rules
// onto HTML attributes through Constraint.Rule and Constraint.Params.
//
// ExportDocument writes a Schema back out as a Document, which is how
// schemas imported from other formats are saved.
package schema
