package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Schema is an immutable, ordered set of FieldSpecs. Field order drives
// rendering and tab order; fields validate independently of each other.
type Schema struct {
	fields []FieldSpec
	index  map[string]int
}

// DefineSchema validates specs and freezes them into a Schema. Constraints are
// stable-sorted by Rank and nil defaults are replaced by the kind's zero value.
func DefineSchema(specs ...FieldSpec) (*Schema, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySchema
	}

	s := &Schema{
		fields: make([]FieldSpec, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}

	for _, raw := range specs {
		spec := raw.clone()
		spec.Name = strings.TrimSpace(spec.Name)
		if spec.Name == "" {
			return nil, &InvalidFieldError{Field: raw.Name, Reason: "name is required"}
		}
		if _, exists := s.index[spec.Name]; exists {
			return nil, &DuplicateFieldError{Name: spec.Name}
		}
		if spec.Kind == nil {
			return nil, &InvalidFieldError{Field: spec.Name, Reason: "kind is required"}
		}
		if enum, ok := spec.Kind.(EnumKind); ok && len(enum.Options) == 0 {
			return nil, &InvalidFieldError{Field: spec.Name, Reason: "enum kind requires options"}
		}

		if spec.Default == nil {
			spec.Default = ZeroValue(spec.Kind)
		} else {
			value, ok := Coerce(spec.Kind, spec.Default)
			if !ok {
				return nil, &InvalidDefaultError{Field: spec.Name, Kind: spec.Kind.Name(), Value: spec.Default}
			}
			spec.Default = value
		}

		for _, c := range spec.Constraints {
			if c.Check == nil {
				return nil, &InvalidFieldError{Field: spec.Name, Reason: fmt.Sprintf("constraint %q has no predicate", c.Rule)}
			}
			if !c.AppliesTo(spec.Kind) {
				return nil, &InvalidFieldError{Field: spec.Name, Reason: fmt.Sprintf("constraint %q cannot evaluate %s values", c.Rule, spec.Kind.Name())}
			}
		}
		sort.SliceStable(spec.Constraints, func(i, j int) bool {
			return spec.Constraints[i].Rank < spec.Constraints[j].Rank
		})

		s.index[spec.Name] = len(s.fields)
		s.fields = append(s.fields, spec)
	}

	return s, nil
}

// MustDefineSchema panics if the schema is malformed. Useful for package-level
// schema declarations.
func MustDefineSchema(specs ...FieldSpec) *Schema {
	s, err := DefineSchema(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len reports the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Names returns field names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns copies of the field specs in declaration order.
func (s *Schema) Fields() []FieldSpec {
	if s == nil {
		return nil
	}
	out := make([]FieldSpec, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// Field returns a copy of the named field spec.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	if s == nil {
		return FieldSpec{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[idx].clone(), true
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Defaults returns the default value of every field keyed by name.
func (s *Schema) Defaults() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = f.Default
	}
	return out
}

// EvaluateField runs the constraints of name against value in rank order and
// returns the message of the first one that fails, or "" when all pass. Later
// constraints are not evaluated once one fails. Number fields accept any Go
// integer or float type; a value of the wrong shape is an *InvalidValueError.
func EvaluateField(s *Schema, name string, value any) (string, error) {
	if s == nil {
		return "", &UnknownFieldError{Name: name}
	}
	idx, ok := s.index[name]
	if !ok {
		return "", &UnknownFieldError{Name: name}
	}
	spec := &s.fields[idx]
	coerced, ok := Coerce(spec.Kind, value)
	if !ok {
		return "", &InvalidValueError{Field: name, Kind: spec.Kind.Name(), Value: value}
	}
	observed := constraintValue(spec.Kind, coerced)
	for _, c := range spec.Constraints {
		if !c.Check(observed) {
			return c.Message, nil
		}
	}
	return "", nil
}
