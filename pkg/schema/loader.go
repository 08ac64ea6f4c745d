package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the declarative form of a schema accepted by Load.
//
//	fields:
//	  - name: email
//	    kind: email
//	    label: Email
//	    constraints:
//	      - rule: email
//	        message: Please enter a valid email address.
type Document struct {
	Fields []FieldDocument `json:"fields" yaml:"fields"`
}

// FieldDocument describes one field inside a Document.
type FieldDocument struct {
	Name        string               `json:"name" yaml:"name"`
	Kind        string               `json:"kind" yaml:"kind"`
	Label       string               `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string               `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Widget      string               `json:"widget,omitempty" yaml:"widget,omitempty"`
	Options     []Option             `json:"options,omitempty" yaml:"options,omitempty"`
	Default     any                  `json:"default,omitempty" yaml:"default,omitempty"`
	Constraints []ConstraintDocument `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// ConstraintDocument names a catalogue rule. Value carries the bound, length,
// pattern or list of allowed values depending on the rule.
type ConstraintDocument struct {
	Rule      string `json:"rule" yaml:"rule"`
	Value     any    `json:"value,omitempty" yaml:"value,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	SkipEmpty bool   `json:"skipEmpty,omitempty" yaml:"skipEmpty,omitempty"`
}

// Load parses a JSON or YAML schema document and defines a Schema from it.
func Load(data []byte) (*Schema, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Schema()
}

// LoadFile reads path and calls Load.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return s, nil
}

// ParseDocument decodes data as JSON, falling back to YAML.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("schema: document is empty")
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("schema: parse document: %w", err)
	}
	return doc, nil
}

// Schema converts the document into FieldSpecs and calls DefineSchema.
func (d Document) Schema() (*Schema, error) {
	specs := make([]FieldSpec, 0, len(d.Fields))
	for _, fd := range d.Fields {
		spec, err := fd.Spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return DefineSchema(specs...)
}

// Spec converts a single field document.
func (fd FieldDocument) Spec() (FieldSpec, error) {
	options := make([]Option, len(fd.Options))
	for i, o := range fd.Options {
		options[i] = Opt(o.Value, o.Label)
	}
	kind, err := KindFromName(fd.Kind, options)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("schema: field %q: %w", fd.Name, err)
	}

	widget := fd.Widget
	if widget == "" && strings.EqualFold(strings.TrimSpace(fd.Kind), WidgetTextarea) {
		widget = WidgetTextarea
	}

	b := NewField(fd.Name, kind).
		Label(fd.Label).
		Placeholder(fd.Placeholder).
		Description(fd.Description).
		Widget(widget).
		Default(fd.Default)

	for idx, cd := range fd.Constraints {
		c, err := cd.Constraint()
		if err != nil {
			return FieldSpec{}, fmt.Errorf("schema: field %q constraint %d: %w", fd.Name, idx, err)
		}
		b.Constraint(c)
	}
	return b.Spec(), nil
}

// Constraint resolves the document entry against the rule catalogue.
func (cd ConstraintDocument) Constraint() (Constraint, error) {
	c, err := cd.resolve()
	if err != nil || !cd.SkipEmpty {
		return c, err
	}
	return SkipEmpty(c), nil
}

func (cd ConstraintDocument) resolve() (Constraint, error) {
	switch strings.TrimSpace(cd.Rule) {
	case RuleRequired:
		return Required(cd.Message), nil
	case RuleEmail:
		return EmailAddress(cd.Message), nil
	case RuleURL:
		return URL(cd.Message), nil
	case RuleAccepted:
		return Accepted(cd.Message), nil
	case RuleInteger:
		return Integer(cd.Message), nil
	case RuleMinLength, RuleMaxLength:
		n, err := docNumber(cd.Value)
		if err != nil {
			return Constraint{}, err
		}
		if n < 0 || n != math.Trunc(n) {
			return Constraint{}, fmt.Errorf("%s needs a non-negative integer, got %v", cd.Rule, cd.Value)
		}
		if cd.Rule == RuleMinLength {
			return MinLength(int(n), cd.Message), nil
		}
		return MaxLength(int(n), cd.Message), nil
	case RuleMin, RuleMax, RuleExclusiveMin, RuleExclusiveMax:
		n, err := docNumber(cd.Value)
		if err != nil {
			return Constraint{}, err
		}
		switch cd.Rule {
		case RuleMin:
			return Min(n, cd.Message), nil
		case RuleMax:
			return Max(n, cd.Message), nil
		case RuleExclusiveMin:
			return ExclusiveMin(n, cd.Message), nil
		default:
			return ExclusiveMax(n, cd.Message), nil
		}
	case RulePattern:
		expr, ok := cd.Value.(string)
		if !ok || expr == "" {
			return Constraint{}, fmt.Errorf("pattern needs a string value")
		}
		return PatternE(expr, cd.Message)
	case RuleOneOf:
		values, err := docStrings(cd.Value)
		if err != nil {
			return Constraint{}, err
		}
		return OneOf(values, cd.Message), nil
	default:
		return Constraint{}, fmt.Errorf("unknown rule %q", cd.Rule)
	}
}

func docNumber(value any) (float64, error) {
	if n, ok := coerceNumber(value); ok && n != nil {
		return n.(float64), nil
	}
	if s, ok := value.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("expected a number, got %v", value)
}

func docStrings(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("oneOf values must be strings, got %v", item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("oneOf needs a list of strings")
	}
}
