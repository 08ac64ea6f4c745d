package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Vendor extensions read from property schemas.
const (
	ExtensionMessages    = "x-formkit-messages"
	ExtensionWidget      = "x-formkit-widget"
	ExtensionPlaceholder = "x-formkit-placeholder"
	ExtensionOrder       = "x-formkit-order"
	ExtensionLabels      = "x-formkit-labels"
	ExtensionAccepted    = "x-formkit-accepted"
)

// ErrNoFormBody is returned when an operation has no object request body.
var ErrNoFormBody = errors.New("openapi: operation has no object request body")

// Import is the outcome of converting one operation.
type Import struct {
	Operation Operation
	Schema    *schema.Schema
	// Skipped lists properties that have no form equivalent (objects, arrays).
	Skipped []string
}

// ImportOperation parses doc and converts the request body of operation id
// into a schema.
func ImportOperation(ctx context.Context, doc Document, id string, options ...ParseOption) (Import, error) {
	operations, err := Operations(ctx, doc, options...)
	if err != nil {
		return Import{}, err
	}
	op, ok := operations[id]
	if !ok {
		return Import{}, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	s, skipped, err := SchemaFromOperation(op)
	if err != nil {
		return Import{}, err
	}
	return Import{Operation: op, Schema: s, Skipped: skipped}, nil
}

// SchemaFromOperation maps each top-level request body property to a field.
// Fields with x-formkit-order come first in that order, the rest by name.
func SchemaFromOperation(op Operation) (*schema.Schema, []string, error) {
	if !op.HasRequestBody() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoFormBody, op.ID)
	}
	properties, required := flatten(op.request.Value)
	if len(properties) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoFormBody, op.ID)
	}

	type entry struct {
		spec     schema.FieldSpec
		order    float64
		hasOrder bool
	}
	var (
		entries []entry
		skipped []string
	)
	for name, ref := range properties {
		if ref == nil || ref.Value == nil {
			skipped = append(skipped, name)
			continue
		}
		spec, ok, err := fieldFromProperty(name, ref.Value, required[name])
		if err != nil {
			return nil, nil, fmt.Errorf("openapi: %s property %q: %w", op.ID, name, err)
		}
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		order, hasOrder := extNumber(ref.Value.Extensions, ExtensionOrder)
		entries = append(entries, entry{spec: spec, order: order, hasOrder: hasOrder})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.hasOrder && a.order != b.order {
			return a.order < b.order
		}
		return a.spec.Name < b.spec.Name
	})
	sort.Strings(skipped)

	specs := make([]schema.FieldSpec, len(entries))
	for i, e := range entries {
		specs[i] = e.spec
	}
	s, err := schema.DefineSchema(specs...)
	if err != nil {
		return nil, nil, fmt.Errorf("openapi: %s: %w", op.ID, err)
	}
	return s, skipped, nil
}

// flatten merges the object's own properties with those of its allOf members.
func flatten(src *openapi3.Schema) (openapi3.Schemas, map[string]bool) {
	properties := openapi3.Schemas{}
	required := map[string]bool{}
	var walk func(s *openapi3.Schema)
	walk = func(s *openapi3.Schema) {
		if s == nil {
			return
		}
		for _, member := range s.AllOf {
			if member != nil {
				walk(member.Value)
			}
		}
		for name, prop := range s.Properties {
			properties[name] = prop
		}
		for _, name := range s.Required {
			required[name] = true
		}
	}
	walk(src)
	return properties, required
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) (schema.FieldSpec, bool, error) {
	typ := firstType(prop.Type)
	if typ == "" && len(prop.Enum) > 0 {
		typ = openapi3.TypeString
	}
	format := strings.ToLower(prop.Format)

	var kind schema.Kind
	switch {
	case typ == openapi3.TypeString && len(prop.Enum) > 0:
		kind = schema.Enum(enumOptions(prop)...)
	case typ == openapi3.TypeString && format == "email":
		kind = schema.Email()
	case typ == openapi3.TypeString:
		kind = schema.Text()
	case typ == openapi3.TypeNumber, typ == openapi3.TypeInteger:
		kind = schema.Number()
	case typ == openapi3.TypeBoolean:
		kind = schema.Boolean()
		// Required never fails for booleans; x-formkit-accepted demands true.
		required = false
	default:
		return schema.FieldSpec{}, false, nil
	}

	label := strings.TrimSpace(prop.Title)
	if label == "" {
		label = humanize(name)
	}
	widget := extString(prop.Extensions, ExtensionWidget)
	if widget == "" && format == "password" {
		widget = schema.WidgetPassword
	}
	messages := extMessages(prop.Extensions)

	b := schema.NewField(name, kind).
		Label(label).
		Description(prop.Description).
		Placeholder(extString(prop.Extensions, ExtensionPlaceholder)).
		Widget(widget)
	if prop.Default != nil {
		b.Default(prop.Default)
	}
	if required {
		b.Required(messages[schema.RuleRequired])
	}

	// Optional text fields accept "" even when a format rule would reject it.
	addText := func(c schema.Constraint) {
		if !required {
			c = schema.SkipEmpty(c)
		}
		b.Constraint(c)
	}

	switch kind.(type) {
	case schema.EmailKind:
		addText(schema.EmailAddress(messages[schema.RuleEmail]))
	case schema.NumberKind:
		if typ == openapi3.TypeInteger {
			b.Integer(messages[schema.RuleInteger])
		}
		if prop.Min != nil {
			if prop.ExclusiveMin {
				b.ExclusiveMin(*prop.Min, messages[schema.RuleExclusiveMin])
			} else {
				b.Min(*prop.Min, messages[schema.RuleMin])
			}
		}
		if prop.Max != nil {
			if prop.ExclusiveMax {
				b.ExclusiveMax(*prop.Max, messages[schema.RuleExclusiveMax])
			} else {
				b.Max(*prop.Max, messages[schema.RuleMax])
			}
		}
	case schema.BooleanKind:
		if accepted, _ := prop.Extensions[ExtensionAccepted].(bool); accepted {
			b.Accepted(messages[schema.RuleAccepted])
		}
	}

	if typ == openapi3.TypeString && len(prop.Enum) == 0 {
		if format == "uri" || format == "url" {
			addText(schema.URL(messages[schema.RuleURL]))
		}
		if prop.MinLength > 0 {
			addText(schema.MinLength(clampInt(prop.MinLength), messages[schema.RuleMinLength]))
		}
		if prop.MaxLength != nil {
			b.MaxLength(clampInt(*prop.MaxLength), messages[schema.RuleMaxLength])
		}
		if prop.Pattern != "" {
			c, err := schema.PatternE(prop.Pattern, messages[schema.RulePattern])
			if err != nil {
				return schema.FieldSpec{}, false, err
			}
			addText(c)
		}
	}
	return b.Spec(), true, nil
}

func enumOptions(prop *openapi3.Schema) []schema.Option {
	labels := map[string]string{}
	if raw, ok := prop.Extensions[ExtensionLabels].(map[string]any); ok {
		for value, label := range raw {
			if s, ok := label.(string); ok {
				labels[value] = s
			}
		}
	}
	options := make([]schema.Option, 0, len(prop.Enum))
	for _, v := range prop.Enum {
		value := fmt.Sprint(v)
		label := labels[value]
		if label == "" {
			label = humanize(value)
		}
		options = append(options, schema.Opt(value, label))
	}
	return options
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func extString(ext map[string]any, key string) string {
	s, _ := ext[key].(string)
	return strings.TrimSpace(s)
}

func extNumber(ext map[string]any, key string) (float64, bool) {
	n, ok := ext[key].(float64)
	return n, ok
}

func extMessages(ext map[string]any) map[string]string {
	out := map[string]string{}
	raw, ok := ext[ExtensionMessages].(map[string]any)
	if !ok {
		return out
	}
	for rule, msg := range raw {
		if s, ok := msg.(string); ok {
			out[rule] = s
		}
	}
	return out
}

// humanize turns "first_name", "first-name" or "firstName" into "First name".
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0:
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return name
	}
	out := strings.Join(words, " ")
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// clampInt converts an OpenAPI length bound, saturating at math.MaxInt.
func clampInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
