package schema

// Widget hints tell renderers which control to use when the kind alone is
// ambiguous (a long text field rendered as a textarea, for instance).
const (
	WidgetTextarea = "textarea"
	WidgetPassword = "password"
)

// FieldSpec declares one field of a Schema.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Default     any
	Constraints []Constraint

	Label       string
	Placeholder string
	Description string
	Widget      string
}

// Options returns the enum options of the field, or nil for other kinds.
func (f FieldSpec) Options() []Option {
	if enum, ok := f.Kind.(EnumKind); ok {
		return append([]Option(nil), enum.Options...)
	}
	return nil
}

// DisplayLabel returns Label, falling back to Name.
func (f FieldSpec) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Constraint returns the first constraint with the given rule.
func (f FieldSpec) Constraint(rule string) (Constraint, bool) {
	for _, c := range f.Constraints {
		if c.Rule == rule {
			return c, true
		}
	}
	return Constraint{}, false
}

func (f FieldSpec) clone() FieldSpec {
	out := f
	if f.Constraints != nil {
		out.Constraints = make([]Constraint, len(f.Constraints))
		for i, c := range f.Constraints {
			out.Constraints[i] = c.clone()
		}
	}
	if enum, ok := f.Kind.(EnumKind); ok {
		out.Kind = Enum(enum.Options...)
	}
	return out
}

// FieldBuilder assembles a FieldSpec fluently. Constraints receive ranks in
// the order they are added.
//
//	schema.NewField("name", schema.Text()).
//		Label("Name").
//		MinLength(2, "Name must be at least 2 characters.").
//		Spec()
type FieldBuilder struct {
	spec FieldSpec
}

// NewField starts a builder for a field of the given kind.
func NewField(name string, kind Kind) *FieldBuilder {
	return &FieldBuilder{spec: FieldSpec{Name: name, Kind: kind}}
}

func (b *FieldBuilder) Label(label string) *FieldBuilder {
	b.spec.Label = label
	return b
}

func (b *FieldBuilder) Placeholder(placeholder string) *FieldBuilder {
	b.spec.Placeholder = placeholder
	return b
}

func (b *FieldBuilder) Description(description string) *FieldBuilder {
	b.spec.Description = description
	return b
}

func (b *FieldBuilder) Widget(widget string) *FieldBuilder {
	b.spec.Widget = widget
	return b
}

func (b *FieldBuilder) Default(value any) *FieldBuilder {
	b.spec.Default = value
	return b
}

// Constraint appends c with the next rank.
func (b *FieldBuilder) Constraint(c Constraint) *FieldBuilder {
	c.Rank = len(b.spec.Constraints) + 1
	b.spec.Constraints = append(b.spec.Constraints, c)
	return b
}

func (b *FieldBuilder) Required(msg string) *FieldBuilder {
	return b.Constraint(Required(msg))
}

func (b *FieldBuilder) MinLength(n int, msg string) *FieldBuilder {
	return b.Constraint(MinLength(n, msg))
}

func (b *FieldBuilder) MaxLength(n int, msg string) *FieldBuilder {
	return b.Constraint(MaxLength(n, msg))
}

func (b *FieldBuilder) Pattern(expr, msg string) *FieldBuilder {
	return b.Constraint(Pattern(expr, msg))
}

func (b *FieldBuilder) Email(msg string) *FieldBuilder {
	return b.Constraint(EmailAddress(msg))
}

func (b *FieldBuilder) URL(msg string) *FieldBuilder {
	return b.Constraint(URL(msg))
}

func (b *FieldBuilder) Min(n float64, msg string) *FieldBuilder {
	return b.Constraint(Min(n, msg))
}

func (b *FieldBuilder) Max(n float64, msg string) *FieldBuilder {
	return b.Constraint(Max(n, msg))
}

func (b *FieldBuilder) ExclusiveMin(n float64, msg string) *FieldBuilder {
	return b.Constraint(ExclusiveMin(n, msg))
}

func (b *FieldBuilder) ExclusiveMax(n float64, msg string) *FieldBuilder {
	return b.Constraint(ExclusiveMax(n, msg))
}

func (b *FieldBuilder) Accepted(msg string) *FieldBuilder {
	return b.Constraint(Accepted(msg))
}

func (b *FieldBuilder) OneOf(values []string, msg string) *FieldBuilder {
	return b.Constraint(OneOf(values, msg))
}

func (b *FieldBuilder) Integer(msg string) *FieldBuilder {
	return b.Constraint(Integer(msg))
}

func (b *FieldBuilder) Check(rule, msg string, check Predicate) *FieldBuilder {
	return b.Constraint(Custom(rule, msg, check))
}

// Spec returns a copy of the assembled FieldSpec.
func (b *FieldBuilder) Spec() FieldSpec {
	return b.spec.clone()
}
