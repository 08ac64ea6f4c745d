package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	KindText    = "text"
	KindEmail   = "email"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindEnum    = "enum"
)

// ErrNotANumber is returned by ParseInput when a number field receives text
// that cannot be parsed.
var ErrNotANumber = errors.New("schema: value is not a number")

// Kind is the closed set of value shapes a field can hold. The concrete kinds
// are TextKind, EmailKind, NumberKind, BooleanKind and EnumKind; callers
// switch over them exhaustively.
type Kind interface {
	Name() string
	isKind()
}

// TextKind stores free-form strings.
type TextKind struct{}

// EmailKind stores strings expected to hold an email address.
type EmailKind struct{}

// NumberKind stores float64 values. A nil value means "no number entered".
type NumberKind struct{}

// BooleanKind stores bool values.
type BooleanKind struct{}

// EnumKind stores the Value of one of its Options. Strings outside Options
// are kept as-is but constraints see them as "".
type EnumKind struct {
	Options []Option
}

// Option is a single selectable enum entry.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

func (TextKind) Name() string    { return KindText }
func (EmailKind) Name() string   { return KindEmail }
func (NumberKind) Name() string  { return KindNumber }
func (BooleanKind) Name() string { return KindBoolean }
func (EnumKind) Name() string    { return KindEnum }

func (TextKind) isKind()    {}
func (EmailKind) isKind()   {}
func (NumberKind) isKind()  {}
func (BooleanKind) isKind() {}
func (EnumKind) isKind()    {}

// Text returns the text kind.
func Text() Kind { return TextKind{} }

// Email returns the email kind.
func Email() Kind { return EmailKind{} }

// Number returns the number kind.
func Number() Kind { return NumberKind{} }

// Boolean returns the boolean kind.
func Boolean() Kind { return BooleanKind{} }

// Enum returns an enum kind over the given options.
func Enum(options ...Option) Kind {
	return EnumKind{Options: append([]Option(nil), options...)}
}

// Opt builds an enum option. An empty label falls back to the value.
func Opt(value, label string) Option {
	if strings.TrimSpace(label) == "" {
		label = value
	}
	return Option{Value: value, Label: label}
}

// Has reports whether value is one of the declared options.
func (k EnumKind) Has(value string) bool {
	for _, option := range k.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// ZeroValue returns the empty value for a kind: "" for text-like kinds, nil
// for numbers and false for booleans.
func ZeroValue(kind Kind) any {
	switch kind.(type) {
	case NumberKind:
		return nil
	case BooleanKind:
		return false
	default:
		return ""
	}
}

// Coerce checks value against the shape of kind, converting integer and
// float32 inputs to float64 for number fields. The boolean result is false
// when the value has the wrong shape.
func Coerce(kind Kind, value any) (any, bool) {
	switch kind.(type) {
	case TextKind, EmailKind, EnumKind:
		s, ok := value.(string)
		return s, ok
	case NumberKind:
		return coerceNumber(value)
	case BooleanKind:
		b, ok := value.(bool)
		return b, ok
	default:
		return nil, false
	}
}

func coerceNumber(value any) (any, bool) {
	switch n := value.(type) {
	case nil:
		return nil, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return nil, false
	}
}

// ParseInput converts raw text input (a form post, a terminal prompt) into a
// value of the kind's shape. Empty input yields the kind's zero value.
func ParseInput(kind Kind, raw string) (any, error) {
	switch kind.(type) {
	case NumberKind:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil, nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotANumber, raw)
		}
		return value, nil
	case BooleanKind:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "", "0", "false", "off", "no", "n":
			return false, nil
		case "1", "true", "on", "yes", "y":
			return true, nil
		default:
			return false, fmt.Errorf("schema: value %q is not a boolean", raw)
		}
	default:
		return raw, nil
	}
}

// FormatValue renders a stored value back to the text an input would show.
func FormatValue(kind Kind, value any) string {
	switch kind.(type) {
	case NumberKind:
		n, ok := value.(float64)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case BooleanKind:
		if b, ok := value.(bool); ok && b {
			return "true"
		}
		return "false"
	default:
		s, _ := value.(string)
		return s
	}
}

// constraintValue is the value constraints observe. Enum values outside the
// declared options collapse to "" so they behave as "nothing selected".
func constraintValue(kind Kind, value any) any {
	if enum, ok := kind.(EnumKind); ok {
		s, _ := value.(string)
		if !enum.Has(s) {
			return ""
		}
		return s
	}
	return value
}

// KindFromName resolves a kind identifier used in schema documents.
func KindFromName(name string, options []Option) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case KindText, "string", "textarea":
		return Text(), nil
	case KindEmail:
		return Email(), nil
	case KindNumber, "integer":
		return Number(), nil
	case KindBoolean, "bool", "checkbox":
		return Boolean(), nil
	case KindEnum, "select":
		if len(options) == 0 {
			return nil, errors.New("schema: enum kind requires options")
		}
		return Enum(options...), nil
	default:
		return nil, fmt.Errorf("schema: unknown kind %q", name)
	}
}
