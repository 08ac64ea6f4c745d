package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Canonical rule identifiers. Parameters are kept as strings (Params["value"]
// for bounds, Params["pattern"] for expressions) so renderers can copy them
// onto HTML attributes without reformatting.
const (
	RuleRequired     = "required"
	RuleMinLength    = "minLength"
	RuleMaxLength    = "maxLength"
	RuleMin          = "min"
	RuleMax          = "max"
	RuleExclusiveMin = "exclusiveMin"
	RuleExclusiveMax = "exclusiveMax"
	RulePattern      = "pattern"
	RuleEmail        = "email"
	RuleURL          = "url"
	RuleAccepted     = "accepted"
	RuleOneOf        = "oneOf"
	RuleInteger      = "integer"
	RuleCustom       = "custom"
)

var validate = validator.New()

// Predicate reports whether a value satisfies a constraint. Predicates must be
// pure and total over the shape of the field's kind.
type Predicate func(value any) bool

// Constraint pairs a predicate with the message surfaced when it fails. Rank
// orders evaluation; equal ranks keep declaration order.
type Constraint struct {
	Rule    string
	Params  map[string]string
	Message string
	Rank    int
	Check   Predicate

	// SkipEmpty records that "" passes regardless of Check (see SkipEmpty).
	SkipEmpty bool

	// kinds restricts the kinds the constraint can evaluate. Nil means any.
	kinds []string
}

// AppliesTo reports whether the constraint can evaluate values of kind.
func (c Constraint) AppliesTo(kind Kind) bool {
	if len(c.kinds) == 0 || kind == nil {
		return true
	}
	name := kind.Name()
	for _, k := range c.kinds {
		if k == name {
			return true
		}
	}
	return false
}

// Param returns a rule parameter or "".
func (c Constraint) Param(key string) string {
	if c.Params == nil {
		return ""
	}
	return c.Params[key]
}

func (c Constraint) clone() Constraint {
	out := c
	if c.Params != nil {
		out.Params = make(map[string]string, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	out.kinds = append([]string(nil), c.kinds...)
	return out
}

var stringKinds = []string{KindText, KindEmail, KindEnum}

// Required fails for "", whitespace-only strings and nil numbers. Booleans
// always satisfy it; use Accepted to demand true.
func Required(msg string) Constraint {
	return Constraint{
		Rule:    RuleRequired,
		Message: messageOr(msg, "This field is required"),
		Check: func(value any) bool {
			switch v := value.(type) {
			case nil:
				return false
			case string:
				return strings.TrimSpace(v) != ""
			default:
				return true
			}
		},
	}
}

// MinLength requires at least n characters. The empty string counts as zero
// characters, so a positive bound also rejects "".
func MinLength(n int, msg string) Constraint {
	return Constraint{
		Rule:    RuleMinLength,
		Params:  map[string]string{"value": strconv.Itoa(n)},
		Message: messageOr(msg, fmt.Sprintf("Must be at least %d characters", n)),
		Check: func(value any) bool {
			return utf8.RuneCountInString(asString(value)) >= n
		},
		kinds: stringKinds,
	}
}

// MaxLength allows at most n characters.
func MaxLength(n int, msg string) Constraint {
	return Constraint{
		Rule:    RuleMaxLength,
		Params:  map[string]string{"value": strconv.Itoa(n)},
		Message: messageOr(msg, fmt.Sprintf("Must be at most %d characters", n)),
		Check: func(value any) bool {
			return utf8.RuneCountInString(asString(value)) <= n
		},
		kinds: stringKinds,
	}
}

// Pattern requires the value to match expr. It panics when expr does not
// compile; use PatternE to get the error instead.
func Pattern(expr, msg string) Constraint {
	c, err := PatternE(expr, msg)
	if err != nil {
		panic(err)
	}
	return c
}

// PatternE is Pattern returning compile errors.
func PatternE(expr, msg string) (Constraint, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Constraint{}, fmt.Errorf("schema: compile pattern %q: %w", expr, err)
	}
	return Constraint{
		Rule:    RulePattern,
		Params:  map[string]string{"pattern": expr},
		Message: messageOr(msg, "Invalid format"),
		Check: func(value any) bool {
			return re.MatchString(asString(value))
		},
		kinds: stringKinds,
	}, nil
}

// EmailAddress requires a syntactically valid email address. "" fails.
func EmailAddress(msg string) Constraint {
	return Constraint{
		Rule:    RuleEmail,
		Message: messageOr(msg, "Invalid email address"),
		Check: func(value any) bool {
			s := asString(value)
			if s == "" {
				return false
			}
			return validate.Var(s, "email") == nil
		},
		kinds: stringKinds,
	}
}

// URL requires an absolute URL. "" fails.
func URL(msg string) Constraint {
	return Constraint{
		Rule:    RuleURL,
		Message: messageOr(msg, "Invalid URL"),
		Check: func(value any) bool {
			s := asString(value)
			if s == "" {
				return false
			}
			return validate.Var(s, "url") == nil
		},
		kinds: stringKinds,
	}
}

// Min requires value >= n. A nil number passes; pair with Required to demand
// a value.
func Min(n float64, msg string) Constraint {
	return numericBound(RuleMin, n, messageOr(msg, "Must be at least "+formatFloat(n)), func(v float64) bool { return v >= n })
}

// Max requires value <= n.
func Max(n float64, msg string) Constraint {
	return numericBound(RuleMax, n, messageOr(msg, "Must be at most "+formatFloat(n)), func(v float64) bool { return v <= n })
}

// ExclusiveMin requires value > n.
func ExclusiveMin(n float64, msg string) Constraint {
	return numericBound(RuleExclusiveMin, n, messageOr(msg, "Must be greater than "+formatFloat(n)), func(v float64) bool { return v > n })
}

// ExclusiveMax requires value < n.
func ExclusiveMax(n float64, msg string) Constraint {
	return numericBound(RuleExclusiveMax, n, messageOr(msg, "Must be less than "+formatFloat(n)), func(v float64) bool { return v < n })
}

func numericBound(rule string, n float64, msg string, ok func(float64) bool) Constraint {
	return Constraint{
		Rule:    rule,
		Params:  map[string]string{"value": formatFloat(n)},
		Message: msg,
		Check: func(value any) bool {
			v, isNumber := value.(float64)
			if !isNumber {
				return true
			}
			return ok(v)
		},
		kinds: []string{KindNumber},
	}
}

// Accepted requires a boolean field to be true (terms and conditions).
func Accepted(msg string) Constraint {
	return Constraint{
		Rule:    RuleAccepted,
		Message: messageOr(msg, "This field must be accepted"),
		Check: func(value any) bool {
			b, _ := value.(bool)
			return b
		},
		kinds: []string{KindBoolean},
	}
}

// OneOf restricts a string field to a fixed set of values. "" passes so the
// field can stay optional.
func OneOf(values []string, msg string) Constraint {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return Constraint{
		Rule:    RuleOneOf,
		Params:  map[string]string{"values": strings.Join(values, ",")},
		Message: messageOr(msg, "Must be one of: "+strings.Join(values, ", ")),
		Check: func(value any) bool {
			s := asString(value)
			if s == "" {
				return true
			}
			_, ok := allowed[s]
			return ok
		},
		kinds: stringKinds,
	}
}

// Integer requires a whole number. A nil number passes.
func Integer(msg string) Constraint {
	return Constraint{
		Rule:    RuleInteger,
		Message: messageOr(msg, "Must be a whole number"),
		Check: func(value any) bool {
			v, ok := value.(float64)
			if !ok {
				return true
			}
			return v == math.Trunc(v)
		},
		kinds: []string{KindNumber},
	}
}

// SkipEmpty lets "" satisfy c, for optional text fields that still carry a
// format rule such as email, url or minLength.
func SkipEmpty(c Constraint) Constraint {
	if c.SkipEmpty {
		return c
	}
	check := c.Check
	c.Check = func(value any) bool {
		if s, ok := value.(string); ok && s == "" {
			return true
		}
		return check(value)
	}
	c.SkipEmpty = true
	return c
}

// Custom wraps an arbitrary predicate. rule names the check for renderers and
// logs; it defaults to "custom".
func Custom(rule, msg string, check Predicate) Constraint {
	if strings.TrimSpace(rule) == "" {
		rule = RuleCustom
	}
	return Constraint{
		Rule:    rule,
		Message: messageOr(msg, "Invalid value"),
		Check:   check,
	}
}

func messageOr(msg, fallback string) string {
	if trimmed := strings.TrimSpace(msg); trimmed != "" {
		return trimmed
	}
	return fallback
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
