package schema_test

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestConstraints(t *testing.T) {
	cases := []struct {
		name  string
		c     schema.Constraint
		value any
		want  bool
	}{
		{"required empty", schema.Required(""), "", false},
		{"required whitespace", schema.Required(""), "   ", false},
		{"required text", schema.Required(""), "x", true},
		{"required nil number", schema.Required(""), nil, false},
		{"required zero number", schema.Required(""), float64(0), true},
		{"required false bool", schema.Required(""), false, true},
		{"min length inclusive", schema.MinLength(2, ""), "ab", true},
		{"min length short", schema.MinLength(2, ""), "a", false},
		{"min length empty", schema.MinLength(2, ""), "", false},
		{"min length counts runes", schema.MinLength(2, ""), "éé", true},
		{"max length inclusive", schema.MaxLength(3, ""), "abc", true},
		{"max length long", schema.MaxLength(3, ""), "abcd", false},
		{"email valid", schema.EmailAddress(""), "a@b.com", true},
		{"email invalid", schema.EmailAddress(""), "not-an-email", false},
		{"email empty", schema.EmailAddress(""), "", false},
		{"url valid", schema.URL(""), "https://example.com/x", true},
		{"url invalid", schema.URL(""), "example", false},
		{"pattern match", schema.Pattern(`^\d+$`, ""), "123", true},
		{"pattern miss", schema.Pattern(`^\d+$`, ""), "12a", false},
		{"min inclusive", schema.Min(1, ""), float64(1), true},
		{"min below", schema.Min(1, ""), float64(0.5), false},
		{"min nil passes", schema.Min(1, ""), nil, true},
		{"max inclusive", schema.Max(10, ""), float64(10), true},
		{"max above", schema.Max(10, ""), float64(10.1), false},
		{"exclusive min equal", schema.ExclusiveMin(0, ""), float64(0), false},
		{"exclusive min above", schema.ExclusiveMin(0, ""), float64(0.1), true},
		{"exclusive max equal", schema.ExclusiveMax(5, ""), float64(5), false},
		{"accepted true", schema.Accepted(""), true, true},
		{"accepted false", schema.Accepted(""), false, false},
		{"one of listed", schema.OneOf([]string{"free", "pro"}, ""), "pro", true},
		{"one of unlisted", schema.OneOf([]string{"free", "pro"}, ""), "team", false},
		{"one of empty", schema.OneOf([]string{"free", "pro"}, ""), "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Check(tc.value); got != tc.want {
				t.Fatalf("check(%#v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestConstraints_DefaultMessages(t *testing.T) {
	if got := schema.MinLength(3, "").Message; got != "Must be at least 3 characters" {
		t.Fatalf("unexpected default message %q", got)
	}
	if got := schema.Max(2.5, "").Message; got != "Must be at most 2.5" {
		t.Fatalf("unexpected default message %q", got)
	}
	if got := schema.Required("  Custom  ").Message; got != "Custom" {
		t.Fatalf("expected trimmed custom message, got %q", got)
	}
}

func TestConstraints_Params(t *testing.T) {
	if got := schema.MaxLength(500, "").Param("value"); got != "500" {
		t.Fatalf("unexpected maxLength param %q", got)
	}
	if got := schema.Pattern(`^a`, "").Param("pattern"); got != "^a" {
		t.Fatalf("unexpected pattern param %q", got)
	}
	if got := schema.Required("").Param("value"); got != "" {
		t.Fatalf("expected empty param, got %q", got)
	}
}

func TestPatternE_InvalidExpression(t *testing.T) {
	if _, err := schema.PatternE("(", ""); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestConstraint_AppliesTo(t *testing.T) {
	if schema.MinLength(1, "").AppliesTo(schema.Number()) {
		t.Fatalf("minLength should not apply to numbers")
	}
	if !schema.Min(1, "").AppliesTo(schema.Number()) {
		t.Fatalf("min should apply to numbers")
	}
	if !schema.Required("").AppliesTo(schema.Boolean()) {
		t.Fatalf("required applies to every kind")
	}
}

func TestParseInput(t *testing.T) {
	n, err := schema.ParseInput(schema.Number(), " 4.5 ")
	if err != nil || n != 4.5 {
		t.Fatalf("parse number: %v %v", n, err)
	}
	n, err = schema.ParseInput(schema.Number(), "")
	if err != nil || n != nil {
		t.Fatalf("empty number should be nil: %v %v", n, err)
	}
	if _, err := schema.ParseInput(schema.Number(), "four"); err == nil {
		t.Fatalf("expected parse error")
	}
	b, err := schema.ParseInput(schema.Boolean(), "on")
	if err != nil || b != true {
		t.Fatalf("parse bool: %v %v", b, err)
	}
	s, err := schema.ParseInput(schema.Text(), " keep spaces ")
	if err != nil || s != " keep spaces " {
		t.Fatalf("text should be unchanged: %q %v", s, err)
	}
}
