package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func TestDefineSchema_PreservesFieldOrder(t *testing.T) {
	s, err := schema.DefineSchema(
		schema.NewField("name", schema.Text()).Spec(),
		schema.NewField("email", schema.Email()).Spec(),
		schema.NewField("age", schema.Number()).Spec(),
	)
	if err != nil {
		t.Fatalf("define schema: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "email", "age"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 fields, got %d", s.Len())
	}
}

func TestDefineSchema_Empty(t *testing.T) {
	if _, err := schema.DefineSchema(); !errors.Is(err, schema.ErrEmptySchema) {
		t.Fatalf("expected ErrEmptySchema, got %v", err)
	}
}

func TestDefineSchema_DuplicateField(t *testing.T) {
	_, err := schema.DefineSchema(
		schema.NewField("email", schema.Email()).Spec(),
		schema.NewField("email", schema.Text()).Spec(),
	)
	var dup *schema.DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}
	if dup.Name != "email" {
		t.Fatalf("unexpected duplicate name %q", dup.Name)
	}
}

func TestDefineSchema_InvalidDefault(t *testing.T) {
	cases := []struct {
		name string
		spec schema.FieldSpec
	}{
		{"text with number", schema.NewField("name", schema.Text()).Default(42).Spec()},
		{"number with string", schema.NewField("age", schema.Number()).Default("42").Spec()},
		{"boolean with string", schema.NewField("terms", schema.Boolean()).Default("yes").Spec()},
		{"enum with bool", schema.NewField("category", schema.Enum(schema.Opt("a", "A"))).Default(true).Spec()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.DefineSchema(tc.spec)
			var invalid *schema.InvalidDefaultError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidDefaultError, got %v", err)
			}
			if invalid.Field != tc.spec.Name {
				t.Fatalf("unexpected field %q", invalid.Field)
			}
		})
	}
}

func TestDefineSchema_DefaultsFollowKind(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("name", schema.Text()).Spec(),
		schema.NewField("age", schema.Number()).Spec(),
		schema.NewField("count", schema.Number()).Default(3).Spec(),
		schema.NewField("terms", schema.Boolean()).Spec(),
		schema.NewField("category", schema.Enum(schema.Opt("a", "A"))).Spec(),
	)

	want := map[string]any{
		"name":     "",
		"age":      nil,
		"count":    float64(3),
		"terms":    false,
		"category": "",
	}
	if diff := cmp.Diff(want, s.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestDefineSchema_RejectsConstraintForOtherKind(t *testing.T) {
	_, err := schema.DefineSchema(
		schema.NewField("terms", schema.Boolean()).MinLength(2, "").Spec(),
	)
	var invalid *schema.InvalidFieldError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
}

func TestDefineSchema_EnumNeedsOptions(t *testing.T) {
	_, err := schema.DefineSchema(schema.FieldSpec{Name: "category", Kind: schema.Enum()})
	var invalid *schema.InvalidFieldError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
}

func TestMustDefineSchema_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	schema.MustDefineSchema()
}

func TestSchema_FieldsAreCopies(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("category", schema.Enum(schema.Opt("a", "A"), schema.Opt("b", "B"))).
			Required("pick one").
			Spec(),
	)

	fields := s.Fields()
	fields[0].Name = "mutated"
	fields[0].Constraints[0].Message = "mutated"
	fields[0].Kind.(schema.EnumKind).Options[0].Value = "mutated"

	spec, ok := s.Field("category")
	if !ok {
		t.Fatalf("category missing after mutation")
	}
	if spec.Constraints[0].Message != "pick one" {
		t.Fatalf("constraint message leaked: %q", spec.Constraints[0].Message)
	}
	if diff := cmp.Diff([]schema.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}, spec.Options()); diff != "" {
		t.Fatalf("options leaked (-want +got):\n%s", diff)
	}
}

func TestEvaluateField_ReportsFirstFailingRank(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("code", schema.Text()).
			Required("required").
			MinLength(3, "too short").
			Pattern(`^[A-Z]+$`, "uppercase only").
			MaxLength(5, "too long").
			Spec(),
	)

	cases := []struct {
		value string
		want  string
	}{
		{"", "required"},
		{"ab", "too short"},
		{"abc", "uppercase only"},
		{"ABCDEF", "too long"},
		{"ABCD", ""},
	}
	for _, tc := range cases {
		got, err := schema.EvaluateField(s, "code", tc.value)
		if err != nil {
			t.Fatalf("evaluate %q: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("evaluate %q: want %q, got %q", tc.value, tc.want, got)
		}
	}
}

func TestEvaluateField_ShortCircuits(t *testing.T) {
	var calls []string
	track := func(rule string, ok bool) schema.Predicate {
		return func(any) bool {
			calls = append(calls, rule)
			return ok
		}
	}
	s := schema.MustDefineSchema(
		schema.NewField("name", schema.Text()).
			Check("first", "first failed", track("first", true)).
			Check("second", "second failed", track("second", false)).
			Check("third", "third failed", track("third", false)).
			Spec(),
	)

	got, err := schema.EvaluateField(s, "name", "x")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "second failed" {
		t.Fatalf("unexpected message %q", got)
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Fatalf("evaluation order mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateField_RankOrderBeatsDeclarationOrder(t *testing.T) {
	late := schema.Required("required")
	late.Rank = 2
	early := schema.MinLength(5, "too short")
	early.Rank = 1

	s := schema.MustDefineSchema(schema.FieldSpec{
		Name:        "name",
		Kind:        schema.Text(),
		Constraints: []schema.Constraint{late, early},
	})

	got, err := schema.EvaluateField(s, "name", "")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != "too short" {
		t.Fatalf("expected rank 1 message, got %q", got)
	}
}

func TestEvaluateField_CoercesNumberInputs(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("qty", schema.Number()).
			Min(10, "too small").
			Integer("whole numbers only").
			Spec(),
	)

	cases := []struct {
		value any
		want  string
	}{
		{5, "too small"},
		{int64(5), "too small"},
		{uint8(5), "too small"},
		{float32(10.5), "whole numbers only"},
		{12, ""},
		{5.0, "too small"},
	}
	for _, tc := range cases {
		got, err := schema.EvaluateField(s, "qty", tc.value)
		if err != nil {
			t.Fatalf("evaluate %#v: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("evaluate %#v: want %q, got %q", tc.value, tc.want, got)
		}
	}
}

func TestEvaluateField_WrongShape(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("qty", schema.Number()).Min(10, "too small").Spec(),
		schema.NewField("name", schema.Text()).Spec(),
	)

	_, err := schema.EvaluateField(s, "qty", "5")
	var invalid *schema.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if invalid.Field != "qty" || invalid.Kind != schema.KindNumber {
		t.Fatalf("unexpected error fields %+v", invalid)
	}

	if _, err := schema.EvaluateField(s, "name", 3); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError for text field, got %v", err)
	}
}

func TestEvaluateField_UnknownField(t *testing.T) {
	s := schema.MustDefineSchema(schema.NewField("name", schema.Text()).Spec())
	_, err := schema.EvaluateField(s, "missing", "")
	var unknown *schema.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if unknown.Name != "missing" {
		t.Fatalf("unexpected name %q", unknown.Name)
	}
}

func TestEvaluateField_EnumOutsideOptionsCountsAsEmpty(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("category", schema.Enum(schema.Opt("option1", ""), schema.Opt("option2", ""))).
			Required("Please select a category.").
			Spec(),
	)

	for _, value := range []string{"", "option9", "OPTION1"} {
		got, err := schema.EvaluateField(s, "category", value)
		if err != nil {
			t.Fatalf("evaluate %q: %v", value, err)
		}
		if got != "Please select a category." {
			t.Fatalf("value %q: expected required message, got %q", value, got)
		}
	}

	got, _ := schema.EvaluateField(s, "category", "option2")
	if got != "" {
		t.Fatalf("declared option should pass, got %q", got)
	}
}
