package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/components/datatable"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
	err          error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestFill_CreateItemRepromptsInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"J", "Jane", "jane@example.com"},
		selectIdx: []int{1},
		textAreas: []string{"too short", "A long enough description"},
		confirm:   []bool{false, true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	f := form.MustNew(page.CreateItemSchema())
	out, err := r.Fill(context.Background(), f)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := `{"category":"option2","description":"A long enough description","email":"jane@example.com","name":"Jane","terms":true}`
	if string(out) != want {
		t.Fatalf("unexpected payload\nwant %s\n got %s", want, out)
	}
	if f.Status() != form.StatusSubmitSucceeded {
		t.Fatalf("expected submitted form, got %s", f.Status())
	}

	wantInfo := []string{
		"✗ Name: Name must be at least 2 characters.",
		"✗ Description: Description must be at least 10 characters.",
		"✗ Accept terms and conditions: You must accept the terms and conditions.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_NumberInput(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("quantity", schema.Number()).Label("Quantity").Min(1, "Too small").Spec(),
	)
	driver := &stubDriver{inputs: []string{"abc", "0", "3"}}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Fill(context.Background(), form.MustNew(s))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if string(out) != "quantity=3\n" {
		t.Fatalf("unexpected payload %q", out)
	}
	wantInfo := []string{"✗ Quantity: Must be a number", "✗ Quantity: Too small"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_FormEncodedWithTransformer(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("name", schema.Text()).Spec(),
		schema.NewField("ok", schema.Boolean()).Spec(),
	)
	driver := &stubDriver{inputs: []string{"Ada"}, confirm: []bool{true}}
	r, err := New(
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatFormURLEncoded),
		WithSubmitTransformer(func(v form.Values) (form.Values, error) {
			v["source"] = "cli"
			return v, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.PayloadContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected payload content type %s", r.PayloadContentType())
	}

	out, err := r.Fill(context.Background(), form.MustNew(s))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if string(out) != "name=Ada&ok=true&source=cli" {
		t.Fatalf("unexpected payload %q", out)
	}
}

func TestFill_MaxAttempts(t *testing.T) {
	s := schema.MustDefineSchema(
		schema.NewField("name", schema.Text()).MinLength(2, "").Spec(),
	)
	driver := &stubDriver{inputs: []string{"J"}}
	r, err := New(WithPromptDriver(driver), WithMaxAttempts(1))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	_, err = r.Fill(context.Background(), form.MustNew(s))
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestFill_Aborted(t *testing.T) {
	s := schema.MustDefineSchema(schema.NewField("name", schema.Text()).Spec())
	r, err := New(WithPromptDriver(&stubDriver{err: ErrAborted}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Fill(context.Background(), form.MustNew(s)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestRender_Text(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	records, err := datatable.DefaultRecords()
	if err != nil {
		t.Fatalf("records: %v", err)
	}

	f := form.MustNew(page.CreateItemSchema())
	f.AttemptSubmit(nil)

	cases := []struct {
		name  string
		page  page.Page
		parts []string
	}{
		{"dashboard", page.SampleDashboard(), []string{"Dashboard\n=========", "$45,231.89", "(no chart data)", "Activity Item 3"}},
		{"table", page.UsersTable(records, "john"), []string{"Search: john", "John Doe", "Pending", "Showing 2 of 4 results"}},
		{"empty table", page.UsersTable(records, "zzz"), []string{"No results found", "Showing 0 of 4 results"}},
		{"form", page.CreateItemView(f), []string{"Create New Item", "Category *: (none)", "! Please enter a valid email address.", "0/500 characters", "Status: submit-failed"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := r.Render(context.Background(), tc.page, render.RenderOptions{})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, part := range tc.parts {
				if !strings.Contains(string(out), part) {
					t.Fatalf("output missing %q\n%s", part, out)
				}
			}
		})
	}
}
