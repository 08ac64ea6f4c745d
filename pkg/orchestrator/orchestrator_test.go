package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

var itemsSource = openapi.SourceFromFile(filepath.Join("testdata", "items.yaml"))

func TestGenerate_DefaultRenderers(t *testing.T) {
	orch := orchestrator.New()

	cases := []struct {
		name     string
		renderer string
		parts    []string
	}{
		{
			name: "html",
			parts: []string{
				"<title>Create a new item</title>",
				`action="/items"`,
				`method="post"`,
				`placeholder="Enter your name"`,
				`<option value="option2">Option 2</option>`,
				`data-status="editing"`,
			},
		},
		{
			name:     "tui",
			renderer: "tui",
			parts: []string{
				"Create a new item\n=================",
				"Name *: ",
				"Category *: (none)",
				"Accept terms *: [ ]",
				"0/500 characters",
				"Status: editing",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
				Source:      itemsSource,
				OperationID: "createItem",
				Renderer:    tc.renderer,
			})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			for _, part := range tc.parts {
				if !strings.Contains(string(out), part) {
					t.Fatalf("output missing %q\n%s", part, out)
				}
			}
		})
	}
}

func TestGenerate_FromDocumentWithCaptureRenderer(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "items.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc := openapi.MustNewDocument(itemsSource, raw)

	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(capture.Name()),
	)
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:      &doc,
		OperationID:   "createItem",
		Title:         "New item",
		RenderOptions: render.RenderOptions{Fragment: true, Hidden: map[string]string{"_csrf": "tok"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "New item" {
		t.Fatalf("unexpected output %q", out)
	}
	if !capture.options.Fragment {
		t.Fatalf("render options not forwarded")
	}
	if diff := cmp.Diff(map[string]string{"_csrf": "tok"}, capture.options.Hidden); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
	if capture.options.Theme != nil {
		t.Fatalf("theme resolved without a selector")
	}
}

func TestPrepare_MethodOverrideAndEndpointOverride(t *testing.T) {
	orch := orchestrator.New()
	prepared, err := orch.Prepare(testsupport.Context(), orchestrator.Request{
		Source:      itemsSource,
		OperationID: "patch:/items/{id}",
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if prepared.View.Action != "/items/{id}" || prepared.View.Method != "post" {
		t.Fatalf("unexpected endpoint %s %s", prepared.View.Method, prepared.View.Action)
	}
	if prepared.View.Title != "patch:/items/{id}" {
		t.Fatalf("expected operation id as title, got %q", prepared.View.Title)
	}
	want := []render.HiddenField{{Name: render.MethodField, Value: "PATCH"}}
	if diff := cmp.Diff(want, prepared.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}

	orch = orchestrator.New(orchestrator.WithEndpointOverrides([]orchestrator.EndpointOverride{{
		OperationID: "patch:/items/{id}",
		Action:      "/items/7",
		Method:      "post",
		Title:       "Update quantity",
		SubmitLabel: "Save",
	}}))
	prepared, err = orch.Prepare(testsupport.Context(), orchestrator.Request{
		Source:      itemsSource,
		OperationID: "patch:/items/{id}",
	})
	if err != nil {
		t.Fatalf("prepare with override: %v", err)
	}
	if prepared.View.Action != "/items/7" || prepared.View.Title != "Update quantity" || prepared.View.SubmitLabel != "Save" {
		t.Fatalf("override not applied: %+v", prepared.View)
	}
	if len(prepared.Hidden) != 0 {
		t.Fatalf("post override should not add a method field: %v", prepared.Hidden)
	}
}

func TestGenerate_MethodOverrideRendered(t *testing.T) {
	out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{
		Source:        itemsSource,
		OperationID:   "patch:/items/{id}",
		RenderOptions: render.RenderOptions{Fragment: true},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `<input type="hidden" name="_method" value="PATCH">`) {
		t.Fatalf("method override missing:\n%s", out)
	}
}

func TestPrepare_Prefill(t *testing.T) {
	orch := orchestrator.New()

	prepared, err := orch.Prepare(testsupport.Context(), orchestrator.Request{
		Source:      itemsSource,
		OperationID: "createItem",
		Inputs:      map[string]string{"name": "Jane", "acceptTerms": "on"},
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	values := prepared.Form.Values()
	if values.String("name") != "Jane" || !values.Bool("acceptTerms") {
		t.Fatalf("unexpected values %v", values)
	}

	prepared, err = orch.Prepare(testsupport.Context(), orchestrator.Request{
		Source:      itemsSource,
		OperationID: "patch:/items/{id}",
		Inputs:      map[string]string{"quantity": "lots"},
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	field, ok := prepared.View.Field("quantity")
	if !ok || field.Error != "Must be a number" {
		t.Fatalf("expected input error on quantity, got %+v", field)
	}

	_, err = orch.Prepare(testsupport.Context(), orchestrator.Request{
		Source:      itemsSource,
		OperationID: "createItem",
		Inputs:      map[string]string{"nickname": "J"},
	})
	var unknown *schema.UnknownFieldError
	if !errors.As(err, &unknown) || unknown.Name != "nickname" {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestPrepare_PresetTransformer(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS("testdata"), "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	orch := orchestrator.New(orchestrator.WithSchemaTransformer(preset))

	prepared, err := orch.Prepare(testsupport.Context(), orchestrator.Request{
		Source:      itemsSource,
		OperationID: "createItem",
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	var names []string
	for _, f := range prepared.View.Fields {
		names = append(names, f.Name)
	}
	want := []string{"email", "name", "category", "acceptTerms", "description"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	name, _ := prepared.View.Field("name")
	if name.Label != "Full name" || name.Placeholder != "Jane Doe" {
		t.Fatalf("patch not applied: %+v", name)
	}
	description, _ := prepared.View.Field("description")
	if description.InputType != page.InputTextarea || description.Description != "Tell us about the item." {
		t.Fatalf("patch not applied: %+v", description)
	}
}

func TestPresetTransformer_UnknownField(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"omit": ["missing"]}`))
	if err != nil {
		t.Fatalf("parse preset: %v", err)
	}
	s := schema.MustDefineSchema(schema.NewField("name", schema.Text()).Spec())
	if _, err := preset.Transform(context.Background(), s); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := orchestrator.NewPresetTransformer(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestGenerate_TransformerFunc(t *testing.T) {
	called := false
	orch := orchestrator.New(orchestrator.WithSchemaTransformer(orchestrator.TransformerFunc(
		func(_ context.Context, s *schema.Schema) (*schema.Schema, error) {
			called = true
			return s, nil
		},
	)))
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{Source: itemsSource, OperationID: "createItem"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !called {
		t.Fatalf("expected transformer to be invoked")
	}

	failing := orchestrator.New(orchestrator.WithSchemaTransformer(orchestrator.TransformerFunc(
		func(context.Context, *schema.Schema) (*schema.Schema, error) {
			return nil, errors.New("boom")
		},
	)))
	if _, err := failing.Generate(testsupport.Context(), orchestrator.Request{Source: itemsSource, OperationID: "createItem"}); err == nil {
		t.Fatalf("expected transformer error")
	}
}

func TestGenerate_ThemeSelector(t *testing.T) {
	manifest := &theme.Manifest{
		Name:      "acme",
		Version:   "1.0.0",
		Tokens:    map[string]string{"brand": "#123456"},
		Templates: map[string]string{"page.form": "acme-form"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(capture.Name()),
		orchestrator.WithThemeSelector(selector),
	)
	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Source:       itemsSource,
		OperationID:  "createItem",
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	cfg := capture.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Partials["page.form"] != "acme-form" {
		t.Fatalf("theme template not applied: %v", cfg.Partials)
	}
	if cfg.Partials["page.layout"] != "layout" {
		t.Fatalf("fallback partial missing: %v", cfg.Partials)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant token not applied: %v", cfg.CSSVars)
	}
}

func TestGenerate_Errors(t *testing.T) {
	ctx := testsupport.Context()
	orch := orchestrator.New()

	cases := []struct {
		name string
		req  orchestrator.Request
		is   error
	}{
		{name: "missing operation", req: orchestrator.Request{Source: itemsSource}},
		{name: "missing source", req: orchestrator.Request{OperationID: "createItem"}},
		{name: "unknown operation", req: orchestrator.Request{Source: itemsSource, OperationID: "deleteItem"}, is: openapi.ErrOperationNotFound},
		{name: "no form body", req: orchestrator.Request{Source: itemsSource, OperationID: "listItems"}, is: openapi.ErrNoFormBody},
		{name: "unknown renderer", req: orchestrator.Request{Source: itemsSource, OperationID: "createItem", Renderer: "pdf"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orch.Generate(ctx, tc.req)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
		})
	}

	invalid := orchestrator.New(orchestrator.WithEndpointOverrides([]orchestrator.EndpointOverride{
		{OperationID: "createItem", Method: "TRACE"},
		{Action: "/nowhere"},
	}))
	_, err := invalid.Generate(ctx, orchestrator.Request{Source: itemsSource, OperationID: "createItem"})
	if err == nil || !strings.Contains(err.Error(), "TRACE") || !strings.Contains(err.Error(), "requires operation id") {
		t.Fatalf("expected joined override errors, got %v", err)
	}
}

func TestOperations_ListsDocument(t *testing.T) {
	ops, err := orchestrator.New().Operations(testsupport.Context(), orchestrator.Request{Source: itemsSource})
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := []string{"createItem", "listItems", "patch:/items/{id}"}
	if diff := cmp.Diff(want, openapi.SortedIDs(ops)); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, p page.Page, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(p.Heading()), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
