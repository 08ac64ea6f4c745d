package pongo_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "hello.golden"), result)
	if written != result {
		t.Fatalf("writer got %q, returned %q", written, result)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	view := page.FormView{Fields: []page.FieldView{
		{Name: "name", Label: "Name", Value: "Ada"},
		{Name: "email", Label: "Email", Value: "ada@example.com"},
	}}
	result, err := engine.RenderTemplate("struct", view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "struct.golden"), result)
}

func TestEngine_Globals(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(
		pongo.WithFS(templatesFS),
		pongo.WithGlobals(map[string]any{"settings": map[string]any{"env": "dev"}}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "use-global.golden"), result)

	if err := engine.GlobalContext([]string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object globals")
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada", "status": "pending"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "use-filter.golden"), result)

	if err := engine.RegisterFilter("", nil); err == nil {
		t.Fatalf("expected error for empty filter")
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("{{ a|integer }}+{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "1+two" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_BaseDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Hi {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(pongo.WithBaseDir(dir), pongo.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("disk template not preferred, got %q", got)
	}
	got, err = engine.RenderTemplate("use-global.tpl", nil)
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "env=\n" {
		t.Fatalf("unexpected fallback output %q", got)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := pongo.New(pongo.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
