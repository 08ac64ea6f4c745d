// Package testsupport holds helpers shared by package tests: golden files
// and pre-filled forms.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// UpdateGoldensEnv rewrites golden files instead of comparing when set.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

func Context() context.Context {
	return context.Background()
}

// FilledForm builds a form for s and assigns values in schema order, so
// dependent fields see the same sequence a user would produce.
func FilledForm(t *testing.T, s *schema.Schema, values map[string]any) *form.Form {
	t.Helper()

	f, err := form.New(s)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	for _, name := range s.Names() {
		if value, ok := values[name]; ok {
			if err := f.SetFieldValue(name, value); err != nil {
				t.Fatalf("set %s: %v", name, err)
			}
		}
	}
	return f
}

// AssertGolden compares got with the golden file at path. With
// UpdateGoldensEnv set the file is rewritten and the comparison skipped.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if os.Getenv(UpdateGoldensEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (returned, written string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
