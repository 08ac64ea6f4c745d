package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Transformer rewrites an imported schema before a form is built from it.
// Implementations can relabel fields, reorder them or drop them.
type Transformer interface {
	Transform(ctx context.Context, s *schema.Schema) (*schema.Schema, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, s *schema.Schema) (*schema.Schema, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, s *schema.Schema) (*schema.Schema, error) {
	if fn == nil {
		return s, nil
	}
	return fn(ctx, s)
}

// PresetTransformer applies declarative field patches loaded from a YAML or
// JSON document:
//
//	order: [email, name]
//	omit: [website]
//	fields:
//	  name:
//	    label: Full name
//	    placeholder: Jane Doe
//	    widget: textarea
//
// Fields listed in order come first; the rest keep their imported order.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Order  []string              `yaml:"order" json:"order"`
	Omit   []string              `yaml:"omit" json:"omit"`
	Fields map[string]fieldPatch `yaml:"fields" json:"fields"`
}

type fieldPatch struct {
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	Widget      string `yaml:"widget" json:"widget"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches and returns a new schema. Naming a field the
// schema does not declare is an error.
func (t *PresetTransformer) Transform(ctx context.Context, s *schema.Schema) (*schema.Schema, error) {
	if s == nil {
		return nil, errors.New("preset transformer: schema is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, names := range [][]string{t.document.Order, t.document.Omit} {
		for _, name := range names {
			if !s.Has(name) {
				return nil, fmt.Errorf("preset transformer: field %q not found", name)
			}
		}
	}
	for name := range t.document.Fields {
		if !s.Has(name) {
			return nil, fmt.Errorf("preset transformer: field %q not found", name)
		}
	}

	omit := make(map[string]bool, len(t.document.Omit))
	for _, name := range t.document.Omit {
		omit[name] = true
	}

	specs := s.Fields()
	byName := make(map[string]schema.FieldSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	placed := map[string]bool{}
	ordered := make([]schema.FieldSpec, 0, len(specs))
	for _, name := range t.document.Order {
		if placed[name] || omit[name] {
			continue
		}
		placed[name] = true
		ordered = append(ordered, applyFieldPatch(byName[name], t.document.Fields[name]))
	}
	for _, spec := range specs {
		if placed[spec.Name] || omit[spec.Name] {
			continue
		}
		ordered = append(ordered, applyFieldPatch(spec, t.document.Fields[spec.Name]))
	}

	out, err := schema.DefineSchema(ordered...)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: %w", err)
	}
	return out, nil
}

func applyFieldPatch(spec schema.FieldSpec, patch fieldPatch) schema.FieldSpec {
	if patch.Label != "" {
		spec.Label = patch.Label
	}
	if patch.Description != "" {
		spec.Description = patch.Description
	}
	if patch.Placeholder != "" {
		spec.Placeholder = patch.Placeholder
	}
	if patch.Widget != "" {
		spec.Widget = patch.Widget
	}
	return spec
}
