package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Renderer implements render.Renderer for terminals. Render prints a page as
// plain text; Fill drives a form through interactive prompts.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the content type of Render output.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// PayloadContentType reports the serialization format used by Fill.
func (r *Renderer) PayloadContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prints p as plain text. Hidden fields and themes have no terminal
// equivalent and are ignored.
func (r *Renderer) Render(ctx context.Context, p page.Page, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return renderText(p)
}

// Fill prompts for every field of f in schema order. A field is prompted
// again, with its error shown, until its value passes validation. It then
// submits f and serializes the submitted values.
func (r *Renderer) Fill(ctx context.Context, f *form.Form) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	specs := f.Schema().Fields()
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.promptField(ctx, f, spec); err != nil {
			return nil, err
		}
	}

	var submitted form.Values
	if !f.AttemptSubmit(func(v form.Values) { submitted = v }) {
		return nil, &SubmitError{Errors: f.Errors()}
	}
	r.logger.Debug("tui form submitted", "fields", len(submitted))

	if r.submitTransformer != nil {
		var err error
		submitted, err = r.submitTransformer(submitted)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(f.Schema(), submitted)
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, spec schema.FieldSpec) error {
	for attempt := 1; ; attempt++ {
		msg, err := r.ask(ctx, f, spec)
		if err != nil {
			return err
		}
		if msg == "" {
			return nil
		}

		_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, spec.DisplayLabel(), msg))
		r.logger.Debug("tui field rejected", "field", spec.Name, "attempt", attempt, "error", msg)
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, spec.Name)
		}
	}
}

// ask shows one prompt for spec and stores the answer. It returns the message
// to show when the answer was rejected.
func (r *Renderer) ask(ctx context.Context, f *form.Form, spec schema.FieldSpec) (string, error) {
	state, _ := f.Field(spec.Name)
	label := spec.DisplayLabel()
	help := displayHelp(spec)

	var err error
	switch k := spec.Kind.(type) {
	case schema.BooleanKind:
		current, _ := state.Value.(bool)
		var answer bool
		answer, err = r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current, Help: help})
		if err != nil {
			return "", err
		}
		err = f.SetFieldValue(spec.Name, answer)
	case schema.EnumKind:
		labels := make([]string, len(k.Options))
		values := make([]string, len(k.Options))
		for i, opt := range k.Options {
			labels[i] = opt.Label
			values[i] = opt.Value
		}
		current, _ := state.Value.(string)
		var idx int
		idx, err = r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: indexOf(values, current),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		selected := ""
		if idx >= 0 && idx < len(values) {
			selected = values[idx]
		}
		err = f.SetFieldValue(spec.Name, selected)
	default:
		var raw string
		raw, err = r.askText(ctx, spec, label, help, schema.FormatValue(spec.Kind, state.Value))
		if err != nil {
			return "", err
		}
		err = f.SetFieldInput(spec.Name, raw)
	}

	var inputErr *form.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message, nil
	}
	if err != nil {
		return "", err
	}
	state, _ = f.Field(spec.Name)
	return state.Error, nil
}

func (r *Renderer) askText(ctx context.Context, spec schema.FieldSpec, label, help, current string) (string, error) {
	switch spec.Widget {
	case schema.WidgetPassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: help})
	case schema.WidgetTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: help})
	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
	}
}

func (r *Renderer) serialize(s *schema.Schema, values form.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, name := range orderedNames(s, values) {
			encoded.Set(name, formatValue(s, name, values[name]))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, name := range orderedNames(s, values) {
			fmt.Fprintf(&b, "%s=%s\n", name, formatValue(s, name, values[name]))
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(values)
	}
}

// orderedNames lists schema fields first, then any extra keys a transformer
// added, sorted.
func orderedNames(s *schema.Schema, values form.Values) []string {
	var names []string
	for _, name := range s.Names() {
		if _, ok := values[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range values {
		if !s.Has(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func formatValue(s *schema.Schema, name string, value any) string {
	if spec, ok := s.Field(name); ok {
		return schema.FormatValue(spec.Kind, value)
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func displayHelp(spec schema.FieldSpec) string {
	if spec.Description != "" {
		return spec.Description
	}
	return spec.Placeholder
}
