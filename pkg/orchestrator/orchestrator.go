package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader *openapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParseOptions forwards options to every document parse.
func WithParseOptions(options ...openapi.ParseOption) Option {
	return func(o *Orchestrator) {
		o.parseOptions = append(o.parseOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that rewrites the imported
// schema before the form is created.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves request themes through selector. Partials the
// selected manifest leaves unset fall back to the html renderer defaults.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks replaces the partial fallbacks used with the selector.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the full pipeline from OpenAPI document to rendered
// output. It applies defaults (html and tui renderers, embedded templates)
// while remaining open to dependency injection.
type Orchestrator struct {
	loader            *openapi.Loader
	parseOptions      []openapi.ParseOption
	registry          *render.Registry
	defaultRenderer   string
	transformer       Transformer
	themeSelector     theme.ThemeSelector
	themeFallbacks    map[string]string
	endpointOverrides map[string]EndpointOverride
	logger            *slog.Logger
	initialiseErr     error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source openapi.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *openapi.Document

	// OperationID selects which operation to render into a form.
	OperationID string

	// Renderer names the renderer to use, defaulting to the configured one.
	Renderer string

	// Title and Description override the operation summary and description.
	Title       string
	Description string

	// Inputs pre-fill fields with raw text, as if typed by the user.
	Inputs map[string]string

	// ThemeName and ThemeVariant are resolved through the theme selector when
	// RenderOptions carries no theme of its own.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Prepared is a form built from an operation, ready to render or fill.
type Prepared struct {
	Operation openapi.Operation
	Form      *form.Form
	View      page.FormView
	// Skipped lists request properties that have no form equivalent.
	Skipped []string
	// Hidden carries inputs the form needs to reach the operation, such as a
	// method override.
	Hidden []render.HiddenField
}

// Prepare loads the document, imports the operation and builds its form and
// view without rendering.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (Prepared, error) {
	if ctx == nil {
		return Prepared{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Prepared{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Prepared{}, err
	}
	if strings.TrimSpace(req.OperationID) == "" {
		return Prepared{}, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Prepared{}, err
	}

	imported, err := openapi.ImportOperation(ctx, doc, req.OperationID, o.parseOptions...)
	if err != nil {
		return Prepared{}, fmt.Errorf("orchestrator: import operation: %w", err)
	}

	s, err := o.applyTransformer(ctx, imported.Schema)
	if err != nil {
		return Prepared{}, err
	}

	f, err := form.New(s, form.WithLogger(o.logger))
	if err != nil {
		return Prepared{}, fmt.Errorf("orchestrator: build form: %w", err)
	}

	inputErrors, err := prefill(f, req.Inputs)
	if err != nil {
		return Prepared{}, err
	}

	op := imported.Operation
	endpoint := o.endpointFor(op)
	title := firstNonEmpty(req.Title, endpoint.Title, op.Summary, op.ID)
	description := firstNonEmpty(req.Description, op.Description)

	view := page.NewFormView(f,
		page.WithFormTitle(title, description),
		page.WithAction(endpoint.Action, endpoint.formMethod()),
		page.WithLabels(endpoint.SubmitLabel, ""),
		page.WithInputErrors(inputErrors),
	)

	o.logger.Debug("operation prepared",
		"operation", op.ID,
		"document", doc.Location(),
		"format", doc.Format(),
		"fields", s.Len(),
		"skipped", len(imported.Skipped),
	)

	return Prepared{
		Operation: op,
		Form:      f,
		View:      view,
		Skipped:   imported.Skipped,
		Hidden:    endpoint.hidden(),
	}, nil
}

// Generate executes the loader → importer → form → renderer sequence and
// returns the rendered bytes (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options, err := o.renderOptions(req, prepared)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, prepared.View, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Operations lists the operations of the requested document, keyed by id.
func (o *Orchestrator) Operations(ctx context.Context, req Request) (map[string]openapi.Operation, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	return openapi.Operations(ctx, doc, o.parseOptions...)
}

func (o *Orchestrator) renderOptions(req Request, prepared Prepared) (render.RenderOptions, error) {
	options := req.RenderOptions
	options.Hidden = render.MergeHiddenFields(options.Hidden, prepared.Hidden...)

	if options.Theme != nil || o.themeSelector == nil {
		return options, nil
	}
	cfg, err := render.ResolveTheme(o.themeSelector, req.ThemeName, req.ThemeVariant, o.themeFallbacks)
	if err != nil {
		return render.RenderOptions{}, fmt.Errorf("orchestrator: resolve theme: %w", err)
	}
	options.Theme = cfg
	return options, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (openapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return openapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return openapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, s *schema.Schema) (*schema.Schema, error) {
	if o.transformer == nil {
		return s, nil
	}
	out, err := o.transformer.Transform(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: transform schema: %w", err)
	}
	if out == nil {
		return nil, errors.New("orchestrator: transformer returned no schema")
	}
	return out, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = openapi.NewLoader()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if err := o.registerDefaults(); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = html.DefaultPartials()
	}
}

func (o *Orchestrator) registerDefaults() error {
	htmlRenderer, err := html.New(html.WithLogger(o.logger))
	if err != nil {
		return err
	}
	if err := o.registry.Register(htmlRenderer); err != nil {
		return err
	}
	tuiRenderer, err := tui.New(tui.WithLogger(o.logger))
	if err != nil {
		return err
	}
	return o.registry.Register(tuiRenderer)
}

// prefill applies raw inputs in schema order. Unknown names are an error;
// conversion failures are returned as view messages.
func prefill(f *form.Form, inputs map[string]string) (map[string]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	for name := range inputs {
		if !f.Schema().Has(name) {
			return nil, fmt.Errorf("orchestrator: prefill: %w", &schema.UnknownFieldError{Name: name})
		}
	}
	messages := map[string]string{}
	for _, name := range f.Schema().Names() {
		raw, ok := inputs[name]
		if !ok {
			continue
		}
		err := f.SetFieldInput(name, raw)
		var inputErr *form.InputError
		if errors.As(err, &inputErr) {
			messages[name] = inputErr.Message
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("orchestrator: prefill %s: %w", name, err)
		}
	}
	return messages, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
