package html

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

// Partial names looked up in theme.RendererConfig.Partials. Themes may point
// any of them at another template known to the engine.
const (
	PartialLayout    = "page.layout"
	PartialDashboard = "page.dashboard"
	PartialTable     = "page.table"
	PartialForm      = "page.form"
)

// DefaultPartials maps partial names to the bundled templates.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialLayout:    "layout",
		PartialDashboard: "dashboard",
		PartialTable:     "table",
		PartialForm:      "form",
	}
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	inlineStyles     bool
	stylesheet       string
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files found there
// shadow the bundled templates of the same name.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the policy applied to description text. The default
// is bluemonday.UGCPolicy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithInlineStylesheet embeds the bundled stylesheet in the document instead
// of linking it, producing a self-contained page.
func WithInlineStylesheet() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet overrides the stylesheet URL used when no theme asset is set.
func WithStylesheet(url string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(url)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer renders page views as HTML documents.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	policy     *bluemonday.Policy
	inlineCSS  string
	stylesheet string
	logger     *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:  renderer,
		policy:     cfg.policy,
		stylesheet: cfg.stylesheet,
		logger:     cfg.logger,
	}
	if cfg.inlineStyles {
		r.inlineCSS = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders p with its page template and, unless options.Fragment is
// set, wraps the result in the layout document.
func (r *Renderer) Render(_ context.Context, p page.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	partial, data, err := r.pageData(p)
	if err != nil {
		return nil, err
	}
	data["hidden"] = render.SortedHiddenFields(options.Hidden)

	name := partialName(options, partial)
	body, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", p.Kind(), err)
	}
	r.logger.Debug("page rendered", "kind", p.Kind(), "template", name, "fragment", options.Fragment)
	if options.Fragment {
		return []byte(body), nil
	}

	layout, err := r.templates.RenderTemplate(partialName(options, PartialLayout), map[string]any{
		"title":             p.Heading(),
		"kind":              string(p.Kind()),
		"body":              body,
		"stylesheet":        r.stylesheetURL(options),
		"inline_stylesheet": r.inlineCSS,
		"theme":             themeContext(options),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render layout: %w", err)
	}
	return []byte(layout), nil
}

func (r *Renderer) pageData(p page.Page) (string, map[string]any, error) {
	switch v := p.(type) {
	case page.Dashboard:
		return PartialDashboard, r.dashboardData(v), nil
	case *page.Dashboard:
		return PartialDashboard, r.dashboardData(*v), nil
	case page.Table:
		return PartialTable, r.tableData(v), nil
	case *page.Table:
		return PartialTable, r.tableData(*v), nil
	case page.FormView:
		return PartialForm, r.formData(v), nil
	case *page.FormView:
		return PartialForm, r.formData(*v), nil
	case nil:
		return "", nil, fmt.Errorf("html renderer: page is nil")
	default:
		return "", nil, fmt.Errorf("html renderer: unsupported page %T", p)
	}
}

type chartBar struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Height string `json:"height"`
}

func (r *Renderer) dashboardData(d page.Dashboard) map[string]any {
	var top float64
	for _, pt := range d.Chart.Points {
		if pt.Value > top {
			top = pt.Value
		}
	}
	bars := make([]chartBar, 0, len(d.Chart.Points))
	for _, pt := range d.Chart.Points {
		height := 0.0
		if top > 0 && pt.Value > 0 {
			height = pt.Value / top * 100
		}
		bars = append(bars, chartBar{
			Label:  pt.Label,
			Value:  strconv.FormatFloat(pt.Value, 'f', -1, 64),
			Height: strconv.FormatFloat(height, 'f', 0, 64),
		})
	}
	return map[string]any{
		"page": d,
		"bars": bars,
	}
}

func (r *Renderer) tableData(t page.Table) map[string]any {
	t.Description = r.policy.Sanitize(t.Description)
	colspan := len(t.Columns)
	if t.DeleteAction != "" {
		colspan++
	}
	return map[string]any{
		"page":    t,
		"summary": t.Summary(),
		"colspan": strconv.Itoa(colspan),
	}
}

func (r *Renderer) formData(v page.FormView) map[string]any {
	v.Description = r.policy.Sanitize(v.Description)
	fields := make([]page.FieldView, len(v.Fields))
	for i, f := range v.Fields {
		f.Description = r.policy.Sanitize(f.Description)
		fields[i] = f
	}
	v.Fields = fields
	return map[string]any{
		"page": v,
	}
}

func (r *Renderer) stylesheetURL(options render.RenderOptions) string {
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if url := options.Theme.AssetURL(render.StylesheetAsset); url != "" {
			return url
		}
	}
	if r.stylesheet != "" {
		return r.stylesheet
	}
	prefix := strings.TrimRight(options.AssetPrefix, "/")
	if prefix == "" {
		prefix = "/assets"
	}
	return prefix + "/" + StylesheetName
}

func partialName(options render.RenderOptions, partial string) string {
	if options.Theme != nil {
		if name := strings.TrimSpace(options.Theme.Partials[partial]); name != "" {
			return name
		}
	}
	return DefaultPartials()[partial]
}

func themeContext(options render.RenderOptions) map[string]any {
	if options.Theme == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           options.Theme.Theme,
		"variant":        options.Theme.Variant,
		"css_vars_style": render.CSSVarsStyle(options.Theme.CSSVars),
	}
}
