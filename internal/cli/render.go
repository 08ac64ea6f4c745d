package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/components/datatable"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/schema"
)

type renderFlags struct {
	output       string
	renderer     string
	inline       bool
	fragment     bool
	query        string
	schemaFile   string
	recordsFile  string
	title        string
	theme        string
	variant      string
	templatesDir string
	openapiFile  string
	operation    string
}

func (a *app) newRenderCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:       "render <dashboard|table|form>",
		Short:     "Render a page to stdout or a file",
		Long:      "Render writes a complete page so it can be copied into a project or served statically.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(page.KindDashboard), string(page.KindTable), string(page.KindForm)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, page.Kind(args[0]), flags)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Output file (stdout if empty)")
	f.StringVarP(&flags.renderer, "renderer", "r", "", "Renderer to use (html, tui); defaults to config")
	f.BoolVar(&flags.inline, "inline", false, "Inline the stylesheet for a self-contained page")
	f.BoolVar(&flags.fragment, "fragment", false, "Render the page body without the layout")
	f.StringVarP(&flags.query, "query", "q", "", "Search query applied to the table page")
	f.StringVar(&flags.schemaFile, "schema", "", "Schema document for the form page; defaults to config or the stock form")
	f.StringVar(&flags.recordsFile, "records", "", "YAML or JSON records for the table page")
	f.StringVar(&flags.title, "title", "", "Form page title")
	f.StringVar(&flags.theme, "theme", "", "Theme name; defaults to config")
	f.StringVar(&flags.variant, "variant", "", "Theme variant; defaults to config")
	f.StringVar(&flags.templatesDir, "templates-dir", "", "Directory of templates overriding the bundled ones")
	f.StringVar(&flags.openapiFile, "openapi", "", "OpenAPI document (path or URL) to build the form page from")
	f.StringVar(&flags.operation, "operation", "", "Operation id used with --openapi")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, kind page.Kind, flags renderFlags) error {
	registry, err := a.registry(flags)
	if err != nil {
		return err
	}
	name := firstNonEmpty(flags.renderer, a.cfg.Renderer)

	if flags.openapiFile != "" || flags.operation != "" {
		if kind != page.KindForm {
			return fmt.Errorf("--openapi only applies to the form page")
		}
		return a.renderOperation(cmd, registry, name, flags)
	}

	p, err := a.buildPage(kind, flags)
	if err != nil {
		return err
	}

	opts := render.RenderOptions{Fragment: flags.fragment}
	if name == "html" {
		cfg, err := render.ResolveTheme(
			render.NewStaticSelector(render.DefaultManifest()),
			firstNonEmpty(flags.theme, a.cfg.Theme),
			firstNonEmpty(flags.variant, a.cfg.Variant),
			html.DefaultPartials(),
		)
		if err != nil {
			return err
		}
		opts.Theme = cfg
	}

	out, contentType, err := registry.Render(cmd.Context(), name, p, opts)
	if err != nil {
		return err
	}
	a.logger.Debug("page rendered", "kind", kind, "renderer", name, "content_type", contentType, "bytes", len(out))
	return writeOutput(cmd, flags.output, out)
}

// renderOperation builds the form page from one OpenAPI operation.
func (a *app) renderOperation(cmd *cobra.Command, registry *render.Registry, name string, flags renderFlags) error {
	if flags.openapiFile == "" || flags.operation == "" {
		return fmt.Errorf("--openapi and --operation must be used together")
	}
	src, err := openapi.ParseSource(flags.openapiFile)
	if err != nil {
		return err
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(openapi.NewLoader(openapi.WithHTTPFallback(importTimeout))),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(name),
		orchestrator.WithLogger(a.logger),
	}
	if name == "html" {
		options = append(options, orchestrator.WithThemeSelector(render.NewStaticSelector(render.DefaultManifest())))
	}

	out, err := orchestrator.New(options...).Generate(cmd.Context(), orchestrator.Request{
		Source:        src,
		OperationID:   flags.operation,
		Title:         flags.title,
		ThemeName:     firstNonEmpty(flags.theme, a.cfg.Theme),
		ThemeVariant:  firstNonEmpty(flags.variant, a.cfg.Variant),
		RenderOptions: render.RenderOptions{Fragment: flags.fragment},
	})
	if err != nil {
		return err
	}
	a.logger.Debug("operation rendered", "operation", flags.operation, "renderer", name, "bytes", len(out))
	return writeOutput(cmd, flags.output, out)
}

func (a *app) registry(flags renderFlags) (*render.Registry, error) {
	htmlOpts := []html.Option{
		html.WithLogger(a.logger),
		html.WithTemplatesDir(firstNonEmpty(flags.templatesDir, a.cfg.TemplatesDir)),
	}
	if flags.inline {
		htmlOpts = append(htmlOpts, html.WithInlineStylesheet())
	}
	htmlRenderer, err := html.New(htmlOpts...)
	if err != nil {
		return nil, err
	}
	tuiOpts := []tui.Option{tui.WithLogger(a.logger)}
	if a.driver != nil {
		tuiOpts = append(tuiOpts, tui.WithPromptDriver(a.driver))
	}
	tuiRenderer, err := tui.New(tuiOpts...)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(tuiRenderer)
	return registry, nil
}

func (a *app) buildPage(kind page.Kind, flags renderFlags) (page.Page, error) {
	switch kind {
	case page.KindDashboard:
		return page.SampleDashboard(), nil
	case page.KindTable:
		records, err := loadRecords(flags.recordsFile)
		if err != nil {
			return nil, err
		}
		return page.UsersTable(records, flags.query), nil
	case page.KindForm:
		s, custom, err := a.loadSchema(flags.schemaFile)
		if err != nil {
			return nil, err
		}
		f, err := form.New(s, form.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		if !custom && flags.title == "" {
			return page.CreateItemView(f), nil
		}
		return page.NewFormView(f, page.WithFormTitle(firstNonEmpty(flags.title, "Form"), "")), nil
	default:
		return nil, fmt.Errorf("unknown page %q (want dashboard, table or form)", kind)
	}
}

// loadSchema reads path, falling back to the configured schema file and then
// the stock create-item schema. custom reports whether a file was used.
func (a *app) loadSchema(path string) (s *schema.Schema, custom bool, err error) {
	path = firstNonEmpty(path, a.cfg.SchemaFile)
	if path == "" {
		return page.CreateItemSchema(), false, nil
	}
	s, err = schema.LoadFile(path)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func loadRecords(path string) ([]datatable.Record, error) {
	if path == "" {
		return datatable.DefaultRecords()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return datatable.LoadRecords(f)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
