package formkit

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
)

// RenderOptions describes per-request overrides renderers apply on top of a
// page: theme, hidden inputs, fragment output.
type RenderOptions = render.RenderOptions

// EndpointOverride replaces where the form of an operation submits.
type EndpointOverride = orchestrator.EndpointOverride

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs an OpenAPI loader for file, fs.FS and URL sources.
func NewLoader(options ...openapi.LoaderOption) *openapi.Loader {
	return openapi.NewLoader(options...)
}

// WithThemeSelector resolves request themes through selector.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// GenerateHTML loads the OpenAPI source, builds a form for the requested
// operation and renders it with the named renderer. It is the simplest entry
// point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, source openapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateHTMLFromDocument renders an operation of a document the caller has
// already loaded.
func GenerateHTMLFromDocument(ctx context.Context, doc openapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}
