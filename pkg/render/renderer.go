package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/page"
)

// Renderer converts a page view into a byte representation (HTML, terminal
// text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p page.Page, options RenderOptions) ([]byte, error)
}
