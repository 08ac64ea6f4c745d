package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the page view.
type RenderOptions struct {
	// Theme carries the resolved theme selection (tokens, CSS variables, asset
	// resolver). Renderers fall back to their built-in defaults when nil.
	Theme *theme.RendererConfig
	// Hidden adds hidden inputs, keyed by name, to rendered forms.
	Hidden map[string]string
	// Fragment renders the page body without the surrounding document.
	Fragment bool
	// AssetPrefix is prepended to stylesheet URLs when no theme resolver is set.
	AssetPrefix string
}
