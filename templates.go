package formkit

import (
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedAssets exposes the bundled stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formkit.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return html.AssetsFS()
}
