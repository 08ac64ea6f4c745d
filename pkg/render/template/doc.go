// Package template defines the template engine contract used by the page
// renderers. The pongo subpackage provides the pongo2-backed engine.
package template
