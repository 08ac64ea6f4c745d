// Package orchestrator wires the loader → importer → form → renderer pipeline
// that turns one OpenAPI operation into a rendered form page, for callers
// that prefer a single entry point over assembling the packages themselves.
package orchestrator
