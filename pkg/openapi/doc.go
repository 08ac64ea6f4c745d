// Package openapi imports form schemas from OpenAPI 3 documents. A document is
// loaded from a file, an fs.FS or a URL, its operations are parsed with
// kin-openapi, and the request body of one operation becomes a schema.Schema:
// one field per top-level property, constraints taken from the JSON Schema
// keywords the form engine understands.
package openapi
