package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when an operation id is not in the document.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Operation summarises one path operation of a document.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string

	request *openapi3.SchemaRef
}

// HasRequestBody reports whether the operation declares a request body schema.
func (o Operation) HasRequestBody() bool {
	return o.request != nil && o.request.Value != nil
}

// ParseOptions tunes document parsing.
type ParseOptions struct {
	// ResolveReferences allows external $ref resolution and validates the
	// document after loading.
	ResolveReferences bool
}

// ParseOption mutates ParseOptions.
type ParseOption func(*ParseOptions)

// WithReferenceResolution enables external references and validation.
func WithReferenceResolution() ParseOption {
	return func(opts *ParseOptions) {
		opts.ResolveReferences = true
	}
}

// Operations parses doc and returns its operations keyed by id. Operations
// without an operationId are keyed "method:path" with a lower-case method.
func Operations(ctx context.Context, doc Document, options ...ParseOption) (map[string]Operation, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	cfg := ParseOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}
	if cfg.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", doc.Location(), err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collect(operations, http.MethodGet, path, item.Get)
		collect(operations, http.MethodPut, path, item.Put)
		collect(operations, http.MethodPost, path, item.Post)
		collect(operations, http.MethodDelete, path, item.Delete)
		collect(operations, http.MethodPatch, path, item.Patch)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return operations, nil
}

// SortedIDs returns operation ids in lexical order.
func SortedIDs(operations map[string]Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func collect(target map[string]Operation, method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		request:     requestSchema(op.RequestBody),
	}
}

// requestSchema prefers form-shaped media types, then any declared content.
func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}
