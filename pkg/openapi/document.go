package openapi

import (
	"bytes"
	"errors"
)

// Document formats, detected from the payload.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is a loaded OpenAPI payload together with where it came from.
// The payload is copied in and out, so a Document is safe to share.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps raw, read from src.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: source is required")
	case len(bytes.TrimSpace(raw)) == 0:
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: bytes.Clone(raw)}, nil
}

// MustNewDocument is NewDocument for fixtures; it panics on error.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return bytes.Clone(d.raw) }

// Location names the origin for error messages, or "" for a zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format reports FormatJSON when the payload starts with an object and
// FormatYAML otherwise.
func (d Document) Format() string {
	if trimmed := bytes.TrimSpace(d.raw); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}
