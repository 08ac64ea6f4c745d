package datatable

import "strings"

// Accessor extracts one searchable text field from an item.
type Accessor[T any] func(T) string

// Filter returns the items, in their original order, for which at least one
// accessor's lowercase value contains the lowercase query. The query is not
// trimmed. An empty query returns items unchanged.
func Filter[T any](items []T, query string, fields ...Accessor[T]) []T {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if field == nil {
				continue
			}
			if strings.Contains(strings.ToLower(field(item)), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// FilterRecords filters records on the named fields. No names means
// DefaultSearchFields.
func FilterRecords(records []Record, query string, fields ...string) []Record {
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}
	accessors := make([]Accessor[Record], 0, len(fields))
	for _, name := range fields {
		name := name
		accessors = append(accessors, func(r Record) string { return r.Field(name) })
	}
	return Filter(records, query, accessors...)
}
