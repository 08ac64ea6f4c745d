package datatable

// Search filters records on opts.SearchFields and truncates the result to
// the clamped limit. Unlike Filter, an empty query follows
// opts.EmptySearchMode.
func Search(records []Record, query string, limit int, opts Options) []Record {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	if query == "" && opts.EmptySearchMode == EmptySearchNone {
		return nil
	}

	matches := FilterRecords(records, query, opts.SearchFields...)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return append([]Record{}, matches...)
}
