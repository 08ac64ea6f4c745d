package datatable

import (
	"embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/users.yaml
var dataFS embed.FS

const defaultListPath = "data/users.yaml"

var (
	defaultOnce    sync.Once
	defaultRecords []Record
	defaultErr     error
)

// DefaultRecords returns a copy of the embedded mock users.
func DefaultRecords() ([]Record, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		records, err := LoadRecords(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultRecords = records
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Record{}, defaultRecords...), nil
}

// LoadRecords decodes a YAML (or JSON) list of records. Order is kept;
// duplicate IDs are rejected.
func LoadRecords(r io.Reader) ([]Record, error) {
	if r == nil {
		return nil, fmt.Errorf("datatable: missing reader")
	}

	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("datatable: decode records: %w", err)
	}

	seen := make(map[int]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("datatable: duplicate record id %d", rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}
	return records, nil
}
