package page

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/components/datatable"
)

// Badge variants.
const (
	BadgeDefault   = "default"
	BadgeSecondary = "secondary"
	BadgeOutline   = "outline"
)

// Badge is a small status label.
type Badge struct {
	Text    string `json:"text"`
	Variant string `json:"variant"`
}

// StatusBadge maps a record status to its badge.
func StatusBadge(status string) Badge {
	variant := BadgeOutline
	switch status {
	case datatable.StatusActive:
		variant = BadgeDefault
	case datatable.StatusInactive:
		variant = BadgeSecondary
	case datatable.StatusPending:
		variant = BadgeOutline
	}
	text := status
	if text != "" {
		text = strings.ToUpper(text[:1]) + text[1:]
	}
	return Badge{Text: text, Variant: variant}
}

// Cell is one table cell. Badge, when set, replaces Text.
type Cell struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	Badge *Badge `json:"badge,omitempty"`
	Muted bool   `json:"muted,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

// Row is one record rendered as cells.
type Row struct {
	ID    int    `json:"id"`
	Cells []Cell `json:"cells"`
}

// Table is the searchable list page.
type Table struct {
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Columns           []datatable.Column `json:"columns"`
	Rows              []Row              `json:"rows"`
	Query             string             `json:"query"`
	SearchParam       string             `json:"search_param"`
	SearchPlaceholder string             `json:"search_placeholder"`
	EmptyText         string             `json:"empty_text"`
	Shown             int                `json:"shown"`
	Total             int                `json:"total"`
	CreateLabel       string             `json:"create_label,omitempty"`
	CreateHref        string             `json:"create_href,omitempty"`
	DeleteAction      string             `json:"delete_action,omitempty"`
	Notice            *Notice            `json:"notice,omitempty"`
}

func (Table) Kind() Kind { return KindTable }
func (t Table) Heading() string { return t.Title }

// Summary is the footer line under the table.
func (t Table) Summary() string {
	return fmt.Sprintf("Showing %d of %d results", t.Shown, t.Total)
}

// TableOption customises NewTable.
type TableOption func(*Table)

func WithTableTitle(title, description string) TableOption {
	return func(t *Table) {
		t.Title = title
		t.Description = description
	}
}

func WithColumns(columns ...datatable.Column) TableOption {
	return func(t *Table) {
		if len(columns) > 0 {
			t.Columns = append([]datatable.Column{}, columns...)
		}
	}
}

// WithDeleteAction sets the form action that removes a row. The row id is
// appended as the last path segment.
func WithDeleteAction(action string) TableOption {
	return func(t *Table) {
		t.DeleteAction = strings.TrimRight(action, "/")
	}
}

func WithCreateLink(label, href string) TableOption {
	return func(t *Table) {
		t.CreateLabel = label
		t.CreateHref = href
	}
}

func WithTableNotice(n *Notice) TableOption {
	return func(t *Table) {
		t.Notice = n
	}
}

// NewTable filters records by query on the default search fields and builds
// the table view. Total counts every record, Shown only the matches.
func NewTable(records []datatable.Record, query string, opts ...TableOption) Table {
	t := Table{
		Title:             "Users",
		Description:       "Manage your users and their roles",
		Columns:           datatable.DefaultColumns(),
		Query:             query,
		SearchParam:       "q",
		SearchPlaceholder: "Search users...",
		EmptyText:         "No results found",
		Total:             len(records),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&t)
		}
	}

	matches := datatable.FilterRecords(records, query)
	t.Shown = len(matches)
	t.Rows = make([]Row, 0, len(matches))
	for _, rec := range matches {
		row := Row{ID: rec.ID, Cells: make([]Cell, 0, len(t.Columns))}
		for _, col := range t.Columns {
			cell := Cell{Key: col.Key, Text: rec.Field(col.Key)}
			switch col.Key {
			case "name":
				cell.Bold = true
			case "status":
				badge := StatusBadge(rec.Status)
				cell.Badge = &badge
			case "createdAt":
				cell.Muted = true
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
