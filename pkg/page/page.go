// Package page defines the view models behind the three page templates: a
// dashboard, a searchable table and a validated create form. Views are plain
// data; renderers in pkg/renderers turn them into HTML or terminal output.
package page

// Kind identifies a page template.
type Kind string

const (
	KindDashboard Kind = "dashboard"
	KindTable     Kind = "table"
	KindForm      Kind = "form"
)

// Kinds lists every page template in display order.
func Kinds() []Kind {
	return []Kind{KindDashboard, KindTable, KindForm}
}

// Page is implemented by Dashboard, Table and FormView.
type Page interface {
	Kind() Kind
	Heading() string
}

// Notice is a short confirmation shown after an action, the server-rendered
// equivalent of a toast.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}
