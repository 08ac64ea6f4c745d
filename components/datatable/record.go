package datatable

import (
	"strconv"
	"strings"
)

// Record statuses rendered as badges.
const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusInactive = "inactive"
)

// Record is one row of the users table.
type Record struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Status    string `json:"status" yaml:"status"`
	Role      string `json:"role" yaml:"role"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// Field returns the named column as text. Unknown names yield "".
func (r Record) Field(name string) string {
	switch strings.ToLower(name) {
	case "id":
		return strconv.Itoa(r.ID)
	case "name":
		return r.Name
	case "email":
		return r.Email
	case "status":
		return r.Status
	case "role":
		return r.Role
	case "createdat", "created_at":
		return r.CreatedAt
	default:
		return ""
	}
}

// Column describes a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DefaultColumns lists the columns the table page shows.
func DefaultColumns() []Column {
	return []Column{
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "role", Label: "Role"},
		{Key: "status", Label: "Status"},
		{Key: "createdAt", Label: "Created"},
	}
}

// DefaultSearchFields are the record fields matched by the search box.
var DefaultSearchFields = []string{"name", "email", "role"}
