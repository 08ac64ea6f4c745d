// Package datatable provides the in-memory records behind the table page,
// the case-insensitive substring filter used by its search box, and a small
// net/http handler that returns matching records as JSON.
//
// The default handler answers GET and HEAD with {"data": [...], "total": n}
// and DELETE on <route>/<id> to drop a record from the backing Store. The
// default records are loaded from the embedded data/users.yaml list.
package datatable
