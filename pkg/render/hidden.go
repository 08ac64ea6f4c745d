package render

import (
	"fmt"
	"slices"
	"strings"
)

// MethodField names the hidden input that carries the intended HTTP method
// of a form whose operation is not GET or POST.
const MethodField = "_method"

// HiddenField is a hidden input rendered before the visible fields of a form
// page.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a hidden field with a trimmed name and value printed with
// fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// VersionField carries the revision a form was rendered from, so the
// receiving handler can reject stale submissions.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MethodOverride carries method in MethodField, upper-cased.
func MethodOverride(method string) HiddenField {
	return Hidden(MethodField, strings.ToUpper(strings.TrimSpace(method)))
}

// MergeHiddenFields copies base and applies fields over it. Blank names are
// dropped; later fields win. The result is nil when nothing remains.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if name = strings.TrimSpace(name); name != "" {
			out[name] = value
		}
	}
	for _, f := range fields {
		if name := strings.TrimSpace(f.Name); name != "" {
			out[name] = f.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields lists fields by name for deterministic rendering.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	merged := MergeHiddenFields(fields)
	if merged == nil {
		return nil
	}
	out := make([]HiddenField, 0, len(merged))
	for name, value := range merged {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	slices.SortFunc(out, func(a, b HiddenField) int { return strings.Compare(a.Name, b.Name) })
	return out
}
