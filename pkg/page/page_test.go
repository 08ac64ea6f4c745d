package page_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/components/datatable"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/page"
)

func TestSampleDashboard(t *testing.T) {
	d := page.SampleDashboard()
	if d.Kind() != page.KindDashboard || d.Heading() != "Dashboard" {
		t.Fatalf("unexpected dashboard identity %s %q", d.Kind(), d.Heading())
	}
	if len(d.Stats) != 4 {
		t.Fatalf("expected 4 stats, got %d", len(d.Stats))
	}
	if d.Stats[3].Change != "+201 since last hour" {
		t.Fatalf("unexpected stat change %q", d.Stats[3].Change)
	}
	want := page.Activity{Title: "Activity Item 5", Description: "Description of activity 5", When: "5h ago"}
	if diff := cmp.Diff(want, d.Activity[4]); diff != "" {
		t.Fatalf("activity mismatch (-want +got):\n%s", diff)
	}
	if d.HasChartData() {
		t.Fatalf("sample chart should be a placeholder")
	}
}

func TestUsersTable_FiltersAndCounts(t *testing.T) {
	records, err := datatable.DefaultRecords()
	if err != nil {
		t.Fatalf("records: %v", err)
	}

	table := page.UsersTable(records, "jOhN")
	if table.Shown != 2 || table.Total != 4 {
		t.Fatalf("unexpected counts shown=%d total=%d", table.Shown, table.Total)
	}
	if table.Summary() != "Showing 2 of 4 results" {
		t.Fatalf("unexpected summary %q", table.Summary())
	}

	var names []string
	for _, row := range table.Rows {
		names = append(names, row.Cells[0].Text)
	}
	if diff := cmp.Diff([]string{"John Doe", "Bob Johnson"}, names); diff != "" {
		t.Fatalf("row order mismatch (-want +got):\n%s", diff)
	}

	status := table.Rows[1].Cells[3]
	if status.Key != "status" || status.Badge == nil {
		t.Fatalf("expected status badge cell, got %#v", status)
	}
	if diff := cmp.Diff(page.Badge{Text: "Pending", Variant: page.BadgeOutline}, *status.Badge); diff != "" {
		t.Fatalf("badge mismatch (-want +got):\n%s", diff)
	}

	empty := page.UsersTable(records, "nobody")
	if len(empty.Rows) != 0 || empty.EmptyText != "No results found" {
		t.Fatalf("expected empty table, got %#v", empty.Rows)
	}
}

func TestStatusBadge(t *testing.T) {
	cases := map[string]page.Badge{
		"active":   {Text: "Active", Variant: page.BadgeDefault},
		"inactive": {Text: "Inactive", Variant: page.BadgeSecondary},
		"pending":  {Text: "Pending", Variant: page.BadgeOutline},
	}
	for status, want := range cases {
		if diff := cmp.Diff(want, page.StatusBadge(status)); diff != "" {
			t.Fatalf("%s badge mismatch (-want +got):\n%s", status, diff)
		}
	}
}

func TestCreateItemView_FreshForm(t *testing.T) {
	f := form.MustNew(page.CreateItemSchema())
	view := page.CreateItemView(f, page.WithAction("/items/new", ""))

	if view.Title != page.CreateItemTitle || view.Method != "post" || view.Action != "/items/new" {
		t.Fatalf("unexpected view header %#v", view)
	}
	if !view.Valid || view.SubmitAttempted {
		t.Fatalf("fresh view should be valid and not submitted")
	}
	if len(view.Errors()) != 0 {
		t.Fatalf("fresh view should show no errors, got %#v", view.Errors())
	}

	var types []string
	for _, fv := range view.Fields {
		types = append(types, fv.InputType)
	}
	want := []string{page.InputText, page.InputEmail, page.InputSelect, page.InputTextarea, page.InputCheckbox}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("input types mismatch (-want +got):\n%s", diff)
	}

	description, _ := view.Field("description")
	if description.MaxLength != 500 || description.Length != 0 {
		t.Fatalf("unexpected description counter %d/%d", description.Length, description.MaxLength)
	}
	wantAttrs := []page.Attr{{Name: "minlength", Value: "10"}, {Name: "maxlength", Value: "500"}}
	if diff := cmp.Diff(wantAttrs, description.Attrs); diff != "" {
		t.Fatalf("description attrs mismatch (-want +got):\n%s", diff)
	}

	terms, _ := view.Field("terms")
	if !terms.Required || terms.Checked {
		t.Fatalf("unexpected terms view %#v", terms)
	}
}

func TestCreateItemView_AfterFailedSubmit(t *testing.T) {
	f := form.MustNew(page.CreateItemSchema())
	_ = f.SetFieldValue("name", "Jane")
	_ = f.SetFieldValue("category", "option2")
	f.AttemptSubmit(nil)

	view := page.CreateItemView(f)
	if view.Valid || !view.SubmitAttempted || view.Status != "submit-failed" {
		t.Fatalf("unexpected view state valid=%v attempted=%v status=%s", view.Valid, view.SubmitAttempted, view.Status)
	}

	want := []page.Attr{
		{Name: "description", Value: "Description must be at least 10 characters."},
		{Name: "email", Value: "Please enter a valid email address."},
		{Name: "terms", Value: "You must accept the terms and conditions."},
	}
	if diff := cmp.Diff(want, view.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	category, _ := view.Field("category")
	var selected []string
	for _, opt := range category.Options {
		if opt.Selected {
			selected = append(selected, opt.Value)
		}
	}
	if diff := cmp.Diff([]string{"option2"}, selected); diff != "" {
		t.Fatalf("selected option mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFormView_InputErrorsOverlay(t *testing.T) {
	f := form.MustNew(page.CreateItemSchema())
	view := page.NewFormView(f, page.WithInputErrors(map[string]string{"name": "Must be text"}))
	name, _ := view.Field("name")
	if name.Error != "Must be text" || view.Valid {
		t.Fatalf("overlay not applied: %#v valid=%v", name, view.Valid)
	}
}
