package page

import (
	"github.com/goliatone/go-formkit/components/datatable"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const (
	CreateItemTitle       = "Create New Item"
	CreateItemDescription = "Fill out the form below to create a new item"
)

// CreateItemSchema is the schema of the stock create form.
func CreateItemSchema() *schema.Schema {
	return schema.MustDefineSchema(
		schema.NewField("name", schema.Text()).
			Label("Name").
			Placeholder("Enter your name").
			Description("This is your public display name.").
			MinLength(2, "Name must be at least 2 characters.").
			Spec(),
		schema.NewField("email", schema.Email()).
			Label("Email").
			Placeholder("m@example.com").
			Email("Please enter a valid email address.").
			Spec(),
		schema.NewField("category", schema.Enum(
			schema.Opt("option1", "Option 1"),
			schema.Opt("option2", "Option 2"),
			schema.Opt("option3", "Option 3"),
		)).
			Label("Category").
			Placeholder("Select a category").
			Required("Please select a category.").
			Spec(),
		schema.NewField("description", schema.Text()).
			Label("Description").
			Placeholder("Enter a description").
			Widget(schema.WidgetTextarea).
			MinLength(10, "Description must be at least 10 characters.").
			MaxLength(500, "Description must not exceed 500 characters.").
			Spec(),
		schema.NewField("terms", schema.Boolean()).
			Label("Accept terms and conditions").
			Description("You agree to our Terms of Service and Privacy Policy.").
			Accepted("You must accept the terms and conditions.").
			Spec(),
	)
}

// SubmittedNotice is shown after a successful submit handoff.
func SubmittedNotice() *Notice {
	return &Notice{
		Title:       "Form submitted!",
		Description: "Your information has been saved successfully.",
		Variant:     "success",
	}
}

// CreateItemView builds the stock create form view for f.
func CreateItemView(f *form.Form, opts ...FormViewOption) FormView {
	base := []FormViewOption{WithFormTitle(CreateItemTitle, CreateItemDescription)}
	return NewFormView(f, append(base, opts...)...)
}

// UsersTable builds the stock users table from records.
func UsersTable(records []datatable.Record, query string, opts ...TableOption) Table {
	base := []TableOption{WithCreateLink("Add User", "/items/new")}
	return NewTable(records, query, append(base, opts...)...)
}
