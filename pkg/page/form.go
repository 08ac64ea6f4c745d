package page

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Input types used by FieldView.InputType.
const (
	InputText     = "text"
	InputEmail    = "email"
	InputNumber   = "number"
	InputCheckbox = "checkbox"
	InputSelect   = "select"
	InputTextarea = "textarea"
	InputPassword = "password"
)

// OptionView is one entry of a select control.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Attr is an HTML attribute derived from a field constraint.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldView is the render-ready state of one field.
type FieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"input_type"`
	Placeholder string       `json:"placeholder,omitempty"`
	Description string       `json:"description,omitempty"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []OptionView `json:"options,omitempty"`
	Touched     bool         `json:"touched"`
	Error       string       `json:"error,omitempty"`
	Required    bool         `json:"required"`
	Attrs       []Attr       `json:"attrs,omitempty"`
	Length      int          `json:"length"`
	MaxLength   int          `json:"max_length,omitempty"`
}

// Invalid reports whether the field currently shows an error.
func (f FieldView) Invalid() bool { return f.Error != "" }

// FormView is the create form page.
type FormView struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Action          string      `json:"action"`
	Method          string      `json:"method"`
	SubmitLabel     string      `json:"submit_label"`
	ResetLabel      string      `json:"reset_label"`
	Fields          []FieldView `json:"fields"`
	Valid           bool        `json:"valid"`
	SubmitAttempted bool        `json:"submit_attempted"`
	Status          string      `json:"status"`
	Notice          *Notice     `json:"notice,omitempty"`
}

func (FormView) Kind() Kind { return KindForm }
func (v FormView) Heading() string { return v.Title }

// Field returns the view of the named field.
func (v FormView) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}

// Errors returns field errors keyed by name, sorted for stable output.
func (v FormView) Errors() []Attr {
	var out []Attr
	for _, f := range v.Fields {
		if f.Error != "" {
			out = append(out, Attr{Name: f.Name, Value: f.Error})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FormViewOption customises NewFormView.
type FormViewOption func(*formViewConfig)

type formViewConfig struct {
	title       string
	description string
	action      string
	method      string
	submitLabel string
	resetLabel  string
	notice      *Notice
	inputErrors map[string]string
}

func WithFormTitle(title, description string) FormViewOption {
	return func(c *formViewConfig) {
		c.title = title
		c.description = description
	}
}

func WithAction(action, method string) FormViewOption {
	return func(c *formViewConfig) {
		c.action = action
		if method != "" {
			c.method = method
		}
	}
}

func WithLabels(submit, reset string) FormViewOption {
	return func(c *formViewConfig) {
		if submit != "" {
			c.submitLabel = submit
		}
		if reset != "" {
			c.resetLabel = reset
		}
	}
}

func WithNotice(n *Notice) FormViewOption {
	return func(c *formViewConfig) {
		c.notice = n
	}
}

// WithInputErrors overlays messages for raw input that could not be
// converted to a field value (see form.InputError). They take precedence over
// constraint messages.
func WithInputErrors(errs map[string]string) FormViewOption {
	return func(c *formViewConfig) {
		c.inputErrors = errs
	}
}

// NewFormView reads the current state of f into a view.
func NewFormView(f *form.Form, opts ...FormViewOption) FormView {
	cfg := formViewConfig{
		method:      "post",
		submitLabel: "Submit",
		resetLabel:  "Reset",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	view := FormView{
		Title:           cfg.title,
		Description:     cfg.description,
		Action:          cfg.action,
		Method:          cfg.method,
		SubmitLabel:     cfg.submitLabel,
		ResetLabel:      cfg.resetLabel,
		Valid:           f.IsValid(),
		SubmitAttempted: f.SubmitAttempted(),
		Status:          f.Status().String(),
		Notice:          cfg.notice,
	}

	for _, spec := range f.Schema().Fields() {
		state, _ := f.Field(spec.Name)
		fv := newFieldView(spec, state)
		if msg, ok := cfg.inputErrors[spec.Name]; ok && msg != "" {
			fv.Error = msg
			view.Valid = false
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func newFieldView(spec schema.FieldSpec, state form.FieldState) FieldView {
	fv := FieldView{
		Name:        spec.Name,
		ID:          "field-" + spec.Name,
		Label:       spec.DisplayLabel(),
		Kind:        spec.Kind.Name(),
		Placeholder: spec.Placeholder,
		Description: spec.Description,
		Value:       schema.FormatValue(spec.Kind, state.Value),
		Touched:     state.Touched,
		Error:       state.Error,
	}

	switch k := spec.Kind.(type) {
	case schema.EmailKind:
		fv.InputType = InputEmail
	case schema.NumberKind:
		fv.InputType = InputNumber
	case schema.BooleanKind:
		fv.InputType = InputCheckbox
		fv.Checked, _ = state.Value.(bool)
	case schema.EnumKind:
		fv.InputType = InputSelect
		for _, opt := range k.Options {
			fv.Options = append(fv.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == fv.Value,
			})
		}
	default:
		fv.InputType = InputText
		switch spec.Widget {
		case schema.WidgetTextarea:
			fv.InputType = InputTextarea
		case schema.WidgetPassword:
			fv.InputType = InputPassword
		}
	}
	fv.Length = utf8.RuneCountInString(fv.Value)

	for _, c := range spec.Constraints {
		switch c.Rule {
		case schema.RuleRequired, schema.RuleAccepted:
			fv.Required = true
			fv.Attrs = append(fv.Attrs, Attr{Name: "required", Value: "required"})
		case schema.RuleMinLength:
			fv.Attrs = append(fv.Attrs, Attr{Name: "minlength", Value: c.Param("value")})
		case schema.RuleMaxLength:
			fv.Attrs = append(fv.Attrs, Attr{Name: "maxlength", Value: c.Param("value")})
			if n, err := strconv.Atoi(c.Param("value")); err == nil {
				fv.MaxLength = n
			}
		case schema.RuleMin:
			fv.Attrs = append(fv.Attrs, Attr{Name: "min", Value: c.Param("value")})
		case schema.RuleMax:
			fv.Attrs = append(fv.Attrs, Attr{Name: "max", Value: c.Param("value")})
		case schema.RulePattern:
			fv.Attrs = append(fv.Attrs, Attr{Name: "pattern", Value: c.Param("pattern")})
		}
	}
	return fv
}
