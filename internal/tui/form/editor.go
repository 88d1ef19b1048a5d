package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

// Editor manages a set of form fields built from field configs: focus
// cycling, value collection, and validation.
//
// Validity is only computed while rendering. Until a Template pass has run
// with validation-marking enabled, IsValid reports false regardless of field
// contents; callers that need a trustworthy answer must mark validation,
// wait for one render, and only then read the flag. The form dialogs encode
// that ordering in their submit protocol.
type Editor struct {
	configs   []FieldConfig
	fields    []Field
	errors    []string
	factories map[string]Factory

	focused         int
	markValidation  bool
	valid           bool
	submitRequested bool
}

// NewEditor creates an editor with the built-in field types registered.
func NewEditor() *Editor {
	return &Editor{
		factories: BuiltinFactories(),
	}
}

// AddFieldTypes merges custom field type factories, overriding built-ins on
// name collision. Project types use this to install their own widgets.
func (e *Editor) AddFieldTypes(factories map[string]Factory) {
	for name, factory := range factories {
		e.factories[name] = factory
	}
	// Rebuild so fields created before the registration pick up the new
	// factories.
	e.rebuild()
}

// AddField appends a field built from cfg. Unknown types fall back to a
// plain text field.
func (e *Editor) AddField(cfg FieldConfig) {
	e.configs = append(e.configs, cfg)
	e.fields = append(e.fields, e.construct(cfg))
	e.errors = append(e.errors, "")

	if len(e.fields) == 1 {
		e.fields[0].Focus()
	}
}

// ResetFields rebuilds every field to its default value and clears
// validation state. Called after a successful submit.
func (e *Editor) ResetFields() {
	e.markValidation = false
	e.valid = false
	e.submitRequested = false
	e.rebuild()
}

func (e *Editor) rebuild() {
	e.fields = make([]Field, len(e.configs))
	e.errors = make([]string, len(e.configs))
	for i, cfg := range e.configs {
		e.fields[i] = e.construct(cfg)
	}
	e.focused = 0
	if len(e.fields) > 0 {
		e.fields[0].Focus()
	}
}

func (e *Editor) construct(cfg FieldConfig) Field {
	factory, ok := e.factories[cfg.Type]
	if !ok {
		factory = e.factories[TypeString]
	}
	return factory(cfg)
}

// Value returns a map of field names to current values.
func (e *Editor) Value() map[string]any {
	out := make(map[string]any, len(e.fields))
	for i, field := range e.fields {
		out[e.configs[i].Name] = field.Value()
	}
	return out
}

// IsClean reports whether no field has been touched since the last reset.
func (e *Editor) IsClean() bool {
	for _, field := range e.fields {
		if field.Touched() {
			return false
		}
	}
	return true
}

// SetMarkValidation enables or disables validation-marking. Enabling it does
// not compute anything by itself; the next Template pass does.
func (e *Editor) SetMarkValidation(v bool) { e.markValidation = v }

// MarkValidation reports whether validation-marking is enabled.
func (e *Editor) MarkValidation() bool { return e.markValidation }

// IsValid reports the validity computed by the last validation-marked
// Template pass. Stale (false) before that.
func (e *Editor) IsValid() bool { return e.valid }

// SubmitRequested reports whether the user advanced past the last field.
func (e *Editor) SubmitRequested() bool { return e.submitRequested }

// ClearSubmitRequest resets the submit request flag.
func (e *Editor) ClearSubmitRequest() { e.submitRequested = false }

// Update handles key input, managing focus cycling.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return e.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return e.advanceFocus()
	case "shift+tab":
		return e.retreatFocus()
	case "enter":
		if e.isTextAreaFocused() {
			// Let the textarea handle enter for newline insertion.
			return e.updateFocused(msg)
		}
		return e.advanceFocus()
	}

	return e.updateFocused(msg)
}

// Template renders the form. When validation-marking is enabled this is also
// where field validity is computed: each field's rules run against its
// current value and the aggregate lands in IsValid.
func (e *Editor) Template(width int) string {
	if e.markValidation {
		e.validate()
	}

	var parts []string
	for i, field := range e.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
		if e.markValidation && e.errors[i] != "" {
			parts = append(parts, styles.FormErrorStyle.Render("  "+e.errors[i]))
		}
	}

	if len(parts) == 0 {
		return styles.TextMutedStyle.Render("No fields")
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

func (e *Editor) validate() {
	valid := true
	for i, field := range e.fields {
		value, _ := field.Value().(string)
		e.errors[i] = e.configs[i].Validation.ValidateText(value)
		if e.errors[i] != "" {
			valid = false
		}
	}
	e.valid = valid
}

func (e *Editor) advanceFocus() tea.Cmd {
	if len(e.fields) == 0 {
		return nil
	}

	next := e.focused + 1
	if next >= len(e.fields) {
		// Past the last field: submit.
		e.submitRequested = true
		return nil
	}

	e.fields[e.focused].Blur()
	e.focused = next
	return e.fields[e.focused].Focus()
}

func (e *Editor) retreatFocus() tea.Cmd {
	if len(e.fields) == 0 || e.focused == 0 {
		return nil
	}

	e.fields[e.focused].Blur()
	e.focused--
	return e.fields[e.focused].Focus()
}

func (e *Editor) updateFocused(msg tea.Msg) tea.Cmd {
	if len(e.fields) == 0 {
		return nil
	}

	var cmd tea.Cmd
	e.fields[e.focused], cmd = e.fields[e.focused].Update(msg)
	return cmd
}

func (e *Editor) isTextAreaFocused() bool {
	if len(e.fields) == 0 {
		return false
	}
	_, ok := e.fields[e.focused].(*TextAreaField)
	return ok
}
