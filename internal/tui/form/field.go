// Package form implements the structured-data editor the form dialogs embed:
// typed fields built from collection definitions, with validation that is
// only computed during a render pass once validation-marking is enabled.
package form

import tea "charm.land/bubbletea/v2"

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() any    // string for text/textarea/select
	Label() string // display label for the field
	Touched() bool // user changed the value since construction/reset
}

// Option is a selectable value for select fields.
type Option struct {
	Value string
	Label string
}

// FieldConfig describes a field to construct. Type selects the factory;
// project types may register additional factories under custom type names.
type FieldConfig struct {
	Name        string
	Label       string
	Type        string
	Default     string
	Placeholder string
	Options     []Option
	Validation  FieldValidation
}

// Factory constructs a field from its config.
type Factory func(cfg FieldConfig) Field

// Built-in field type names.
const (
	TypeString = "string"
	TypeText   = "text"
	TypeSelect = "select"
)

// BuiltinFactories returns the default field type registrations.
func BuiltinFactories() map[string]Factory {
	return map[string]Factory{
		TypeString: func(cfg FieldConfig) Field {
			return NewTextField(cfg.Label, cfg.Placeholder, cfg.Default)
		},
		TypeText: func(cfg FieldConfig) Field {
			return NewTextAreaField(cfg.Label, cfg.Placeholder, cfg.Default)
		},
		TypeSelect: func(cfg FieldConfig) Field {
			values := make([]string, len(cfg.Options))
			for i, opt := range cfg.Options {
				values[i] = opt.Value
			}
			return NewSelectField(cfg.Label, values, cfg.Default)
		},
	}
}
