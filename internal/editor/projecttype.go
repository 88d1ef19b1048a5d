package editor

import "github.com/inkwell-sh/inkwell/internal/tui/form"

// ProjectType bundles the behavior a site flavor contributes to the editor:
// a display name and the custom form field types its collections may use.
type ProjectType struct {
	Name       string
	FieldTypes map[string]form.Factory
}

// FormFieldTypes returns the custom form field factories this project type
// contributes. Form dialogs re-apply these whenever the active project type
// changes.
func (p *ProjectType) FormFieldTypes() map[string]form.Factory {
	return p.FieldTypes
}

// Generic is the built-in project type: no custom field types, built-ins
// only.
func Generic() *ProjectType {
	return &ProjectType{
		Name:       "generic",
		FieldTypes: map[string]form.Factory{},
	}
}
