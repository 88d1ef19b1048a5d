package modal

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/styles"
	"github.com/inkwell-sh/inkwell/internal/tui/form"
)

// fieldTypeProvider is implemented by project types: the custom form field
// factories the active project contributes.
type fieldTypeProvider interface {
	FormFieldTypes() map[string]form.Factory
}

// FormDialog is a dialog wrapping a structured-data editor. Submission runs
// the two-phase validate-then-submit protocol: the editor only computes
// validity during a render pass after validation-marking is enabled, so the
// first submit attempt marks validation, waits for one render to complete,
// and re-invokes itself before trusting the validity flags.
type FormDialog struct {
	*Dialog

	editor      *form.Editor
	data        map[string]any
	inlineError string
	onSubmit    func(values map[string]any)
}

// FormDialogConfig describes a form dialog to build.
type FormDialogConfig struct {
	Title    string
	Priority Priority
	Fields   []form.FieldConfig
	// Data pre-fills fields by name; it is deep-cloned so later mutation of
	// the caller's map cannot leak into the form.
	Data        map[string]any
	SubmitLabel string
	// Destructive renders the submit button in the extreme style.
	Destructive bool
	// OnSubmit runs once validation has passed, with the form values. It is
	// responsible for the external operation and for calling CompleteSuccess
	// or CompleteError.
	OnSubmit func(values map[string]any)
}

// NewFormDialog creates a hidden form dialog under the given key. It
// subscribes to project-type updates on app so forms opened before a
// project-type switch still render with the correct field types.
func NewFormDialog(key string, cfg FormDialogConfig, sched scheduler, app *events.Registry) *FormDialog {
	fd := &FormDialog{
		editor:   form.NewEditor(),
		data:     deepClone(cfg.Data),
		onSubmit: cfg.OnSubmit,
	}

	for _, fieldCfg := range cfg.Fields {
		if v, ok := fd.data[fieldCfg.Name].(string); ok {
			fieldCfg.Default = v
		}
		fd.editor.AddField(fieldCfg)
	}

	submitLabel := cfg.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	submitTier := TierPrimary
	if cfg.Destructive {
		submitTier = TierExtreme
	}

	actions := []Action{
		{Label: "Cancel", Tier: TierTertiary, OnClick: func() { fd.AttemptClose() }},
		{Label: submitLabel, Tier: submitTier, IsSubmit: true, OnClick: fd.Submit},
	}

	fd.Dialog = NewDialog(key, Config{
		Title:    cfg.Title,
		Priority: cfg.Priority,
		Template: fd.template,
	}, actions, sched)

	if app != nil {
		app.AddListener(events.ProjectTypeUpdated, func(data any) {
			if pt, ok := data.(fieldTypeProvider); ok {
				fd.editor.AddFieldTypes(pt.FormFieldTypes())
			}
		})
	}

	return fd
}

// Editor exposes the nested form editor.
func (fd *FormDialog) Editor() *form.Editor { return fd.editor }

// InlineError returns the error attached for inline display, if any.
func (fd *FormDialog) InlineError() string { return fd.inlineError }

// Submit runs the validate-then-submit protocol.
func (fd *FormDialog) Submit() {
	if !fd.Processing() {
		fd.StartProcessing()
	}

	if !fd.editor.MarkValidation() {
		// Validity flags are stale until one render runs with
		// validation-marking enabled. Register the re-invocation before
		// requesting the render; the pass completes synchronously.
		fd.editor.SetMarkValidation(true)
		fd.sched.OnceRenderComplete(fd.Submit)
		fd.sched.RequestRender()
		return
	}

	if fd.editor.IsClean() || !fd.editor.IsValid() {
		// Abort silently; the form's own error display covers it.
		fd.StopProcessing(false)
		return
	}

	if fd.onSubmit != nil {
		fd.onSubmit(fd.editor.Value())
	}
}

// CompleteSuccess finishes a successful submission: the form resets to empty
// and the dialog hides.
func (fd *FormDialog) CompleteSuccess() {
	fd.editor.ResetFields()
	fd.inlineError = ""
	fd.StopProcessing(true)
}

// CompleteError finishes a failed submission: the error shows inline and the
// dialog stays open for retry.
func (fd *FormDialog) CompleteError(message string) {
	fd.inlineError = message
	fd.StopProcessing(false)
}

// AttemptClose refuses to close while processing; otherwise it hides through
// the form-dialog Hide so inline state clears too.
func (fd *FormDialog) AttemptClose() bool {
	if fd.Processing() {
		return false
	}
	if fd.canClose != nil && !fd.canClose() {
		return false
	}
	fd.Hide()
	return true
}

// Toggle routes hiding through AttemptClose so inline state clears and the
// processing guard holds; the embedded Toggle would bypass both.
func (fd *FormDialog) Toggle() {
	if fd.Visible() {
		fd.AttemptClose()
		return
	}
	fd.Show()
}

// Hide clears inline state along with visibility.
func (fd *FormDialog) Hide() {
	fd.inlineError = ""
	fd.editor.SetMarkValidation(false)
	fd.Dialog.Hide()
}

func (fd *FormDialog) template(width, _ int) string {
	body := fd.editor.Template(width)
	if fd.inlineError == "" {
		return body
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		"",
		styles.ModalErrorStyle.Render(fd.inlineError),
	)
}

// Update delegates input to the editor; advancing past the last field
// triggers submission.
func (fd *FormDialog) Update(msg tea.Msg) tea.Cmd {
	if fd.Processing() {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == "esc" {
		fd.AttemptClose()
		return nil
	}

	cmd := fd.editor.Update(msg)

	if fd.editor.SubmitRequested() {
		fd.editor.ClearSubmitRequest()
		fd.Submit()
		return cmd
	}

	fd.sched.RequestRender()
	return cmd
}

// deepClone copies nested maps and slices so the dialog owns its data.
func deepClone(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepClone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
