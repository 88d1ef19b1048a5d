package modal

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
	"github.com/inkwell-sh/inkwell/internal/core/render"
	"github.com/inkwell-sh/inkwell/internal/tui/form"
)

// submitHarness wires a form dialog into a real scheduler whose render pass
// draws the dialog, the way the view layer does. Render passes are the only
// place field validity gets computed, so the harness is what makes the
// submit protocol observable.
type submitHarness struct {
	sched *render.Scheduler
	store *notify.Store
	fd    *FormDialog

	log         []string
	createCalls int
	// deliver holds the pending success/error delivery, simulating the
	// backend completing out of band.
	deliver func()
}

func newSubmitHarness(t *testing.T) *submitHarness {
	t.Helper()

	h := &submitHarness{}
	reg := events.NewRegistry()
	h.sched = render.NewScheduler(reg, func() {
		h.log = append(h.log, "render")
		if h.fd != nil && h.fd.Visible() {
			h.fd.View(80, 24)
		}
	})
	h.store = notify.NewStore(reg, h.sched)

	h.fd = NewFormDialog("new-file", FormDialogConfig{
		Title: "New File",
		Fields: []form.FieldConfig{{
			Name:       "path",
			Label:      "Path",
			Type:       form.TypeString,
			Validation: form.FieldValidation{Required: true},
		}},
		SubmitLabel: "Create",
		OnSubmit: func(values map[string]any) {
			h.log = append(h.log, "create-file")
			h.createCalls++
			path := values["path"].(string)
			h.deliver = func() {
				h.store.AddInfo(&notify.Notification{Message: "Created " + path})
				h.fd.CompleteSuccess()
			}
		},
	}, h.sched, reg)

	return h
}

func (h *submitHarness) typePath(t *testing.T, path string) {
	t.Helper()
	for _, r := range path {
		h.fd.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestFormDialog_submitProtocol(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()
	h.typePath(t, "/content/foo.yaml")
	require.False(t, h.fd.Editor().MarkValidation())

	h.log = nil
	h.fd.Submit()

	// Processing engaged immediately and stayed on through the deferred
	// re-invocation; the backend call waited for a completed
	// validation render.
	assert.True(t, h.fd.Processing())
	assert.Equal(t, 1, h.createCalls)
	require.GreaterOrEqual(t, len(h.log), 2)
	assert.Equal(t, "render", h.log[0], "validation render precedes the backend call")
	assert.Contains(t, h.log, "create-file")
	assert.True(t, h.fd.Editor().MarkValidation())

	// Backend completes out of band.
	require.NotNil(t, h.deliver)
	h.deliver()

	notifications := h.store.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.LevelInfo, notifications[0].Level)
	assert.Contains(t, notifications[0].Message, "/content/foo.yaml")

	assert.False(t, h.fd.Visible())
	assert.False(t, h.fd.Processing())
	assert.True(t, h.fd.Editor().IsClean(), "form reset after success")
}

func TestFormDialog_invalidFormAbortsSilently(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()

	// Required field left empty.
	h.fd.Submit()

	assert.Equal(t, 0, h.createCalls, "no backend call for an invalid form")
	assert.False(t, h.fd.Processing())
	assert.True(t, h.fd.Visible(), "dialog stays open")
	assert.Empty(t, h.store.Notifications())
}

func TestFormDialog_cleanFormAborts(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()

	// Pre-marked validation with untouched fields: clean form, no call.
	h.fd.Editor().SetMarkValidation(true)
	h.sched.RequestRender()
	h.fd.Submit()

	assert.Equal(t, 0, h.createCalls)
	assert.False(t, h.fd.Processing())
}

func TestFormDialog_errorKeepsDialogOpenForRetry(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()
	h.typePath(t, "/content/foo.yaml")

	h.fd.Submit()
	require.Equal(t, 1, h.createCalls)

	// Simulate the backend failing instead of succeeding.
	h.store.AddError(&notify.Notification{Message: "File already exists"}, true)
	h.fd.CompleteError("File already exists")

	assert.True(t, h.fd.Visible())
	assert.False(t, h.fd.Processing())
	assert.Equal(t, "File already exists", h.fd.InlineError())
	assert.False(t, h.store.HasNewError(), "inline-displayed errors do not force-open the list")

	// Retry succeeds without re-running the validation deferral: one render
	// from StartProcessing, then straight to the backend.
	h.log = nil
	h.fd.Submit()
	assert.Equal(t, 2, h.createCalls)
	assert.Equal(t, []string{"render", "create-file"}, h.log)
}

func TestFormDialog_escBlockedWhileProcessing(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()
	h.typePath(t, "/content/foo.yaml")
	h.fd.Submit()
	require.True(t, h.fd.Processing())

	h.fd.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.True(t, h.fd.Visible())
}

func TestFormDialog_hideClearsInlineState(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()
	h.fd.CompleteError("boom")
	require.Equal(t, "boom", h.fd.InlineError())

	h.fd.Hide()
	assert.Empty(t, h.fd.InlineError())
	assert.False(t, h.fd.Editor().MarkValidation())
}

func TestFormDialog_toggleClearsInlineState(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()
	h.fd.Editor().SetMarkValidation(true)
	h.fd.CompleteError("boom")
	require.Equal(t, "boom", h.fd.InlineError())

	h.fd.Toggle()
	assert.False(t, h.fd.Visible())
	assert.Empty(t, h.fd.InlineError())
	assert.False(t, h.fd.Editor().MarkValidation())
}

func TestFormDialog_toggleBlockedWhileProcessing(t *testing.T) {
	h := newSubmitHarness(t)
	h.fd.Show()
	h.typePath(t, "/content/foo.yaml")
	h.fd.Submit()
	require.True(t, h.fd.Processing())

	h.fd.Toggle()
	assert.True(t, h.fd.Visible())
}

func TestFormDialog_projectTypeUpdateReappliesFieldTypes(t *testing.T) {
	reg := events.NewRegistry()
	sched := render.NewScheduler(reg, func() {})

	fd := NewFormDialog("new-file", FormDialogConfig{
		Fields: []form.FieldConfig{{Name: "path", Label: "Path", Type: "slug"}},
	}, sched, reg)

	reg.Trigger(events.ProjectTypeUpdated, stubProjectType{})

	assert.Equal(t, "from-custom-type", fd.Editor().Value()["path"])
}

type stubProjectType struct{}

func (stubProjectType) FormFieldTypes() map[string]form.Factory {
	return map[string]form.Factory{
		"slug": func(cfg form.FieldConfig) form.Field {
			return form.NewTextField(cfg.Label, cfg.Placeholder, "from-custom-type")
		},
	}
}
