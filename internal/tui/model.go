package tui

import (
	"os"
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/inkwell-sh/inkwell/internal/content"
	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
	"github.com/inkwell-sh/inkwell/internal/tui/toast"
)

type toastTickMsg struct{}

const toastTickInterval = time.Second

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// Model is the bubbletea program. All state lives in the AppContext; the
// model translates terminal events into context mutations and returns the
// scheduler's committed frame.
type Model struct {
	ctx      *AppContext
	keys     keyMap
	view     *viewRenderer
	quitting bool
}

// NewModel builds the TUI around an app context.
func NewModel(ctx *AppContext) *Model {
	m := &Model{
		ctx:  ctx,
		keys: defaultKeyMap(),
		view: newViewRenderer(ctx),
	}
	ctx.SetRenderFunc(m.view.renderPass)

	if err := ctx.Parts.Register(partPreview, func() Part {
		return newPreviewPart(ctx)
	}); err != nil {
		ctx.Log.Error().Err(err).Msg("part registration failed")
	}

	m.subscribe()
	return m
}

// subscribe wires the domain events the shell reacts to.
func (m *Model) subscribe() {
	m.ctx.Events.AddListener(events.FileLoadRequested, func(data any) {
		if payload, ok := data.(events.FileLoadRequestedPayload); ok {
			m.loadFile(payload.Path)
		}
	})
	m.ctx.Events.AddListener(events.WorkspaceLoadRequested, func(data any) {
		if payload, ok := data.(events.WorkspaceLoadRequestedPayload); ok {
			m.ctx.State.SetWorkspace(payload.Name)
		}
	})

	// State transitions re-render whatever is on screen.
	for _, ev := range []events.Event{events.FileLoaded, events.WorkspaceLoaded, events.ProjectTypeUpdated} {
		m.ctx.Events.AddListener(ev, func(any) {
			m.ctx.Scheduler.RequestRender()
		})
	}
}

// loadFile reads a content file from disk into the session.
func (m *Model) loadFile(path string) {
	full := filepath.Join(m.ctx.Config.ContentDir, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		m.ctx.Notifications.AddError(&notify.Notification{
			Message:     "Could not open " + path,
			Description: err.Error(),
		}, false)
		return
	}

	doc, err := content.Parse(path, data)
	if err != nil {
		m.ctx.Notifications.AddError(&notify.Notification{
			Message:     "Could not parse " + path,
			Description: err.Error(),
		}, false)
		return
	}

	m.ctx.Log.Debug().Str("path", path).Msg("file loaded")
	m.ctx.State.SetFile(&doc)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.ctx.Dispatch.WaitForSignal(),
		scheduleToastTick(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ctx.Scheduler.NotifyResize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.ctx.Toasts.SetBlurred(false)
		m.ctx.Scheduler.RequestRender()
		return m, nil

	case tea.BlurMsg:
		m.ctx.Toasts.SetBlurred(true)
		return m, nil

	case toastTickMsg:
		m.ctx.Toasts.Tick(toastTickInterval)
		return m, scheduleToastTick()

	case dispatchMsg:
		for _, fn := range m.ctx.Dispatch.Drain() {
			fn()
		}
		return m, m.ctx.Dispatch.WaitForSignal()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.ctx.Modals.AnyVisible() {
		return m, m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.view.helpModal(m.keys).Toggle()

	case key.Matches(msg, m.keys.Notifications):
		m.view.notificationListModal().Toggle()

	case key.Matches(msg, m.keys.MarkAllRead):
		m.ctx.Notifications.MarkAllRead()

	case key.Matches(msg, m.keys.NewFile):
		newFileDialog(m.ctx).Show()

	case key.Matches(msg, m.keys.CopyFile):
		copyFileDialog(m.ctx).Show()

	case key.Matches(msg, m.keys.DeleteFile):
		deleteFileDialog(m.ctx).Show()

	case key.Matches(msg, m.keys.NewWorkspace):
		newWorkspaceDialog(m.ctx).Show()

	case key.Matches(msg, m.keys.Publish):
		publishDialog(m.ctx).Show()

	case key.Matches(msg, m.keys.ToastFocus):
		m.ctx.Toasts.FocusNext()

	case key.Matches(msg, m.keys.ToastDismiss):
		if t := m.targetToast(); t != nil {
			m.ctx.Toasts.Dismiss(t.ID)
		}

	case key.Matches(msg, m.keys.ToastOpen):
		if t := m.targetToast(); t != nil {
			m.ctx.Toasts.Activate(t.ID)
		}
	}

	return m, nil
}

// targetToast is the toast dismiss/open act on: the focused one, or the
// newest when nothing is focused.
func (m *Model) targetToast() *toast.Toast {
	if t := m.ctx.Toasts.Focused(); t != nil {
		return t
	}
	toasts := m.ctx.Toasts.Toasts()
	if len(toasts) == 0 {
		return nil
	}
	return toasts[len(toasts)-1]
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	top := m.ctx.Modals.Top()
	if top == nil {
		return nil
	}

	switch top.Key() {
	case modalKeyNotification:
		// Digit keys activate the pinned notification's follow-up actions.
		if n := m.ctx.Notifications.Current(); n != nil {
			if idx := digitIndex(msg.String()); idx >= 0 && idx < len(n.Actions) {
				action := n.Actions[idx]
				top.Hide()
				m.ctx.Events.Trigger(action.Event, action.Payload)
				return nil
			}
		}

	case modalKeyNotifications:
		if key.Matches(msg, m.keys.MarkAllRead) {
			m.ctx.Notifications.MarkAllRead()
			return nil
		}
	}

	return top.Update(msg)
}

func digitIndex(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.view.Frame())
	v.ReportFocus = true
	return v
}
