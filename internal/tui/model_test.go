package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-sh/inkwell/internal/core/config"
	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
)

func newTestModel(t *testing.T) (*Model, *AppContext) {
	t.Helper()

	ctx := NewAppContext(config.Default(), nil, zerolog.Nop())
	m := NewModel(ctx)
	ctx.Scheduler.NotifyResize(80, 24)
	return m, ctx
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestModel_renderPass_forceOpensNotificationsOnError(t *testing.T) {
	_, ctx := newTestModel(t)

	ctx.Notifications.AddError(&notify.Notification{Message: "publish failed"}, false)

	list, ok := ctx.Modals.Lookup(modalKeyNotifications)
	require.True(t, ok)
	assert.True(t, list.Visible(), "fresh error should force the notification list open")

	// The flag is consumed: closing the list and rendering again must not
	// reopen it.
	list.Hide()
	ctx.Scheduler.RequestRender()
	assert.False(t, list.Visible())
}

func TestModel_renderPass_errorAlreadyDisplayedStaysQuiet(t *testing.T) {
	_, ctx := newTestModel(t)

	ctx.Notifications.AddError(&notify.Notification{Message: "inline failure"}, true)

	if list, ok := ctx.Modals.Lookup(modalKeyNotifications); ok {
		assert.False(t, list.Visible())
	}
}

func TestModel_renderPass_currentNotificationShownAndRead(t *testing.T) {
	_, ctx := newTestModel(t)

	n := &notify.Notification{Message: "file created"}
	ctx.Notifications.AddInfo(n)
	ctx.Notifications.Show(n)

	m, ok := ctx.Modals.Lookup(modalKeyNotification)
	require.True(t, ok)
	assert.True(t, m.Visible())
	assert.True(t, n.IsRead(), "pinned notification is read once on screen")

	m.Hide()
	assert.Nil(t, ctx.Notifications.Current(), "hiding the detail view unpins")
}

func TestModel_handleModalKey_digitActivatesAction(t *testing.T) {
	m, ctx := newTestModel(t)

	const activated = events.Event("test:activated")
	var got any
	ctx.Events.AddListener(activated, func(data any) { got = data })

	n := &notify.Notification{
		Message: "workspace created",
		Actions: []notify.Action{
			{Label: "Switch to it", Event: activated, Payload: "drafts"},
		},
	}
	ctx.Notifications.AddInfo(n)
	ctx.Notifications.Show(n)

	_, _ = m.Update(keyPress('1'))

	assert.Equal(t, "drafts", got)
	detail, ok := ctx.Modals.Lookup(modalKeyNotification)
	require.True(t, ok)
	assert.False(t, detail.Visible())
}

func TestModel_handleModalKey_outOfRangeDigitIgnored(t *testing.T) {
	m, ctx := newTestModel(t)

	n := &notify.Notification{Message: "no actions here"}
	ctx.Notifications.AddInfo(n)
	ctx.Notifications.Show(n)

	_, _ = m.Update(keyPress('3'))

	detail, ok := ctx.Modals.Lookup(modalKeyNotification)
	require.True(t, ok)
	assert.True(t, detail.Visible())
}

func TestModel_update_dispatchDrainRunsInOrder(t *testing.T) {
	m, ctx := newTestModel(t)

	var order []string
	ctx.Dispatch.Push(func() { order = append(order, "first") })
	ctx.Dispatch.Push(func() { order = append(order, "second") })

	_, cmd := m.Update(dispatchMsg{})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.NotNil(t, cmd, "drain re-arms the signal wait")
	assert.Empty(t, ctx.Dispatch.Drain())
}

func TestModel_update_windowSizePropagates(t *testing.T) {
	m, ctx := newTestModel(t)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	w, h := ctx.Scheduler.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
	assert.NotEmpty(t, m.view.Frame())
}

func TestModel_update_blurPausesToasts(t *testing.T) {
	m, ctx := newTestModel(t)

	ctx.Notifications.AddInfo(&notify.Notification{Message: "hello"})
	require.Len(t, ctx.Toasts.Toasts(), 1)
	before := ctx.Toasts.Toasts()[0].Remaining()

	_, _ = m.Update(tea.BlurMsg{})
	_, _ = m.Update(toastTickMsg{})

	assert.Equal(t, before, ctx.Toasts.Toasts()[0].Remaining())

	_, _ = m.Update(tea.FocusMsg{})
	_, _ = m.Update(toastTickMsg{})

	assert.Less(t, ctx.Toasts.Toasts()[0].Remaining(), before)
}

func TestModel_handleKey_opensDialogsAndModals(t *testing.T) {
	t.Run("new file dialog", func(t *testing.T) {
		m, ctx := newTestModel(t)
		_, _ = m.Update(keyPress('a'))

		fd, ok := ctx.Modals.Lookup(modalKeyNewFile)
		require.True(t, ok)
		assert.True(t, fd.Visible())
	})

	t.Run("notification list toggles", func(t *testing.T) {
		m, ctx := newTestModel(t)
		_, _ = m.Update(keyPress('n'))

		list, ok := ctx.Modals.Lookup(modalKeyNotifications)
		require.True(t, ok)
		assert.True(t, list.Visible())

		_, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
		assert.False(t, list.Visible())
	})

	t.Run("mark all read", func(t *testing.T) {
		m, ctx := newTestModel(t)
		ctx.Notifications.AddWarning(&notify.Notification{Message: "careful"})
		require.Equal(t, 1, ctx.Notifications.UnreadCount())

		_, _ = m.Update(keyPress('R'))
		assert.Zero(t, ctx.Notifications.UnreadCount())
	})
}

func TestModel_toastKeys(t *testing.T) {
	t.Run("focus pauses the countdown", func(t *testing.T) {
		m, ctx := newTestModel(t)
		ctx.Notifications.AddInfo(&notify.Notification{Message: "hold"})

		_, _ = m.Update(keyPress('t'))
		before := ctx.Toasts.Toasts()[0].Remaining()
		_, _ = m.Update(toastTickMsg{})
		assert.Equal(t, before, ctx.Toasts.Toasts()[0].Remaining())

		// Cycling past the only toast clears focus and resumes.
		_, _ = m.Update(keyPress('t'))
		_, _ = m.Update(toastTickMsg{})
		assert.Less(t, ctx.Toasts.Toasts()[0].Remaining(), before)
	})

	t.Run("dismiss removes the newest toast and marks it read", func(t *testing.T) {
		m, ctx := newTestModel(t)
		older := &notify.Notification{Message: "older"}
		newer := &notify.Notification{Message: "newer"}
		ctx.Notifications.AddInfo(older)
		ctx.Notifications.AddInfo(newer)

		_, _ = m.Update(keyPress('x'))

		require.Len(t, ctx.Toasts.Toasts(), 1)
		assert.Equal(t, "older", ctx.Toasts.Toasts()[0].Notification.Message)
		assert.True(t, newer.IsRead())
		assert.False(t, older.IsRead())
	})

	t.Run("open pins the notification as the full view", func(t *testing.T) {
		m, ctx := newTestModel(t)
		n := &notify.Notification{Message: "details inside"}
		ctx.Notifications.AddInfo(n)

		_, _ = m.Update(keyPress('o'))

		assert.Empty(t, ctx.Toasts.Toasts())
		require.Same(t, n, ctx.Notifications.Current())
		detail, ok := ctx.Modals.Lookup(modalKeyNotification)
		require.True(t, ok)
		assert.True(t, detail.Visible())
	})

	t.Run("dismiss with no toasts is a no-op", func(t *testing.T) {
		m, ctx := newTestModel(t)
		_, _ = m.Update(keyPress('x'))
		assert.Empty(t, ctx.Toasts.Toasts())
	})
}

func TestModel_handleKey_quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyPress('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
}

func TestModel_fileLoadFailureNotifies(t *testing.T) {
	_, ctx := newTestModel(t)

	ctx.Events.Trigger(events.FileLoadRequested, events.FileLoadRequestedPayload{
		Path: "does/not/exist.md",
	})

	notifications := ctx.Notifications.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.LevelError, notifications[0].Level)
	assert.Contains(t, notifications[0].Message, "does/not/exist.md")
	assert.Nil(t, ctx.State.File())
}
