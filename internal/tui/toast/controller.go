// Package toast presents transient notification popups. Each toast counts
// down a fixed time-to-live; losing terminal focus or hovering a toast
// pauses the countdown and resumes it from where it stopped.
package toast

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
)

// renderRequester is the slice of the render scheduler the controller needs.
type renderRequester interface {
	RequestRender()
}

// Toast is a single on-screen popup with its own countdown.
type Toast struct {
	ID           uuid.UUID
	Notification *notify.Notification

	remaining         time.Duration
	hovered           bool
	disableHoverPause bool
}

// Remaining returns the time left before auto-dismiss.
func (t *Toast) Remaining() time.Duration { return t.remaining }

// Hovered reports whether the pointer is over this toast.
func (t *Toast) Hovered() bool { return t.hovered }

// Controller owns the active toasts. It subscribes to toast requests on the
// app registry and advances countdowns from the TUI tick.
type Controller struct {
	sched renderRequester
	store *notify.Store

	ttl               time.Duration
	disableHoverPause bool

	toasts  []*Toast
	blurred bool
}

// NewController creates a controller showing each toast for ttl and
// subscribes it to toast requests on reg.
func NewController(reg *events.Registry, store *notify.Store, sched renderRequester, ttl time.Duration, disableHoverPause bool) *Controller {
	c := &Controller{
		sched:             sched,
		store:             store,
		ttl:               ttl,
		disableHoverPause: disableHoverPause,
	}

	reg.AddListener(events.ToastShowRequested, func(data any) {
		if n, ok := data.(*notify.Notification); ok {
			c.Push(n)
		}
	})

	return c
}

// Push adds a toast for n with a fresh countdown.
func (c *Controller) Push(n *notify.Notification) *Toast {
	t := &Toast{
		ID:                uuid.New(),
		Notification:      n,
		remaining:         c.ttl,
		disableHoverPause: c.disableHoverPause,
	}
	c.toasts = append(c.toasts, t)
	c.sched.RequestRender()
	return t
}

// Tick advances every unpaused countdown by d and dismisses expired toasts.
// Expiry does not mark the notification read; only explicit dismissal does.
func (c *Controller) Tick(d time.Duration) {
	if c.blurred || len(c.toasts) == 0 {
		return
	}

	changed := false
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.paused() {
			kept = append(kept, t)
			continue
		}

		t.remaining -= d
		changed = true
		if t.remaining > 0 {
			kept = append(kept, t)
		}
	}
	c.toasts = kept

	if changed {
		c.sched.RequestRender()
	}
}

func (t *Toast) paused() bool {
	return t.hovered && !t.disableHoverPause
}

// SetBlurred pauses every countdown while the terminal has lost focus.
func (c *Controller) SetBlurred(blurred bool) {
	c.blurred = blurred
}

// SetHover pauses or resumes a single toast's countdown. No-op for toasts
// created with hover-pausing disabled.
func (c *Controller) SetHover(id uuid.UUID, hovered bool) {
	for _, t := range c.toasts {
		if t.ID == id {
			t.hovered = hovered
			return
		}
	}
}

// Focused returns the keyboard-focused toast, or nil. Focus is the keyboard
// equivalent of hovering: it pauses the countdown the same way.
func (c *Controller) Focused() *Toast {
	for _, t := range c.toasts {
		if t.hovered {
			return t
		}
	}
	return nil
}

// FocusNext cycles keyboard focus through the toasts: newest first, then
// older, then no focus. With no toasts it is a no-op.
func (c *Controller) FocusNext() {
	if len(c.toasts) == 0 {
		return
	}

	cur := -1
	for i, t := range c.toasts {
		if t.hovered {
			cur = i
			break
		}
	}

	switch {
	case cur == -1:
		c.SetHover(c.toasts[len(c.toasts)-1].ID, true)
	case cur == 0:
		c.SetHover(c.toasts[0].ID, false)
	default:
		c.SetHover(c.toasts[cur].ID, false)
		c.SetHover(c.toasts[cur-1].ID, true)
	}
	c.sched.RequestRender()
}

// Dismiss removes a toast immediately and marks its notification read.
func (c *Controller) Dismiss(id uuid.UUID) {
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			c.store.Read(t.Notification)
			return
		}
	}
}

// Activate opens the toast's notification as the full single-notification
// view and hides the toast. The store's show path requests the render.
func (c *Controller) Activate(id uuid.UUID) {
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			c.store.Show(t.Notification)
			return
		}
	}
}

// Toasts returns the active toasts in display order. The slice is a copy.
func (c *Controller) Toasts() []*Toast {
	out := make([]*Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}
