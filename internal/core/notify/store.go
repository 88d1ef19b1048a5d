package notify

import (
	"github.com/inkwell-sh/inkwell/internal/core/events"
)

// renderRequester is the slice of the render scheduler the store needs.
type renderRequester interface {
	RequestRender()
}

// Store is the session-scoped notification set. It decides the presentation
// surface for each intake: errors that were not already displayed raise the
// new-error condition (the template layer force-opens the notification list),
// everything else unread becomes a toast.
type Store struct {
	reg       *events.Registry
	scheduler renderRequester

	entries []*Notification
	seen    map[*Notification]struct{}

	current     *Notification
	hasNewError bool
}

// NewStore creates a notification store publishing on reg and requesting
// renders through scheduler.
func NewStore(reg *events.Registry, scheduler renderRequester) *Store {
	return &Store{
		reg:       reg,
		scheduler: scheduler,
		seen:      make(map[*Notification]struct{}),
	}
}

// AddDebug adds n at debug level.
func (s *Store) AddDebug(n *Notification) { s.Add(n, LevelDebug, false) }

// AddInfo adds n at info level.
func (s *Store) AddInfo(n *Notification) { s.Add(n, LevelInfo, false) }

// AddWarning adds n at warning level.
func (s *Store) AddWarning(n *Notification) { s.Add(n, LevelWarning, false) }

// AddError adds n at error level. alreadyDisplayed suppresses the new-error
// escalation for errors the user can already see inline (e.g. in an open
// form dialog).
func (s *Store) AddError(n *Notification, alreadyDisplayed bool) {
	s.Add(n, LevelError, alreadyDisplayed)
}

// Add scrubs n, inserts it into the set, and routes its presentation.
// Re-adding the same pointer is a no-op for storage but still re-routes.
func (s *Store) Add(n *Notification, level Level, alreadyDisplayed bool) {
	n.scrub(level)

	if _, ok := s.seen[n]; !ok {
		s.seen[n] = struct{}{}
		s.entries = append(s.entries, n)
	}

	s.reg.Trigger(events.NotificationAdded, n)

	if n.Level == LevelError && !alreadyDisplayed {
		s.hasNewError = true
	} else if !n.read {
		s.reg.Trigger(events.ToastShowRequested, n)
	}

	s.scheduler.RequestRender()
}

// Show surfaces n immediately as a single-notification modal regardless of
// level, e.g. publish completion. The template layer reads Current on the
// next render and marks it read.
func (s *Store) Show(n *Notification) {
	n.scrub(0)

	if _, ok := s.seen[n]; !ok {
		s.seen[n] = struct{}{}
		s.entries = append(s.entries, n)
	}

	s.current = n
	s.reg.Trigger(events.NotificationShowRequested, n)
	s.scheduler.RequestRender()
}

// Current returns the notification pinned for single-notification display,
// or nil.
func (s *Store) Current() *Notification { return s.current }

// ClearCurrent unpins the single-notification display.
func (s *Store) ClearCurrent() {
	if s.current == nil {
		return
	}
	s.current = nil
	s.scheduler.RequestRender()
}

// Read marks n read, scrubbing it first if it was never formally added.
// Calling Read twice is harmless.
func (s *Store) Read(n *Notification) {
	n.scrub(0)
	wasUnread := !n.read
	n.read = true
	if wasUnread {
		s.reg.Trigger(events.NotificationRead, n)
	}
	s.scheduler.RequestRender()
}

// MarkAllRead flips every notification to read. The set is snapshotted
// before iterating so listener callbacks may add entries safely.
func (s *Store) MarkAllRead() {
	snapshot := make([]*Notification, len(s.entries))
	copy(snapshot, s.entries)

	for _, n := range snapshot {
		if !n.read {
			n.read = true
			s.reg.Trigger(events.NotificationRead, n)
		}
	}
	s.scheduler.RequestRender()
}

// HasUnreadAtLevel reports whether any unread notification has level >= the
// given level. Drives the bell vs bell-with-exclamation status icon.
func (s *Store) HasUnreadAtLevel(level Level) bool {
	for _, n := range s.entries {
		if !n.read && n.Level >= level {
			return true
		}
	}
	return false
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	count := 0
	for _, n := range s.entries {
		if !n.read {
			count++
		}
	}
	return count
}

// Notifications returns the entries in insertion order. The returned slice is
// a copy; the notifications themselves are shared.
func (s *Store) Notifications() []*Notification {
	out := make([]*Notification, len(s.entries))
	copy(out, s.entries)
	return out
}

// HasNewError reports the pending force-open condition for the notification
// list modal.
func (s *Store) HasNewError() bool { return s.hasNewError }

// ConsumeNewError returns the new-error condition and clears it. The template
// layer calls this once per render when deciding whether to force-open the
// notification list.
func (s *Store) ConsumeNewError() bool {
	had := s.hasNewError
	s.hasNewError = false
	return had
}
