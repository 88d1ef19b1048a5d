// Package notify holds the in-memory notification store and its model types.
//
// Notifications live for the whole process: the store is an identity-keyed
// set, entries are mutated in place when read or expanded, and nothing is
// ever evicted.
package notify

import (
	"time"

	"github.com/inkwell-sh/inkwell/internal/core/events"
)

// Level is the severity of a notification. The zero value means "not yet
// assigned"; intake defaults it to LevelInfo.
type Level int

const (
	LevelDebug Level = iota + 1
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Action is a follow-up a user can take from a notification, e.g. "Load file".
// Activating it triggers Event with Payload on the app registry.
type Action struct {
	Label   string
	Event   events.Event
	Payload any
}

// Notification is a leveled message shown to the user. Identity is the object
// reference: adding two structurally identical notifications produces two
// distinct entries.
type Notification struct {
	Message     string
	Description string
	Title       string
	Level       Level
	Actions     []Action
	AddedOn     time.Time

	read     bool
	expanded bool
	scrubbed bool
}

// IsRead reports whether the user has seen this notification.
func (n *Notification) IsRead() bool { return n.read }

// IsExpanded reports whether the notification is expanded in list views.
func (n *Notification) IsExpanded() bool { return n.expanded }

// ToggleExpanded flips the list-view expansion state.
func (n *Notification) ToggleExpanded() { n.expanded = !n.expanded }

// scrub normalizes a notification on intake: assigns level, timestamp and
// read state if absent. Scrubbing is idempotent.
func (n *Notification) scrub(level Level) {
	if n.scrubbed {
		return
	}
	if level != 0 {
		n.Level = level
	}
	if n.Level == 0 {
		n.Level = LevelInfo
	}
	if n.AddedOn.IsZero() {
		n.AddedOn = time.Now()
	}
	n.read = false
	n.scrubbed = true
}
