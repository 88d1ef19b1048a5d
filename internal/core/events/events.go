// Package events provides a synchronous listener registry and the closed set
// of domain events used for cross-component communication within inkwell.
package events

// Event identifies a domain event. The set is closed: components dispatch on
// these constants rather than on free-form strings.
type Event string

const (
	// RenderRequested fires when any component asks for a re-render.
	RenderRequested Event = "render.requested"
	// RenderComplete fires after a render pass has been committed.
	RenderComplete Event = "render.complete"

	NotificationAdded         Event = "notification.added"
	NotificationRead          Event = "notification.read"
	NotificationShowRequested Event = "notification.show-requested"
	ToastShowRequested        Event = "toast.show-requested"

	FileLoadRequested      Event = "file.load-requested"
	FileLoaded             Event = "file.loaded"
	WorkspaceLoadRequested Event = "workspace.load-requested"
	WorkspaceLoaded        Event = "workspace.loaded"
	ProjectTypeUpdated     Event = "project-type.updated"
)

// Component-scoped events used on per-modal registries.
const (
	Show   Event = "show"
	Hide   Event = "hide"
	Select Event = "select"
)

// FileLoadRequestedPayload carries the path of a file the user asked to open,
// e.g. from a notification's "Load file" action.
type FileLoadRequestedPayload struct {
	Path string
}

// WorkspaceLoadRequestedPayload carries the name of a workspace to switch to.
type WorkspaceLoadRequestedPayload struct {
	Name string
}
