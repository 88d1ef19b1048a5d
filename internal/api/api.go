// Package api defines the backend operations the editor invokes: file and
// workspace management plus publishing. Operations complete out of band and
// report through callbacks, so callers stay responsive while work runs.
package api

// Error is a user-presentable operation failure. Message is the short
// headline; Description carries detail suitable for a notification body.
type Error struct {
	Message     string
	Description string
}

func (e Error) Error() string {
	if e.Description == "" {
		return e.Message
	}
	return e.Message + ": " + e.Description
}

// CreateFileRequest describes a new content file to create.
type CreateFileRequest struct {
	Path        string
	FrontMatter map[string]any
	Body        string
}

// CopyFileRequest describes a file duplication.
type CopyFileRequest struct {
	Source string
	Dest   string
}

// DeleteFileRequest describes a file removal.
type DeleteFileRequest struct {
	Path string
}

// CreateWorkspaceRequest describes a new workspace.
type CreateWorkspaceRequest struct {
	Name string
}

// PublishRequest describes a publish run. Patterns are doublestar globs
// relative to the content directory; empty means everything.
type PublishRequest struct {
	Patterns []string
}

// FileResult reports the affected file path.
type FileResult struct {
	Path string
}

// WorkspaceResult reports the affected workspace.
type WorkspaceResult struct {
	Name string
	Path string
}

// PublishResult reports a completed publish run.
type PublishResult struct {
	RunID string
	Files int
	Dest  string
}

// Client is the backend the editor talks to. Exactly one of the two
// callbacks fires per call, never both, and never synchronously within the
// call itself.
type Client interface {
	CreateFile(req CreateFileRequest, onSuccess func(FileResult), onError func(Error))
	CopyFile(req CopyFileRequest, onSuccess func(FileResult), onError func(Error))
	DeleteFile(req DeleteFileRequest, onSuccess func(FileResult), onError func(Error))
	CreateWorkspace(req CreateWorkspaceRequest, onSuccess func(WorkspaceResult), onError func(Error))
	Publish(req PublishRequest, onSuccess func(PublishResult), onError func(Error))
}
