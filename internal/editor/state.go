// Package editor holds the editing session state: which file and workspace
// are open and which project type is active. State changes are announced on
// the owning listener registry so panes and dialogs can react without
// holding references to each other.
package editor

import (
	"github.com/inkwell-sh/inkwell/internal/content"
	"github.com/inkwell-sh/inkwell/internal/core/events"
)

// State is the mutable editing session. It owns its listener registry;
// components subscribe through Events().
type State struct {
	reg *events.Registry

	file        *content.Document
	workspace   string
	projectType *ProjectType
}

// NewState creates a session with the given project type active and no file
// or workspace loaded.
func NewState(reg *events.Registry, pt *ProjectType) *State {
	return &State{
		reg:         reg,
		projectType: pt,
	}
}

// Events exposes the registry state changes are announced on.
func (s *State) Events() *events.Registry { return s.reg }

// File returns the currently open document, or nil.
func (s *State) File() *content.Document { return s.file }

// SetFile replaces the open document and announces FileLoaded.
func (s *State) SetFile(doc *content.Document) {
	s.file = doc
	s.reg.Trigger(events.FileLoaded, doc)
}

// Workspace returns the active workspace name; empty means the default
// workspace.
func (s *State) Workspace() string { return s.workspace }

// SetWorkspace switches the active workspace and announces WorkspaceLoaded.
func (s *State) SetWorkspace(name string) {
	s.workspace = name
	s.reg.Trigger(events.WorkspaceLoaded, name)
}

// ProjectType returns the active project type.
func (s *State) ProjectType() *ProjectType { return s.projectType }

// SetProjectType switches the active project type and announces
// ProjectTypeUpdated. Form dialogs listen for this to re-register custom
// field types.
func (s *State) SetProjectType(pt *ProjectType) {
	s.projectType = pt
	s.reg.Trigger(events.ProjectTypeUpdated, pt)
}
