// Package render provides the single debounced re-render entry point for the
// UI. Every state mutation anywhere in the application funnels through
// Scheduler.RequestRender; concurrent requests within one pass are coalesced
// into a single follow-up pass.
package render

import (
	"github.com/inkwell-sh/inkwell/internal/core/events"
)

// RenderFunc produces and commits the new visual output. It runs
// synchronously and must not call RequestRender on its own scheduler except
// to signal that a later pass is needed.
type RenderFunc func()

// Scheduler coalesces render requests into single render passes.
//
// State machine: Idle or Rendering, plus a pending flag recording that a
// request arrived while a pass was in flight. Exactly one pass executes at a
// time; a mutation made during a pass is guaranteed to be visible in a
// follow-up pass, never dropped.
type Scheduler struct {
	reg    *events.Registry
	render RenderFunc

	rendering bool
	pending   bool

	width, height int
}

// NewScheduler creates a scheduler that invokes render on each pass and
// announces completion on reg.
func NewScheduler(reg *events.Registry, render RenderFunc) *Scheduler {
	return &Scheduler{reg: reg, render: render}
}

// RequestRender performs a render pass, or schedules one if a pass is already
// in flight. After each committed pass the RenderComplete event fires; if any
// request arrived during the pass, another full pass runs until no request
// was made during the last one.
//
// A panicking render pass propagates to the caller, but the Rendering state
// is released in a defer so the scheduler never wedges shut.
func (s *Scheduler) RequestRender() {
	if s.rendering {
		s.pending = true
		return
	}

	s.reg.Trigger(events.RenderRequested, nil)

	s.rendering = true
	func() {
		defer func() { s.rendering = false }()
		s.render()
	}()

	s.reg.Trigger(events.RenderComplete, nil)

	if s.pending {
		s.pending = false
		s.RequestRender()
	}
}

// OnRenderComplete registers fn for every completed pass.
func (s *Scheduler) OnRenderComplete(fn func()) events.ListenerID {
	return s.reg.AddListener(events.RenderComplete, func(any) { fn() })
}

// OnceRenderComplete registers fn for the next completed pass only. This is
// the deferral mechanism of the form-dialog submit protocol.
func (s *Scheduler) OnceRenderComplete(fn func()) events.ListenerID {
	return s.reg.Once(events.RenderComplete, func(any) { fn() })
}

// NotifyResize records a new window size and requests a render. Resize storms
// are coalesced: a size equal to the last observed one is a no-op.
func (s *Scheduler) NotifyResize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.RequestRender()
}

// Size returns the last observed window dimensions.
func (s *Scheduler) Size() (width, height int) {
	return s.width, s.height
}

// Rendering reports whether a render pass is currently in flight.
func (s *Scheduler) Rendering() bool {
	return s.rendering
}
