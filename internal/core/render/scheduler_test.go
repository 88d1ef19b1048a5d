package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-sh/inkwell/internal/core/events"
)

func TestScheduler_RequestRender_runs_one_pass(t *testing.T) {
	reg := events.NewRegistry()

	passes := 0
	s := NewScheduler(reg, func() { passes++ })

	s.RequestRender()

	assert.Equal(t, 1, passes)
	assert.False(t, s.Rendering())
}

func TestScheduler_coalesces_requests_made_during_pass(t *testing.T) {
	reg := events.NewRegistry()

	passes := 0
	var s *Scheduler
	s = NewScheduler(reg, func() {
		passes++
		if passes == 1 {
			// Three mutations during the first pass collapse into one
			// follow-up pass.
			s.RequestRender()
			s.RequestRender()
			s.RequestRender()
		}
	})

	s.RequestRender()

	assert.Equal(t, 2, passes)
}

func TestScheduler_loops_until_quiet(t *testing.T) {
	reg := events.NewRegistry()

	passes := 0
	var s *Scheduler
	s = NewScheduler(reg, func() {
		passes++
		if passes < 3 {
			s.RequestRender()
		}
	})

	s.RequestRender()

	assert.Equal(t, 3, passes)
}

func TestScheduler_render_complete_fires_after_each_pass(t *testing.T) {
	reg := events.NewRegistry()

	var log []string
	var s *Scheduler
	s = NewScheduler(reg, func() { log = append(log, "render") })
	s.OnRenderComplete(func() { log = append(log, "complete") })

	s.RequestRender()
	s.RequestRender()

	assert.Equal(t, []string{"render", "complete", "render", "complete"}, log)
}

func TestScheduler_once_render_complete(t *testing.T) {
	reg := events.NewRegistry()
	s := NewScheduler(reg, func() {})

	calls := 0
	s.OnceRenderComplete(func() { calls++ })

	s.RequestRender()
	s.RequestRender()

	assert.Equal(t, 1, calls)
}

func TestScheduler_complete_listener_may_trigger_new_pass(t *testing.T) {
	// The form-dialog submit protocol re-invokes its handler from a
	// render-complete listener, which itself requests a render. That must
	// recurse into a fresh pass rather than deadlock or drop.
	reg := events.NewRegistry()

	passes := 0
	var s *Scheduler
	s = NewScheduler(reg, func() { passes++ })
	s.OnceRenderComplete(func() { s.RequestRender() })

	s.RequestRender()

	assert.Equal(t, 2, passes)
}

func TestScheduler_panic_releases_rendering_state(t *testing.T) {
	reg := events.NewRegistry()

	boom := true
	var s *Scheduler
	s = NewScheduler(reg, func() {
		if boom {
			panic("render failed")
		}
	})

	require.Panics(t, func() { s.RequestRender() })
	assert.False(t, s.Rendering(), "a panicking pass must not wedge the scheduler")

	boom = false
	assert.NotPanics(t, func() { s.RequestRender() })
}

func TestScheduler_NotifyResize_coalesces_identical_sizes(t *testing.T) {
	reg := events.NewRegistry()

	passes := 0
	s := NewScheduler(reg, func() { passes++ })

	s.NotifyResize(80, 24)
	s.NotifyResize(80, 24)
	s.NotifyResize(80, 24)
	s.NotifyResize(120, 40)

	assert.Equal(t, 2, passes)

	w, h := s.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}
