package modal

import (
	"sort"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
)

// Manager is the keyed modal store. Requesting a key twice returns the same
// instance; keys are iterated in sorted order so overlay composition is
// deterministic regardless of registration order.
type Manager struct {
	sched  scheduler
	modals map[string]Surface
}

// NewManager creates an empty manager.
func NewManager(sched scheduler) *Manager {
	return &Manager{
		sched:  sched,
		modals: map[string]Surface{},
	}
}

// Get returns the modal under key, constructing it with factory exactly once
// on first request.
func (m *Manager) Get(key string, factory func() Surface) Surface {
	if existing, ok := m.modals[key]; ok {
		return existing
	}
	created := factory()
	m.modals[key] = created
	return created
}

// Lookup returns the modal under key without constructing anything.
func (m *Manager) Lookup(key string) (Surface, bool) {
	s, ok := m.modals[key]
	return s, ok
}

// Keys returns all registered keys in sorted order.
func (m *Manager) Keys() []string {
	keys := make([]string, 0, len(m.modals))
	for k := range m.modals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Visible returns the visible modals ordered bottom to top: by priority,
// then by key.
func (m *Manager) Visible() []Surface {
	var out []Surface
	for _, key := range m.Keys() {
		if s := m.modals[key]; s.Visible() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}

// AnyVisible reports whether any modal is showing.
func (m *Manager) AnyVisible() bool {
	for _, s := range m.modals {
		if s.Visible() {
			return true
		}
	}
	return false
}

// Top returns the topmost visible modal, or nil. Input routes here.
func (m *Manager) Top() Surface {
	visible := m.Visible()
	if len(visible) == 0 {
		return nil
	}
	return visible[len(visible)-1]
}

// Update routes input to the topmost visible modal.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	top := m.Top()
	if top == nil {
		return nil
	}
	return top.Update(msg)
}

// AttemptCloseTop routes escape/click-outside to the topmost visible modal.
func (m *Manager) AttemptCloseTop() bool {
	top := m.Top()
	if top == nil {
		return false
	}
	return top.AttemptClose()
}

// Overlay composites every visible modal over the background, centered, with
// priority deciding stacking.
func (m *Manager) Overlay(background string, width, height int) string {
	visible := m.Visible()
	if len(visible) == 0 {
		return background
	}

	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	layers := []*lipgloss.Layer{lipgloss.NewLayer(background)}
	for z, s := range visible {
		box := s.View(width, height)
		boxW := lipgloss.Width(box)
		boxH := lipgloss.Height(box)
		layer := lipgloss.NewLayer(box).
			X((width - boxW) / 2).
			Y((height - boxH) / 2).
			Z(z + 1)
		layers = append(layers, layer)
	}

	return lipgloss.NewCompositor(layers...).Render()
}
