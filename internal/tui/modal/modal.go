// Package modal implements the keyed modal layer: base modals, dialogs with
// action rows, and form dialogs with the validate-then-submit protocol.
// Modals render as overlay layers above the main view so they are never
// clipped by pane boundaries, and stack by priority.
package modal

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

// scheduler is the slice of the render scheduler modals need.
type scheduler interface {
	RequestRender()
	OnceRenderComplete(fn func()) events.ListenerID
}

// Priority controls overlay stacking. Higher priorities render above lower
// ones; render order is otherwise determined by sorted key, not insertion.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityNormal
	PriorityHigh
)

// TemplateFunc renders a modal's body content for the given dimensions.
type TemplateFunc func(width, height int) string

// Surface is a renderable modal managed by the Manager.
type Surface interface {
	Key() string
	Title() string
	Visible() bool
	Priority() Priority
	Show()
	Hide()
	Toggle()
	View(width, height int) string
	AttemptClose() bool
	Update(msg tea.Msg) tea.Cmd
}

// Modal is a titled overlay with show/hide lifecycle. Each modal owns its
// listener registry; interested components subscribe to its show/hide events
// rather than polling.
type Modal struct {
	key      string
	title    string
	priority Priority
	visible  bool
	template TemplateFunc
	canClose func() bool

	listeners *events.Registry
	sched     scheduler
}

// Config carries the optional pieces of a modal.
type Config struct {
	Title    string
	Priority Priority
	Template TemplateFunc
	// CanClose guards escape/click-outside closing. Nil means closable.
	CanClose func() bool
}

// New creates a hidden modal under the given key.
func New(key string, cfg Config, sched scheduler) *Modal {
	if cfg.Priority == 0 {
		cfg.Priority = PriorityNormal
	}
	return &Modal{
		key:       key,
		title:     cfg.Title,
		priority:  cfg.Priority,
		template:  cfg.Template,
		canClose:  cfg.CanClose,
		listeners: events.NewRegistry(),
		sched:     sched,
	}
}

func (m *Modal) Key() string        { return m.key }
func (m *Modal) Title() string      { return m.title }
func (m *Modal) Visible() bool      { return m.visible }
func (m *Modal) Priority() Priority { return m.priority }

// Listeners exposes the modal's own registry for show/hide subscriptions.
func (m *Modal) Listeners() *events.Registry { return m.listeners }

// OnShow subscribes fn to the modal becoming visible.
func (m *Modal) OnShow(fn func()) events.ListenerID {
	return m.listeners.AddListener(events.Show, func(any) { fn() })
}

// OnHide subscribes fn to the modal being hidden.
func (m *Modal) OnHide(fn func()) events.ListenerID {
	return m.listeners.AddListener(events.Hide, func(any) { fn() })
}

// Show makes the modal visible, notifies listeners, and requests a render.
func (m *Modal) Show() {
	m.visible = true
	m.listeners.Trigger(events.Show, m)
	m.sched.RequestRender()
}

// Hide conceals the modal, notifies listeners, and requests a render.
func (m *Modal) Hide() {
	m.visible = false
	m.listeners.Trigger(events.Hide, m)
	m.sched.RequestRender()
}

// Toggle flips visibility.
func (m *Modal) Toggle() {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
}

// AttemptClose is the single path escape and click-outside route through.
// A CanClose predicate returning false makes it a no-op; the return value
// reports whether the modal was hidden.
func (m *Modal) AttemptClose() bool {
	if m.canClose != nil && !m.canClose() {
		return false
	}
	m.Hide()
	return true
}

// SetTemplate replaces the body renderer.
func (m *Modal) SetTemplate(fn TemplateFunc) { m.template = fn }

// View renders the full modal box: title bar plus body.
func (m *Modal) View(width, height int) string {
	body := ""
	if m.template != nil {
		body = m.template(width, height)
	}

	var parts []string
	if m.title != "" {
		parts = append(parts, styles.ModalTitleStyle.Render(m.title), "")
	}
	parts = append(parts, body)

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Update handles key input. The base modal only reacts to escape.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "esc" {
		m.AttemptClose()
	}
	return nil
}
