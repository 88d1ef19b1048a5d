package modal

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

// Tier groups dialog actions for button-row layout. All actions remain
// independently user-triggered; the tier only affects placement and styling.
type Tier int

const (
	TierTertiary Tier = iota + 1
	TierSecondary
	TierPrimary
	// TierExtreme is the destructive variant of primary, e.g. delete.
	TierExtreme
)

// Action is a dialog button.
type Action struct {
	Label string
	Tier  Tier
	// IsSubmit marks the action the enter key activates from the body.
	IsSubmit bool
	// Enabled gates the action; nil means always enabled.
	Enabled func() bool
	OnClick func()
}

func (a Action) enabled() bool {
	return a.Enabled == nil || a.Enabled()
}

// Dialog is a modal with an action row and a processing state. While
// processing, input is ignored and a loading indicator replaces the buttons.
type Dialog struct {
	*Modal

	actions    []Action
	selected   int
	processing bool
}

// NewDialog creates a hidden dialog under the given key.
func NewDialog(key string, cfg Config, actions []Action, sched scheduler) *Dialog {
	return &Dialog{
		Modal:   New(key, cfg, sched),
		actions: actions,
	}
}

// Actions returns the dialog's actions in declaration order.
func (d *Dialog) Actions() []Action { return d.actions }

// Processing reports whether an operation is in flight.
func (d *Dialog) Processing() bool { return d.processing }

// StartProcessing disables interaction and shows the loading indicator.
func (d *Dialog) StartProcessing() {
	d.processing = true
	d.sched.RequestRender()
}

// StopProcessing re-enables interaction, optionally hiding the dialog.
func (d *Dialog) StopProcessing(andHide bool) {
	d.processing = false
	if andHide {
		d.Hide()
		return
	}
	d.sched.RequestRender()
}

// SelectedAction returns the index of the highlighted action.
func (d *Dialog) SelectedAction() int { return d.selected }

// SelectNext moves the highlight to the next enabled action.
func (d *Dialog) SelectNext() {
	d.moveSelection(1)
}

// SelectPrev moves the highlight to the previous enabled action.
func (d *Dialog) SelectPrev() {
	d.moveSelection(-1)
}

func (d *Dialog) moveSelection(dir int) {
	if len(d.actions) == 0 {
		return
	}

	idx := d.selected
	for range d.actions {
		idx = (idx + dir + len(d.actions)) % len(d.actions)
		if d.actions[idx].enabled() {
			d.selected = idx
			d.sched.RequestRender()
			return
		}
	}
}

// InvokeSelected runs the highlighted action. No-op while processing or when
// the action is disabled.
func (d *Dialog) InvokeSelected() {
	if d.processing || len(d.actions) == 0 {
		return
	}
	action := d.actions[d.selected]
	if !action.enabled() || action.OnClick == nil {
		return
	}
	action.OnClick()
}

// InvokeSubmit runs the action marked IsSubmit, falling back to the
// highlighted one.
func (d *Dialog) InvokeSubmit() {
	if d.processing {
		return
	}
	for _, action := range d.actions {
		if action.IsSubmit {
			if action.enabled() && action.OnClick != nil {
				action.OnClick()
			}
			return
		}
	}
	d.InvokeSelected()
}

// AttemptClose refuses to close while processing, then defers to the base
// modal's predicate.
func (d *Dialog) AttemptClose() bool {
	if d.processing {
		return false
	}
	return d.Modal.AttemptClose()
}

// View renders title, body, and the tiered action row (or the processing
// indicator).
func (d *Dialog) View(width, height int) string {
	body := d.Modal.View(width, height)
	return lipgloss.JoinVertical(lipgloss.Left, body, d.actionRow())
}

func (d *Dialog) actionRow() string {
	if d.processing {
		return styles.TextMutedStyle.Render("  working…")
	}
	if len(d.actions) == 0 {
		return ""
	}

	// Tertiary actions sit left, secondary in the middle, primary/extreme
	// right.
	var tertiary, secondary, primary []string
	for i, action := range d.actions {
		btn := d.renderButton(action, i == d.selected)
		switch action.Tier {
		case TierTertiary:
			tertiary = append(tertiary, btn)
		case TierSecondary:
			secondary = append(secondary, btn)
		default:
			primary = append(primary, btn)
		}
	}

	groups := append(append(tertiary, secondary...), primary...)
	row := groups[0]
	for _, g := range groups[1:] {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, "  ", g)
	}
	return lipgloss.NewStyle().MarginTop(1).Render(row)
}

func (d *Dialog) renderButton(action Action, selected bool) string {
	switch {
	case !action.enabled():
		return styles.ModalButtonDisabledStyle.Render(action.Label)
	case selected && action.Tier == TierExtreme:
		return styles.ModalButtonExtremeStyle.Render(action.Label)
	case selected:
		return styles.ModalButtonSelectedStyle.Render(action.Label)
	default:
		return styles.ModalButtonStyle.Render(action.Label)
	}
}

// Update handles action-row navigation and invocation. All input is ignored
// while processing.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	if d.processing {
		return nil
	}

	switch keyMsg.String() {
	case "left", "shift+tab":
		d.SelectPrev()
	case "right", "tab":
		d.SelectNext()
	case "enter":
		d.InvokeSelected()
	case "esc":
		d.AttemptClose()
	}
	return nil
}
