package toast

import (
	"time"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/inkwell-sh/inkwell/internal/core/notify"
	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

func levelStyle(level notify.Level) lipgloss.Style {
	switch level {
	case notify.LevelDebug:
		return styles.ToastDebugStyle
	case notify.LevelWarning:
		return styles.ToastWarningStyle
	case notify.LevelError:
		return styles.ToastErrorStyle
	default:
		return styles.ToastInfoStyle
	}
}

func levelIcon(level notify.Level) string {
	switch level {
	case notify.LevelDebug:
		return styles.IconNotifyDebug
	case notify.LevelWarning:
		return styles.IconNotifyWarning
	case notify.LevelError:
		return styles.IconNotifyError
	default:
		return styles.IconNotifyInfo
	}
}

// render draws a single toast box.
func render(t *Toast) string {
	n := t.Notification

	header := levelIcon(n.Level) + " " + n.Message
	lines := []string{styles.TextForegroundStyle.Render(header)}
	if n.Description != "" {
		lines = append(lines, styles.TextMutedStyle.Render(n.Description))
	}

	secs := int(t.Remaining().Round(time.Second) / time.Second)
	if t.paused() {
		lines = append(lines, styles.TextMutedStyle.Render("paused"))
	} else if secs > 0 {
		lines = append(lines, styles.TextMutedStyle.Render(countdown(secs)))
	}

	return levelStyle(n.Level).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func countdown(secs int) string {
	out := make([]byte, 0, secs)
	for range secs {
		out = append(out, '.')
	}
	return string(out)
}

// Overlay composites the active toasts over the background, stacked in the
// top-right corner.
func (c *Controller) Overlay(background string, width, height int) string {
	if len(c.toasts) == 0 {
		return background
	}

	boxes := make([]string, len(c.toasts))
	for i, t := range c.toasts {
		boxes[i] = render(t)
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, boxes...)

	layers := []*lipgloss.Layer{lipgloss.NewLayer(background)}
	stackW := lipgloss.Width(stack)
	x := max(width-stackW-1, 0)
	layers = append(layers, lipgloss.NewLayer(stack).X(x).Y(0).Z(10))

	return lipgloss.NewCompositor(layers...).Render()
}
