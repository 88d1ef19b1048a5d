package tui

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/inkwell-sh/inkwell/internal/content"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
	"github.com/inkwell-sh/inkwell/internal/core/styles"
	"github.com/inkwell-sh/inkwell/internal/tui/modal"
)

// Modal keys used by the view layer.
const (
	modalKeyNotifications = "notifications"
	modalKeyNotification  = "notification"
	modalKeyHelp          = "help"
)

// partPreview is the document preview, registered lazily so the glamour
// renderer is only built once a file is actually on screen.
const partPreview = "preview"

// viewRenderer builds the committed frame. It is the render function the
// scheduler drives: every pass rebuilds the full frame string, which the
// bubbletea View call then returns unchanged.
type viewRenderer struct {
	ctx   *AppContext
	frame string
}

func newViewRenderer(ctx *AppContext) *viewRenderer {
	return &viewRenderer{ctx: ctx}
}

// Frame returns the last committed frame.
func (v *viewRenderer) Frame() string { return v.frame }

// renderPass rebuilds the frame. It also applies the presentation decisions
// that are defined to happen "on next render": force-opening the
// notification list on a fresh error, and surfacing the pinned
// single-notification view.
func (v *viewRenderer) renderPass() {
	w, h := v.ctx.Scheduler.Size()
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	if v.ctx.Notifications.ConsumeNewError() {
		v.notificationListModal().Show()
	}

	if current := v.ctx.Notifications.Current(); current != nil {
		m := v.currentNotificationModal()
		if !m.Visible() {
			m.Show()
		}
		if !current.IsRead() {
			v.ctx.Notifications.Read(current)
		}
	}

	header := v.header(w)
	status := v.statusBar(w)
	bodyHeight := h - lipgloss.Height(header) - lipgloss.Height(status)
	main := lipgloss.JoinVertical(lipgloss.Left, header, v.body(w, bodyHeight), status)

	out := v.ctx.Modals.Overlay(main, w, h)
	out = v.ctx.Toasts.Overlay(out, w, h)
	v.frame = out
}

func (v *viewRenderer) header(width int) string {
	title := styles.TextPrimaryStyle.Render("inkwell")

	var file string
	if doc := v.ctx.State.File(); doc != nil {
		file = fileIcon(doc.Format) + " " + doc.Path
	} else {
		file = styles.TextMutedStyle.Render("no file open")
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(title + "  " + file)
}

func fileIcon(format content.Format) string {
	switch format {
	case content.FormatYAML:
		return styles.IconFileYAML
	case content.FormatMarkdown:
		return styles.IconFileMarkdown
	case content.FormatHTML:
		return styles.IconFileHTML
	default:
		return styles.IconFileDefault
	}
}

func (v *viewRenderer) body(width, height int) string {
	if v.ctx.State.File() == nil {
		hint := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TextMutedStyle.Render("a new file   c copy   d delete"),
			styles.TextMutedStyle.Render("w new workspace   P publish   ? help"),
		)
		return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center, hint)
	}

	return v.ctx.Parts.MustGet(partPreview).View(width, height)
}

// previewPart renders the open document. Markdown goes through glamour; YAML
// shows the serialized data; HTML shows the raw body.
type previewPart struct {
	ctx *AppContext

	markdown      *glamour.TermRenderer
	markdownWidth int
}

func newPreviewPart(ctx *AppContext) *previewPart {
	return &previewPart{ctx: ctx}
}

func (p *previewPart) View(width, height int) string {
	doc := p.ctx.State.File()
	if doc == nil {
		return ""
	}

	var body string
	switch doc.Format {
	case content.FormatMarkdown:
		body = p.renderMarkdown(doc.Body, width)
	case content.FormatYAML:
		data, err := yaml.Marshal(doc.FrontMatter)
		if err != nil {
			body = styles.TextErrorStyle.Render(err.Error())
		} else {
			body = string(data)
		}
	default:
		body = doc.Body
	}

	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(max(height, 1)).Render(body)
}

func (p *previewPart) renderMarkdown(body string, width int) string {
	wrap := max(width-2, 20)
	if p.markdown == nil || p.markdownWidth != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return body
		}
		p.markdown = r
		p.markdownWidth = wrap
	}

	out, err := p.markdown.Render(body)
	if err != nil {
		return body
	}
	return out
}

func (v *viewRenderer) statusBar(width int) string {
	workspace := v.ctx.State.Workspace()
	if workspace == "" {
		workspace = "default"
	}
	left := fmt.Sprintf("%s %s  %s", styles.IconWorkspace, workspace, v.ctx.State.ProjectType().Name)

	bell := styles.IconBell
	if v.ctx.Notifications.HasUnreadAtLevel(notify.LevelWarning) {
		bell = styles.StatusBarBellStyle.Render(styles.IconBellAlert)
	}
	right := bell
	if unread := v.ctx.Notifications.UnreadCount(); unread > 0 {
		right = fmt.Sprintf("%s %d", bell, unread)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.StatusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// notificationListModal returns the full notification list, constructing it
// on first use.
func (v *viewRenderer) notificationListModal() modal.Surface {
	return v.ctx.Modals.Get(modalKeyNotifications, func() modal.Surface {
		return modal.New(modalKeyNotifications, modal.Config{
			Title:    "Notifications",
			Priority: modal.PriorityHigh,
			Template: v.notificationListTemplate,
		}, v.ctx.Scheduler)
	})
}

func (v *viewRenderer) notificationListTemplate(width, height int) string {
	entries := v.ctx.Notifications.Notifications()
	if len(entries) == 0 {
		return styles.TextMutedStyle.Render("No notifications")
	}

	var lines []string
	// Newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		n := entries[i]
		line := notifyIcon(n.Level) + " " + n.Message
		if n.IsRead() {
			line = styles.TextMutedStyle.Render(line)
		} else {
			line = styles.TextForegroundStyle.Render(line)
		}
		lines = append(lines, line)
		if n.IsExpanded() && n.Description != "" {
			lines = append(lines, styles.TextMutedStyle.Render("  "+n.Description))
		}
	}
	lines = append(lines, "", styles.ModalHelpStyle.Render("R mark all read  esc close"))

	return lipgloss.NewStyle().
		MaxWidth(max(width-8, 20)).
		MaxHeight(max(height-6, 4)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// currentNotificationModal is the single-notification drill-down view.
func (v *viewRenderer) currentNotificationModal() modal.Surface {
	return v.ctx.Modals.Get(modalKeyNotification, func() modal.Surface {
		m := modal.New(modalKeyNotification, modal.Config{
			Priority: modal.PriorityHigh,
			Template: v.currentNotificationTemplate,
		}, v.ctx.Scheduler)
		m.OnHide(v.ctx.Notifications.ClearCurrent)
		return m
	})
}

func (v *viewRenderer) currentNotificationTemplate(width, _ int) string {
	n := v.ctx.Notifications.Current()
	if n == nil {
		return ""
	}

	var lines []string
	if n.Title != "" {
		lines = append(lines, styles.ModalTitleStyle.Render(n.Title), "")
	}
	lines = append(lines, notifyIcon(n.Level)+" "+n.Message)
	if n.Description != "" {
		lines = append(lines, "", styles.TextMutedStyle.Render(n.Description))
	}
	for i, action := range n.Actions {
		lines = append(lines, "", styles.TextPrimaryStyle.Render(fmt.Sprintf("%d. %s", i+1, action.Label)))
	}
	lines = append(lines, "", styles.ModalHelpStyle.Render("esc close"))

	return lipgloss.NewStyle().
		MaxWidth(max(width-8, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func notifyIcon(level notify.Level) string {
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

// helpModal lists the global keybindings.
func (v *viewRenderer) helpModal(keys keyMap) modal.Surface {
	return v.ctx.Modals.Get(modalKeyHelp, func() modal.Surface {
		return modal.New(modalKeyHelp, modal.Config{
			Title: "Help",
			Template: func(_, _ int) string {
				bindings := []struct{ k, help string }{
					{keys.NewFile.Help().Key, keys.NewFile.Help().Desc},
					{keys.CopyFile.Help().Key, keys.CopyFile.Help().Desc},
					{keys.DeleteFile.Help().Key, keys.DeleteFile.Help().Desc},
					{keys.NewWorkspace.Help().Key, keys.NewWorkspace.Help().Desc},
					{keys.Publish.Help().Key, keys.Publish.Help().Desc},
					{keys.Notifications.Help().Key, keys.Notifications.Help().Desc},
					{keys.MarkAllRead.Help().Key, keys.MarkAllRead.Help().Desc},
					{keys.ToastFocus.Help().Key, keys.ToastFocus.Help().Desc},
					{keys.ToastDismiss.Help().Key, keys.ToastDismiss.Help().Desc},
					{keys.ToastOpen.Help().Key, keys.ToastOpen.Help().Desc},
					{keys.Quit.Help().Key, keys.Quit.Help().Desc},
				}
				var lines []string
				for _, b := range bindings {
					lines = append(lines, fmt.Sprintf("%s  %s",
						styles.TextPrimaryStyle.Render(fmt.Sprintf("%-4s", b.k)),
						styles.TextForegroundStyle.Render(b.help)))
				}
				return lipgloss.JoinVertical(lipgloss.Left, lines...)
			},
		}, v.ctx.Scheduler)
	})
}
