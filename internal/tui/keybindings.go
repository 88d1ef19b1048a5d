package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	Notifications key.Binding
	MarkAllRead   key.Binding
	NewFile       key.Binding
	CopyFile      key.Binding
	DeleteFile    key.Binding
	NewWorkspace  key.Binding
	Publish       key.Binding
	ToastFocus    key.Binding
	ToastDismiss  key.Binding
	ToastOpen     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "mark all read"),
		),
		NewFile: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new file"),
		),
		CopyFile: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy file"),
		),
		DeleteFile: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete file"),
		),
		NewWorkspace: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "new workspace"),
		),
		Publish: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "publish"),
		),
		ToastFocus: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "focus toast"),
		),
		ToastDismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
		ToastOpen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open toast"),
		),
	}
}
