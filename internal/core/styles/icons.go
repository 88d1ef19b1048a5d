package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Notification level icons.
var (
	IconNotifyDebug   = ""     //
	IconNotifyInfo    = ""     //
	IconNotifyWarning = ""     //
	IconNotifyError   = ""     //
	IconBell          = ""     //
	IconBellAlert     = "\U000F009A" // 󰂚
)

// Editor chrome icons.
var (
	IconFileYAML     = ""
	IconFileMarkdown = ""
	IconFileHTML     = ""
	IconFileDefault  = ""
	IconWorkspace    = ""
	IconPublish      = ""
	IconSpinner      = ""
)
