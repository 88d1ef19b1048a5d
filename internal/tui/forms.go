package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inkwell-sh/inkwell/internal/api"
	"github.com/inkwell-sh/inkwell/internal/core/config"
	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/core/notify"
	"github.com/inkwell-sh/inkwell/internal/tui/form"
	"github.com/inkwell-sh/inkwell/internal/tui/modal"
)

// Form dialog keys.
const (
	modalKeyNewFile      = "form:new-file"
	modalKeyCopyFile     = "form:copy-file"
	modalKeyDeleteFile   = "form:delete-file"
	modalKeyNewWorkspace = "form:new-workspace"
	modalKeyPublish      = "form:publish"
)

var workspaceNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// newFileDialog builds the "new file" form on first use.
func newFileDialog(ctx *AppContext) *modal.FormDialog {
	return ctx.Modals.Get(modalKeyNewFile, func() modal.Surface {
		fields := []form.FieldConfig{
			{
				Name:        "path",
				Label:       "Path",
				Type:        form.TypeString,
				Placeholder: "posts/my-post.md",
				Validation:  form.FieldValidation{Required: true},
			},
			{Name: "title", Label: "Title", Type: form.TypeString},
			{Name: "body", Label: "Body", Type: form.TypeText},
		}
		fields = append(fields, collectionField(ctx.Config)...)

		var fd *modal.FormDialog
		fd = modal.NewFormDialog(modalKeyNewFile, modal.FormDialogConfig{
			Title:       "New File",
			Fields:      fields,
			SubmitLabel: "Create",
			OnSubmit: func(values map[string]any) {
				path, _ := values["path"].(string)
				title, _ := values["title"].(string)
				body, _ := values["body"].(string)

				frontMatter := map[string]any{}
				if title != "" {
					frontMatter["title"] = title
				}

				ctx.Client.CreateFile(api.CreateFileRequest{
					Path:        path,
					FrontMatter: frontMatter,
					Body:        body,
				}, func(result api.FileResult) {
					ctx.Notifications.AddInfo(&notify.Notification{
						Message: "Created " + result.Path,
						Actions: []notify.Action{{
							Label:   "Load file",
							Event:   events.FileLoadRequested,
							Payload: events.FileLoadRequestedPayload{Path: result.Path},
						}},
					})
					fd.CompleteSuccess()
				}, func(err api.Error) {
					failSubmission(ctx, fd, err)
				})
			},
		}, ctx.Scheduler, ctx.Events)
		return fd
	}).(*modal.FormDialog)
}

// collectionField adds a collection selector when collections are configured.
func collectionField(cfg *config.Config) []form.FieldConfig {
	if len(cfg.Collections) == 0 {
		return nil
	}

	options := make([]form.Option, 0, len(cfg.Collections))
	for name := range cfg.Collections {
		options = append(options, form.Option{Value: name, Label: name})
	}
	return []form.FieldConfig{{
		Name:    "collection",
		Label:   "Collection",
		Type:    form.TypeSelect,
		Options: options,
	}}
}

func copyFileDialog(ctx *AppContext) *modal.FormDialog {
	return ctx.Modals.Get(modalKeyCopyFile, func() modal.Surface {
		var fd *modal.FormDialog
		fd = modal.NewFormDialog(modalKeyCopyFile, modal.FormDialogConfig{
			Title: "Copy File",
			Fields: []form.FieldConfig{
				{
					Name:       "source",
					Label:      "Source",
					Type:       form.TypeString,
					Validation: form.FieldValidation{Required: true},
				},
				{
					Name:       "dest",
					Label:      "Destination",
					Type:       form.TypeString,
					Validation: form.FieldValidation{Required: true},
				},
			},
			SubmitLabel: "Copy",
			OnSubmit: func(values map[string]any) {
				source, _ := values["source"].(string)
				dest, _ := values["dest"].(string)

				ctx.Client.CopyFile(api.CopyFileRequest{
					Source: source,
					Dest:   dest,
				}, func(result api.FileResult) {
					ctx.Notifications.AddInfo(&notify.Notification{
						Message: "Copied to " + result.Path,
						Actions: []notify.Action{{
							Label:   "Load file",
							Event:   events.FileLoadRequested,
							Payload: events.FileLoadRequestedPayload{Path: result.Path},
						}},
					})
					fd.CompleteSuccess()
				}, func(err api.Error) {
					failSubmission(ctx, fd, err)
				})
			},
		}, ctx.Scheduler, ctx.Events)
		return fd
	}).(*modal.FormDialog)
}

func deleteFileDialog(ctx *AppContext) *modal.FormDialog {
	return ctx.Modals.Get(modalKeyDeleteFile, func() modal.Surface {
		var fd *modal.FormDialog
		fd = modal.NewFormDialog(modalKeyDeleteFile, modal.FormDialogConfig{
			Title: "Delete File",
			Fields: []form.FieldConfig{{
				Name:       "path",
				Label:      "Path",
				Type:       form.TypeString,
				Validation: form.FieldValidation{Required: true},
			}},
			SubmitLabel: "Delete",
			Destructive: true,
			OnSubmit: func(values map[string]any) {
				path, _ := values["path"].(string)

				ctx.Client.DeleteFile(api.DeleteFileRequest{Path: path}, func(result api.FileResult) {
					ctx.Notifications.AddInfo(&notify.Notification{
						Message: "Deleted " + result.Path,
					})
					// Drop the open document if it was just deleted.
					if doc := ctx.State.File(); doc != nil && doc.Path == result.Path {
						ctx.State.SetFile(nil)
					}
					fd.CompleteSuccess()
				}, func(err api.Error) {
					failSubmission(ctx, fd, err)
				})
			},
		}, ctx.Scheduler, ctx.Events)
		return fd
	}).(*modal.FormDialog)
}

func newWorkspaceDialog(ctx *AppContext) *modal.FormDialog {
	return ctx.Modals.Get(modalKeyNewWorkspace, func() modal.Surface {
		var fd *modal.FormDialog
		fd = modal.NewFormDialog(modalKeyNewWorkspace, modal.FormDialogConfig{
			Title: "New Workspace",
			Fields: []form.FieldConfig{{
				Name:        "name",
				Label:       "Name",
				Type:        form.TypeString,
				Placeholder: "drafts",
				Validation: form.FieldValidation{
					Required: true,
					Pattern:  workspaceNamePattern,
				},
			}},
			SubmitLabel: "Create",
			OnSubmit: func(values map[string]any) {
				name, _ := values["name"].(string)

				ctx.Client.CreateWorkspace(api.CreateWorkspaceRequest{Name: name}, func(result api.WorkspaceResult) {
					ctx.Notifications.AddInfo(&notify.Notification{
						Message: "Created workspace " + result.Name,
						Actions: []notify.Action{{
							Label:   "Switch to it",
							Event:   events.WorkspaceLoadRequested,
							Payload: events.WorkspaceLoadRequestedPayload{Name: result.Name},
						}},
					})
					fd.CompleteSuccess()
				}, func(err api.Error) {
					failSubmission(ctx, fd, err)
				})
			},
		}, ctx.Scheduler, ctx.Events)
		return fd
	}).(*modal.FormDialog)
}

func publishDialog(ctx *AppContext) *modal.FormDialog {
	return ctx.Modals.Get(modalKeyPublish, func() modal.Surface {
		var fd *modal.FormDialog
		fd = modal.NewFormDialog(modalKeyPublish, modal.FormDialogConfig{
			Title: "Publish",
			Fields: []form.FieldConfig{{
				Name:        "patterns",
				Label:       "Patterns",
				Type:        form.TypeString,
				Placeholder: "**/* (everything)",
				Default:     "**/*",
				Validation:  form.FieldValidation{Required: true},
			}},
			SubmitLabel: "Publish",
			OnSubmit: func(values map[string]any) {
				raw, _ := values["patterns"].(string)
				patterns := strings.Fields(raw)

				ctx.Client.Publish(api.PublishRequest{Patterns: patterns}, func(result api.PublishResult) {
					// Publish completion is important enough to surface as a
					// modal immediately, whatever its level.
					ctx.Notifications.Show(&notify.Notification{
						Title:       "Publish complete",
						Message:     fmt.Sprintf("Published %d files", result.Files),
						Description: "Output written to " + result.Dest,
					})
					fd.CompleteSuccess()
				}, func(err api.Error) {
					failSubmission(ctx, fd, err)
				})
			},
		}, ctx.Scheduler, ctx.Events)
		return fd
	}).(*modal.FormDialog)
}

// failSubmission applies the error branch of the submit protocol: an
// error-level notification for the bell list plus the inline modal error.
func failSubmission(ctx *AppContext, fd *modal.FormDialog, err api.Error) {
	ctx.Notifications.AddError(&notify.Notification{
		Message:     err.Message,
		Description: err.Description,
	}, true)
	fd.CompleteError(err.Message)
}
