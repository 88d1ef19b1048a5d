package commands

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/inkwell-sh/inkwell/internal/api/localfs"
	"github.com/inkwell-sh/inkwell/internal/content"
	"github.com/inkwell-sh/inkwell/internal/core/events"
	"github.com/inkwell-sh/inkwell/internal/tui"
)

// EditCmd opens the interactive editor. It is the default command.
type EditCmd struct {
	flags *Flags
	file  string
}

// NewEditCmd creates a new edit command.
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Register adds the edit command to the application.
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open the interactive content editor",
		UsageText: "inkwell edit [file]",
		Action:    cmd.Run,
	})
	return app
}

// Run executes the editor. Exported for use as the default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	if arg := c.Args().First(); arg != "" {
		cmd.file = arg
	}

	cfg := cmd.flags.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appCtx := tui.NewAppContext(cfg, nil, log.Logger)
	appCtx.Client = localfs.New(
		cfg.ContentDir,
		cfg.WorkspacesDir,
		cfg.PublishDir,
		appCtx.Dispatch.Push,
		log.Logger,
	)

	model := tui.NewModel(appCtx)

	if cmd.file != "" {
		if _, err := content.DetectFormat(cmd.file); err != nil {
			return err
		}
		appCtx.Events.Trigger(events.FileLoadRequested, events.FileLoadRequestedPayload{
			Path: filepath.ToSlash(cmd.file),
		})
	}

	// Reload the open file when another tool writes it.
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := localfs.NewWatcher(cfg.ContentDir, 0, func(paths []string) {
		appCtx.Dispatch.Push(func() {
			doc := appCtx.State.File()
			if doc == nil {
				return
			}
			for _, p := range paths {
				if p == doc.Path {
					appCtx.Events.Trigger(events.FileLoadRequested, events.FileLoadRequestedPayload{Path: p})
					return
				}
			}
		})
	}, log.Logger)

	go func() {
		if err := watcher.Start(watchCtx); err != nil && watchCtx.Err() == nil {
			log.Warn().Err(err).Msg("file watcher stopped")
		}
	}()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
