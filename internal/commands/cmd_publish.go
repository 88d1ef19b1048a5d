package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/inkwell-sh/inkwell/internal/api"
	"github.com/inkwell-sh/inkwell/internal/api/localfs"
	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

// PublishCmd copies glob-matched content into the publish directory without
// opening the editor, for CI and scripting.
type PublishCmd struct {
	flags *Flags
}

// NewPublishCmd creates a new publish command.
func NewPublishCmd(flags *Flags) *PublishCmd {
	return &PublishCmd{flags: flags}
}

// Register adds the publish command to the application.
func (cmd *PublishCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "publish",
		Usage:     "Publish content without opening the editor",
		UsageText: "inkwell publish [patterns...]",
		Action:    cmd.run,
	})
	return app
}

func (cmd *PublishCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client := localfs.New(cfg.ContentDir, cfg.WorkspacesDir, cfg.PublishDir, nil, log.Logger)

	done := make(chan error, 1)
	client.Publish(api.PublishRequest{Patterns: c.Args().Slice()},
		func(result api.PublishResult) {
			cmd.report(fmt.Sprintf("Published %d files to %s", result.Files, result.Dest), false)
			done <- nil
		},
		func(err api.Error) {
			cmd.report(err.Error(), true)
			done <- fmt.Errorf("publish: %s", err.Message)
		},
	)

	return <-done
}

// report styles the summary line when stdout is a terminal.
func (cmd *PublishCmd) report(msg string, isErr bool) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style := styles.TextSuccessStyle
		if isErr {
			style = styles.TextErrorStyle
		}
		msg = style.Render(msg)
	}
	fmt.Println(msg)
}
