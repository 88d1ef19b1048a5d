package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/inkwell-sh/inkwell/internal/core/config"
	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

// InitCmd sets up a project config with an interactive wizard.
type InitCmd struct {
	flags *Flags
	yes   bool
	force bool
}

// NewInitCmd creates a new init command.
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application.
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a project configuration with an interactive wizard",
		UsageText: "inkwell init [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(_ context.Context, _ *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(path + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Init cancelled")
			return nil
		}
	}

	cfg := config.Default()
	if !cmd.yes {
		if err := cmd.prompt(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Run 'inkwell' to start editing.")
	return nil
}

func (cmd *InitCmd) prompt(cfg *config.Config) error {
	toastSeconds := strconv.Itoa(cfg.TUI.ToastSeconds)

	themeOptions := make([]huh.Option[string], 0)
	for _, name := range styles.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Content directory").
			Description("Where your content files live").
			Value(&cfg.ContentDir),
		huh.NewInput().
			Title("Publish directory").
			Description("Where published output is written").
			Value(&cfg.PublishDir),
		huh.NewInput().
			Title("Workspaces directory").
			Value(&cfg.WorkspacesDir),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&cfg.TUI.Theme),
		huh.NewInput().
			Title("Toast duration (seconds)").
			Validate(func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil || n <= 0 {
					return fmt.Errorf("must be a positive number")
				}
				return nil
			}).
			Value(&toastSeconds),
	))

	if err := form.Run(); err != nil {
		return err
	}

	if n, err := strconv.Atoi(toastSeconds); err == nil {
		cfg.TUI.ToastSeconds = n
	}
	return nil
}
