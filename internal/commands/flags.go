// Package commands holds the CLI commands: the default interactive editor,
// the init wizard, and the headless publish.
package commands

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/inkwell-sh/inkwell/internal/core/config"
)

// Flags carries global flag values plus the config loaded in the Before
// hook, shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	Config *config.Config
}

// DefaultConfigPath is the project-root config file.
func DefaultConfigPath() string {
	return ".inkwell.yaml"
}

// DefaultDataDir returns the XDG data directory for inkwell.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "inkwell")
}

// DefaultLogFile returns the log path inside the XDG state directory.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, "inkwell", "inkwell.log")
}
