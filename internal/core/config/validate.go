package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/hay-kot/criterio"

	"github.com/inkwell-sh/inkwell/internal/core/styles"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		criterio.Run("content_dir", c.ContentDir, isDirectoryOrNotExist),
		criterio.Run("publish_dir", c.PublishDir, isDirectoryOrNotExist),
		criterio.Run("workspaces_dir", c.WorkspacesDir, isDirectoryOrNotExist),
		c.validateCollections(),
	)
}

func themeExists(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateCollections checks field types, select options, and regex patterns.
func (c *Config) validateCollections() error {
	var errs criterio.FieldErrorsBuilder

	for name, coll := range c.Collections {
		prefix := fmt.Sprintf("collections[%q]", name)

		if coll.Path == "" {
			errs = errs.Append(prefix+".path", fmt.Errorf("path is required"))
		}

		for i, field := range coll.Fields {
			fprefix := fmt.Sprintf("%s.fields[%d]", prefix, i)

			if field.Name == "" {
				errs = errs.Append(fprefix+".name", fmt.Errorf("name is required"))
			}

			switch field.Type {
			case FieldTypeString, FieldTypeText, FieldTypeSelect, "":
			default:
				errs = errs.Append(fprefix+".type", fmt.Errorf("unknown field type %q", field.Type))
			}

			if field.Type == FieldTypeSelect && len(field.Options) == 0 {
				errs = errs.Append(fprefix+".options", fmt.Errorf("select field needs at least one option"))
			}

			if field.Pattern != "" {
				if _, err := regexp.Compile(field.Pattern); err != nil {
					errs = errs.Append(fprefix+".pattern", fmt.Errorf("invalid regex %q: %w", field.Pattern, err))
				}
			}

			if field.MinLength > 0 && field.MaxLength > 0 && field.MinLength > field.MaxLength {
				errs = errs.Append(fprefix, fmt.Errorf("min_length %d exceeds max_length %d", field.MinLength, field.MaxLength))
			}
		}
	}

	return errs.ToError()
}
