package config

import (
	"errors"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_default_config_is_valid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_unknown_theme(t *testing.T) {
	cfg := Default()
	cfg.TUI.Theme = "no-such-theme"

	err := cfg.Validate()
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, err.Error(), "tui.theme")
}

func TestValidate_collection_without_path(t *testing.T) {
	cfg := Default()
	cfg.Collections["posts"] = Collection{
		Fields: []FieldDef{{Name: "title"}},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `collections["posts"].path`)
}

func TestValidate_select_field_needs_options(t *testing.T) {
	cfg := Default()
	cfg.Collections["posts"] = Collection{
		Path: "posts/*.md",
		Fields: []FieldDef{
			{Name: "layout", Type: FieldTypeSelect},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "options")
}

func TestValidate_bad_pattern(t *testing.T) {
	cfg := Default()
	cfg.Collections["posts"] = Collection{
		Path: "posts/*.md",
		Fields: []FieldDef{
			{Name: "slug", Type: FieldTypeString, Pattern: "([unclosed"},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern")
}

func TestValidate_unknown_field_type(t *testing.T) {
	cfg := Default()
	cfg.Collections["posts"] = Collection{
		Path: "posts/*.md",
		Fields: []FieldDef{
			{Name: "x", Type: FieldType("datetime")},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field type")
}

func TestValidate_min_exceeds_max(t *testing.T) {
	cfg := Default()
	cfg.Collections["posts"] = Collection{
		Path: "posts/*.md",
		Fields: []FieldDef{
			{Name: "title", MinLength: 10, MaxLength: 3},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_length")
}
