// Package config handles configuration loading and validation for inkwell.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FieldType represents the type of a collection form field.
type FieldType string

// Supported field types for collection forms.
const (
	FieldTypeString FieldType = "string"
	FieldTypeText   FieldType = "text"
	FieldTypeSelect FieldType = "select"
)

// Config holds the application configuration, usually read from
// .inkwell.yaml in the project root.
type Config struct {
	ProjectType   string                `yaml:"project_type"`
	ContentDir    string                `yaml:"content_dir"`
	PublishDir    string                `yaml:"publish_dir"`
	WorkspacesDir string                `yaml:"workspaces_dir"`
	TUI           TUIConfig             `yaml:"tui"`
	Collections   map[string]Collection `yaml:"collections"`
	DataDir       string                `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme             string `yaml:"theme"`
	ToastSeconds      int    `yaml:"toast_seconds"`
	DisableHoverPause bool   `yaml:"disable_toast_hover_pause"`
}

// ToastTTL returns the configured toast lifetime.
func (t TUIConfig) ToastTTL() time.Duration {
	return time.Duration(t.ToastSeconds) * time.Second
}

// Collection defines a group of content files and the form used to create
// them, e.g. "posts" or "pages".
type Collection struct {
	Description string     `yaml:"description"`
	Path        string     `yaml:"path"` // doublestar glob relative to content_dir
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef defines a single input field in a collection form.
type FieldDef struct {
	Name        string        `yaml:"name"`        // front matter key
	Label       string        `yaml:"label"`       // display label for the form
	Type        FieldType     `yaml:"type"`        // string, text, select
	Required    bool          `yaml:"required"`
	Default     string        `yaml:"default"`
	Placeholder string        `yaml:"placeholder"`
	Options     []FieldOption `yaml:"options"` // options for select fields
	MinLength   int           `yaml:"min_length"`
	MaxLength   int           `yaml:"max_length"`
	Pattern     string        `yaml:"pattern"` // regex the value must match
}

// FieldOption defines an option for select fields.
type FieldOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ProjectType:   "generic",
		ContentDir:    "content",
		PublishDir:    "public",
		WorkspacesDir: "workspaces",
		TUI: TUIConfig{
			Theme:        "tokyo-night",
			ToastSeconds: 5,
		},
		Collections: map[string]Collection{},
	}
}

// Load reads the config file at path, applying defaults for anything unset.
// A missing file is not an error; defaults are returned.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.ProjectType == "" {
		cfg.ProjectType = def.ProjectType
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = def.ContentDir
	}
	if cfg.PublishDir == "" {
		cfg.PublishDir = def.PublishDir
	}
	if cfg.WorkspacesDir == "" {
		cfg.WorkspacesDir = def.WorkspacesDir
	}
	if cfg.TUI.Theme == "" {
		cfg.TUI.Theme = def.TUI.Theme
	}
	if cfg.TUI.ToastSeconds <= 0 {
		cfg.TUI.ToastSeconds = def.TUI.ToastSeconds
	}
	if cfg.Collections == nil {
		cfg.Collections = map[string]Collection{}
	}
}
