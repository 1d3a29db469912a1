package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Outline  OutlineConfig `toml:"outline"`
	Server   ServerConfig  `toml:"server"`
	Log      LogConfig     `toml:"log"`
}

// OutlineConfig holds settings for the outline store from [outline] section.
type OutlineConfig struct {
	Path      string `toml:"path,omitempty"`      // Outline file, relative to the project directory
	Store     string `toml:"store,omitempty"`     // Storage backend: "file" (default) or "git"
	Namespace string `toml:"namespace,omitempty"` // Git namespace for refs (default: "whiteboard")
}

// ServerConfig holds settings for `whiteboard serve` from [server] section.
type ServerConfig struct {
	Addr       string `toml:"addr,omitempty"`        // Listen address
	Templates  string `toml:"templates,omitempty"`   // Directory overriding the built-in HTML templates
	DebounceMS int    `toml:"debounce_ms,omitempty"` // Quiet period before an external edit is announced
	Watch      bool   `toml:"watch,omitempty"`       // Watch the outline file for external edits
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Debounce returns the watcher quiet period.
func (c ServerConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Outline store backends.
const (
	StoreFile = "file"
	StoreGit  = "git"
)

// Directory and file names for whiteboard.
const (
	DirName            = ".whiteboard"  // Project data directory
	AppName            = "whiteboard"   // Global config directory name
	ConfigFileName     = "config.toml"  // Config file name
	DefaultOutlineFile = "todo.txt"     // Outline file name
	DefaultNamespace   = "whiteboard"   // Git ref namespace
	DefaultAddr        = "127.0.0.1:5000"
	DefaultLogLevel    = "info"
	DefaultDebounceMS  = 200
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Outline: OutlineConfig{
			Path:      DefaultOutlineFile,
			Store:     StoreFile,
			Namespace: DefaultNamespace,
		},
		Server: ServerConfig{
			Addr:       DefaultAddr,
			Watch:      true,
			DebounceMS: DefaultDebounceMS,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// OutlinePath resolves the outline file of a project.
func (c *Config) OutlinePath(root string) string {
	if filepath.IsAbs(c.Outline.Path) {
		return c.Outline.Path
	}
	return filepath.Join(root, c.Outline.Path)
}

// RenderConfigTemplate renders a commented config file from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
