// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to .whiteboard directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/whiteboard)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDir(configHome)
}

// Load returns the merged configuration (project + global).
// Project config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	// Merge: default <- global <- project (later takes precedence)
	for _, path := range []string{l.globalPath(), l.projectPath()} {
		if path == "" {
			continue
		}
		raw, err := readRaw(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cfg.Warnings = append(cfg.Warnings, applyRaw(cfg, raw)...)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobal returns only the global configuration, on top of defaults.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	path := l.globalPath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	cfg := domain.NewDefaultConfig()
	cfg.Warnings = applyRaw(cfg, raw)
	return cfg, nil
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

func (l *Loader) projectPath() string {
	if l.dataDir == "" {
		return ""
	}
	return filepath.Join(l.dataDir, domain.ConfigFileName)
}

// readRaw decodes a TOML file into a generic map.
func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

// applyRaw copies the known keys of raw onto cfg and returns warnings for
// the keys it does not know. Keys that are present always win, so a later
// file can turn watch off again.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "outline":
			for k, v := range m {
				switch k {
				case "path":
					setString(&cfg.Outline.Path, v)
				case "store":
					setString(&cfg.Outline.Store, v)
				case "namespace":
					setString(&cfg.Outline.Namespace, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [outline]: %s", k))
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					setString(&cfg.Server.Addr, v)
				case "templates":
					setString(&cfg.Server.Templates, v)
				case "watch":
					if b, ok := v.(bool); ok {
						cfg.Server.Watch = b
					}
				case "debounce_ms":
					if n, ok := v.(int64); ok {
						cfg.Server.DebounceMS = int(n)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&cfg.Log.Level, v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	return warnings
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok && s != "" {
		*dst = s
	}
}

func validate(cfg *domain.Config) error {
	switch cfg.Outline.Store {
	case domain.StoreFile, domain.StoreGit:
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownStore, cfg.Outline.Store)
	}
	if cfg.Server.DebounceMS < 0 {
		return fmt.Errorf("invalid debounce_ms: %d", cfg.Server.DebounceMS)
	}
	return nil
}
