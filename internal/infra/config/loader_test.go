package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_ProjectConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[outline]
path = "notes/board.txt"
store = "git"
namespace = "team"

[server]
addr = ":8080"
debounce_ms = 50

[log]
level = "debug"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "notes/board.txt", cfg.Outline.Path)
	assert.Equal(t, domain.StoreGit, cfg.Outline.Store)
	assert.Equal(t, "team", cfg.Outline.Namespace)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Server.DebounceMS)
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_MergeProjectOverridesGlobal(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[server]
addr = ":9000"
watch = true
templates = "/srv/templates"

[log]
level = "warn"
`)
	writeConfig(t, dataDir, `
[server]
watch = false

[log]
level = "error"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)                    // From global
	assert.Equal(t, "/srv/templates", cfg.Server.Templates)      // From global
	assert.False(t, cfg.Server.Watch)                            // Overridden by project
	assert.Equal(t, "error", cfg.Log.Level)                      // Overridden by project
	assert.Equal(t, domain.DefaultOutlineFile, cfg.Outline.Path) // Default
}

func TestLoader_Load_UnknownKeysBecomeWarnings(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
color = "red"

[outline]
path = "todo.txt"
indent = 2

[plugins]
enabled = true
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		"unknown key in [outline]: indent",
		"unknown key: color",
		"unknown section: plugins",
	}, cfg.Warnings)
}

func TestLoader_Load_InvalidStore(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[outline]\nstore = \"sqlite\"\n")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	assert.ErrorIs(t, err, domain.ErrUnknownStore)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[outline\npath = ")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	assert.Error(t, err)
}

func TestLoader_LoadGlobal(t *testing.T) {
	t.Run("returns global values on top of defaults", func(t *testing.T) {
		globalDir := t.TempDir()
		writeConfig(t, globalDir, "[log]\nlevel = \"debug\"\n")

		cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, domain.DefaultAddr, cfg.Server.Addr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).LoadGlobal()

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no global dir", func(t *testing.T) {
		_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoader_Load_RenderedTemplateRoundTrips(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	want := domain.NewDefaultConfig()
	want.Outline.Store = domain.StoreGit
	want.Server.Watch = false
	writeConfig(t, dataDir, domain.RenderConfigTemplate(want))

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, want, cfg)
}
