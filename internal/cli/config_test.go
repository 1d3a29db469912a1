package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
)

// newProjectContainer creates a project on disk and opens it.
func newProjectContainer(t *testing.T, configTOML string) (*app.Container, string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(domain.ProjectDir(dir), 0o750))
	if configTOML != "" {
		require.NoError(t, os.WriteFile(domain.ProjectConfigPath(dir), []byte(configTOML), 0o600))
	}

	c, err := app.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, dir
}

func TestConfigShowCommand(t *testing.T) {
	// Setup
	c, dir := newProjectContainer(t, "[server]\naddr = \"0.0.0.0:8080\"\nwatch = false\n")

	// Execute
	out, err := execute(t, c, "", "config", "show")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]\n")
	assert.Contains(t, out, "whiteboard/config.toml (not found)\n")
	assert.Contains(t, out, "- "+domain.ProjectConfigPath(dir)+"\n")

	_, effective, found := strings.Cut(out, "[Effective Config]\n")
	require.True(t, found)
	var got map[string]map[string]any
	require.NoError(t, toml.Unmarshal([]byte(effective), &got))
	assert.Equal(t, "0.0.0.0:8080", got["server"]["addr"])
	assert.Equal(t, false, got["server"]["watch"])
	assert.Equal(t, "todo.txt", got["outline"]["path"])
}

func TestConfigTemplateCommand(t *testing.T) {
	out, err := execute(t, nil, "", "config", "template")

	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(domain.NewDefaultConfig()), out)
	var cfg domain.Config
	assert.NoError(t, toml.Unmarshal([]byte(out), &cfg))
}

func TestConfigInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPath func(dir string) string
	}{
		{
			name:     "project",
			args:     []string{"config", "init"},
			wantPath: domain.ProjectConfigPath,
		},
		{
			name: "global",
			args: []string{"config", "init", "--global"},
			wantPath: func(string) string {
				return filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "whiteboard", "config.toml")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, dir := newProjectContainer(t, "")
			path := tt.wantPath(dir)

			// Execute
			out, err := execute(t, c, "", tt.args...)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Created config file: "+path+"\n", out)
			assert.FileExists(t, path)

			_, err = execute(t, c, "", tt.args...)
			assert.ErrorIs(t, err, domain.ErrConfigExists)
		})
	}
}

func TestInitCommand(t *testing.T) {
	// Setup
	c, dir := newProjectContainer(t, "")

	// Execute
	out, err := execute(t, c, "", "init")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Initialized whiteboard in "+dir+"\n", out)
	assert.FileExists(t, filepath.Join(dir, "todo.txt"))

	out, err = execute(t, c, "", "init")
	require.NoError(t, err)
	assert.Equal(t, "Already initialized in "+dir+"\n", out)
}
