package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/whiteboard/internal/domain"
)

func TestShowCommand_JSON(t *testing.T) {
	// Setup
	c, repo := newTestContainer(t, "plan id:1 @desk\n    draft\nship id:3")

	// Execute
	out, err := execute(t, c, "", "show")

	// Assert
	require.NoError(t, err)
	var got domain.TaskJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Children, 2)
	assert.Equal(t, "1", got.Children[0].ID)
	assert.Equal(t, []string{"desk"}, got.Children[0].Contexts)
	require.Len(t, got.Children[0].Children, 1)
	assert.Equal(t, "-1", got.Children[0].Children[0].ID)
	assert.Equal(t, "plan id:1 @desk\n    draft id:-1\nship id:3", repo.Text)
}

func TestShowCommand_YAMLSubtree(t *testing.T) {
	c, _ := newTestContainer(t, "plan id:1\n    draft id:2 status:doing")

	out, err := execute(t, c, "", "show", "--id", "2", "--format", "yaml")

	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2", got["id"])
	assert.Equal(t, "doing", got["status"])
}

func TestShowCommand_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		args    []string
	}{
		{name: "unknown task", args: []string{"show", "--id", "9"}, wantErr: domain.ErrTaskNotFound},
		{name: "unknown format", args: []string{"show", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t, "a id:1")

			_, err := execute(t, c, "", tt.args...)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		args []string
	}{
		{name: "whole outline", text: "a id:1\n    b id:2", args: []string{"render"}, want: "a id:1\n    b id:2\n"},
		{name: "subtree", text: "a id:1\n    b id:2\nc id:3", args: []string{"render", "--id", "2"}, want: "    b id:2\n"},
		{name: "empty outline", text: "", args: []string{"render"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, repo := newTestContainer(t, tt.text)

			out, err := execute(t, c, "", tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Zero(t, repo.SaveCount)
		})
	}
}

func TestPatchCommand(t *testing.T) {
	// Setup
	c, repo := newTestContainer(t, "a id:1\nb id:2")

	// Execute
	out, err := execute(t, c, `{"status":"done"}`, "patch", "--id", "2", "--color", "never")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "a id:1\nx b id:2", repo.Text)
	assert.Contains(t, out, "--- a/todo.txt\n+++ b/todo.txt\n")
	assert.Contains(t, out, "-b id:2\n")
	assert.Contains(t, out, "+x b id:2\n")
	assert.NotContains(t, out, "Dry run")
}

func TestPatchCommand_FromFile(t *testing.T) {
	c, repo := newTestContainer(t, "a id:1")
	path := filepath.Join(t.TempDir(), "patch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"children":[{"line":"a id:1"},{"line":"b"}]}`), 0o644))

	_, err := execute(t, c, "", "patch", path, "--color", "never")

	require.NoError(t, err)
	assert.Equal(t, "a id:1\nb id:-1", repo.Text)
}

func TestPatchCommand_DryRun(t *testing.T) {
	c, repo := newTestContainer(t, "a id:1")

	out, err := execute(t, c, `{"status":"doing"}`, "patch", "--id", "1", "--dry-run", "--color", "never")

	require.NoError(t, err)
	assert.Equal(t, "a id:1", repo.Text)
	assert.Contains(t, out, "-a id:1\n")
	assert.Contains(t, out, "status:doing")
	assert.Contains(t, out, "Dry run: outline not saved\n")
}

func TestPatchCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "invalid json", stdin: "{", args: []string{"patch"}},
		{name: "missing file", args: []string{"patch", "/nonexistent/patch.json"}},
		{name: "bad color", stdin: `{"status":"done"}`, args: []string{"patch", "--id", "1", "--color", "rainbow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t, "a id:1")

			_, err := execute(t, c, tt.stdin, tt.args...)

			assert.Error(t, err)
		})
	}
}

func TestEditCommand(t *testing.T) {
	tests := []struct {
		name     string
		edit     func(path string) error
		wantOut  string
		wantText string
	}{
		{
			name: "saves edited text",
			edit: func(path string) error {
				return os.WriteFile(path, []byte("a id:1\n    b id:2\n"), 0o600)
			},
			wantOut:  "Outline saved\n",
			wantText: "a id:1\n    b id:2\n",
		},
		{
			name:     "unchanged",
			edit:     func(string) error { return nil },
			wantOut:  "No changes\n",
			wantText: "a id:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, repo := newTestContainer(t, "a id:1")
			var opened string
			orig := openEditorFunc
			openEditorFunc = func(path string) error {
				opened = path
				data, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "a id:1\n", string(data))
				return tt.edit(path)
			}
			t.Cleanup(func() { openEditorFunc = orig })

			// Execute
			out, err := execute(t, c, "", "edit")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantText, repo.Text)
			_, statErr := os.Stat(opened)
			assert.True(t, os.IsNotExist(statErr), "temp file removed")
		})
	}
}

func TestIDsCommand(t *testing.T) {
	c, repo := newTestContainer(t, "a\n    b id:7\nc")

	out, err := execute(t, c, "", "ids")

	require.NoError(t, err)
	assert.Equal(t, "Assigned 2 ids\n", out)
	assert.Equal(t, "a id:-1\n    b id:7\nc id:-2", repo.Text)
}

func TestGetEditor(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   []string
	}{
		{name: "EDITOR with args", editor: "code --wait", want: []string{"code", "--wait"}},
		{name: "VISUAL fallback", visual: "nano", want: []string{"nano"}},
		{name: "default", want: []string{"vi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			assert.Equal(t, tt.want, getEditor())
		})
	}
}
