package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/testutil"
)

// newTestContainer returns a container over an in-memory outline.
func newTestContainer(t *testing.T, text string) (*app.Container, *testutil.MockOutlineRepository) {
	t.Helper()
	repo := testutil.NewMockOutlineRepository(text)
	c := app.NewWithDeps(app.Config{Root: "/proj", DataDir: "/proj/.whiteboard", OutlinePath: "/proj/todo.txt"}, repo, repo, &testutil.MockClock{}, nil)
	return c, repo
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, c *app.Container, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(c, "test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeOutline writes text to todo.txt in a temporary directory.
func writeOutline(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

