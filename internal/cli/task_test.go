package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
)

const taskOutline = "plan id:1 @desk\n    draft id:2 status:doing owner:bob\n    review id:3 owner:amy\nx ship id:4 +launch"

// rows returns the whitespace-separated fields of each output line after the header.
func rows(out string) [][]string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var rows [][]string
	for _, l := range lines[1:] {
		rows = append(rows, strings.Fields(l))
	}
	return rows
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIDs []string
	}{
		{name: "all", args: nil, wantIDs: []string{"1", "2", "3", "4"}},
		{name: "tag value", args: []string{"--tag", "owner:bob"}, wantIDs: []string{"2"}},
		{name: "tag key", args: []string{"--tag", "owner"}, wantIDs: []string{"2", "3"}},
		{name: "no tag", args: []string{"--no-tag", "owner"}, wantIDs: []string{"1", "4"}},
		{name: "status", args: []string{"--status", "doing", "--status", "done"}, wantIDs: []string{"2", "4"}},
		{name: "hide done", args: []string{"--hide-done"}, wantIDs: []string{"1", "2", "3"}},
		{name: "depth", args: []string{"--depth", "1"}, wantIDs: []string{"1", "4"}},
		{name: "parent", args: []string{"--parent", "1"}, wantIDs: []string{"2", "3"}},
		{name: "context", args: []string{"--context", "desk"}, wantIDs: []string{"1"}},
		{name: "project", args: []string{"--project", "launch"}, wantIDs: []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, _ := newTestContainer(t, taskOutline)

			// Execute
			out, err := execute(t, c, "", append([]string{"list"}, tt.args...)...)

			// Assert
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(out, "ID"), out)
			var ids []string
			for _, r := range rows(out) {
				ids = append(ids, r[0])
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestListCommand_Layout(t *testing.T) {
	c, _ := newTestContainer(t, taskOutline)

	out, err := execute(t, c, "", "ls")

	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Regexp(t, `^ID\s+STATUS\s+TASK$`, lines[0])
	assert.Regexp(t, `^1\s+new\s+plan id:1 @desk$`, lines[1])
	assert.Regexp(t, `^2\s+doing\s{3,}draft id:2`, lines[2])
	assert.Regexp(t, `^4\s+done\s+x ship id:4 \+launch$`, lines[4])
}

func TestListCommand_Empty(t *testing.T) {
	c, _ := newTestContainer(t, taskOutline)

	out, err := execute(t, c, "", "list", "--tag", "owner:nobody")

	require.NoError(t, err)
	assert.Equal(t, "No tasks found.\n", out)
}

func TestListCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad status", args: []string{"--status", "maybe"}},
		{name: "negative depth", args: []string{"--depth", "-1"}},
		{name: "unknown parent", args: []string{"--parent", "99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContainer(t, taskOutline)

			_, err := execute(t, c, "", append([]string{"list"}, tt.args...)...)

			assert.Error(t, err)
		})
	}
}

func TestBoardCommand(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t, taskOutline)

	// Execute
	out, err := execute(t, c, "", "board")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "New (1)\n  1  plan id:1 @desk [0/2]\n")
	assert.Contains(t, out, "Doing (0)\n")
	assert.Contains(t, out, "Done (1)\n  4  x ship id:4 +launch\n")
	assert.False(t, strings.HasPrefix(out, "plan"), "virtual root has no title line")
}

func TestBoardCommand_Subtree(t *testing.T) {
	c, _ := newTestContainer(t, taskOutline)

	out, err := execute(t, c, "", "board", "--id", "1")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "plan id:1 @desk\n\n"), out)
	assert.Contains(t, out, "New (1)\n  3  review id:3 owner:amy\n")
	assert.Contains(t, out, "Doing (1)\n  2  draft id:2 status:doing owner:bob\n")
}

func TestAddCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantText string
	}{
		{
			name:     "top level",
			args:     []string{"add", "write", "docs", "@desk"},
			wantOut:  "Added task -1\n",
			wantText: "a id:1\nwrite docs @desk id:-1",
		},
		{
			name:     "child",
			args:     []string{"add", "--parent", "1", "sub task"},
			wantOut:  "Added task -1\n",
			wantText: "a id:1\n    sub task id:-1",
		},
		{
			name:     "keeps own id",
			args:     []string{"add", "named id:42"},
			wantOut:  "Added task 42\n",
			wantText: "a id:1\nnamed id:42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, repo := newTestContainer(t, "a id:1")

			out, err := execute(t, c, "", tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantText, repo.Text)
			assert.Equal(t, []string{domain.SourceCLI}, repo.Sources)
		})
	}
}

func TestAddCommand_Errors(t *testing.T) {
	c, _ := newTestContainer(t, "a id:1")

	_, err := execute(t, c, "", "add")
	require.Error(t, err)

	_, err = execute(t, c, "", "add", "--parent", "9", "orphan")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStatusCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOut  string
		wantDone bool
	}{
		{name: "advance", args: []string{"status", "1"}, wantOut: "Task 1: Doing\n"},
		{name: "explicit", args: []string{"status", "1", "done"}, wantOut: "Task 1: Done\n", wantDone: true},
		{name: "done command", args: []string{"done", "1"}, wantOut: "Task 1: Done\n", wantDone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, repo := newTestContainer(t, "a id:1")

			out, err := execute(t, c, "", tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			task := domain.ParseRoot(repo.Text, nil).FindByID("1")
			require.NotNil(t, task)
			assert.Equal(t, tt.wantDone, task.IsDone())
		})
	}
}

func TestDoneCommand_Undo(t *testing.T) {
	c, repo := newTestContainer(t, "x a id:1")

	out, err := execute(t, c, "", "done", "1", "--undo")

	require.NoError(t, err)
	assert.Equal(t, "Task 1: New\n", out)
	assert.Equal(t, "a id:1", repo.Text)
}

func TestStatusCommand_Errors(t *testing.T) {
	c, _ := newTestContainer(t, "a id:1")

	_, err := execute(t, c, "", "status", "1", "unknown")
	require.Error(t, err)

	_, err = execute(t, c, "", "status", "7")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
