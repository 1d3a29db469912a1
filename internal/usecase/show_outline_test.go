package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/testutil"
)

func TestShowOutline_Execute(t *testing.T) {
	// Setup
	repo := testutil.NewMockOutlineRepository("a @home\n    x b\nc id:-1\n")
	uc := NewShowOutline(repo, domain.NewIDGenerator())

	// Execute
	out, err := uc.Execute(context.Background(), ShowOutlineInput{})

	// Assert
	require.NoError(t, err)
	data, err := json.Marshal(out.JSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"children": [
			{"line": "a @home id:-2", "id": "-2", "is_done": false, "status": "new",
			 "contexts": ["home"], "projects": [], "tags": {"id": "-2"},
			 "children": [
				{"line": "    x b id:-3", "id": "-3", "is_done": true, "status": "done",
				 "contexts": [], "projects": [], "tags": {"id": "-3"}, "children": []}
			 ]},
			{"line": "c id:-1", "id": "-1", "is_done": false, "status": "new",
			 "contexts": [], "projects": [], "tags": {"id": "-1"}, "children": []}
		]
	}`, string(data))

	// Minted identifiers are saved
	assert.Equal(t, 1, repo.SaveCount)
	assert.Equal(t, "a @home id:-2\n    x b id:-3\nc id:-1", repo.Text)
}

func TestShowOutline_Execute_StableIdentifiers(t *testing.T) {
	repo := testutil.NewMockOutlineRepository("a\nb")
	uc := NewShowOutline(repo, domain.NewIDGenerator())

	first, err := uc.Execute(context.Background(), ShowOutlineInput{})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), ShowOutlineInput{})
	require.NoError(t, err)

	assert.Equal(t, first.JSON, second.JSON)
	assert.Equal(t, 1, repo.SaveCount)
}

func TestShowOutline_Execute_Subtree(t *testing.T) {
	repo := testutil.NewMockOutlineRepository("a id:1\n    b id:2\n        c id:3")
	uc := NewShowOutline(repo, domain.NewIDGenerator())

	out, err := uc.Execute(context.Background(), ShowOutlineInput{TaskID: "2"})

	require.NoError(t, err)
	assert.Equal(t, "    b id:2", out.JSON.Line)
	require.Len(t, out.JSON.Children, 1)
	assert.Equal(t, "3", out.JSON.Children[0].ID)
	assert.Zero(t, repo.SaveCount)
}

func TestShowOutline_Execute_Errors(t *testing.T) {
	t.Run("task not found", func(t *testing.T) {
		repo := testutil.NewMockOutlineRepository("a id:1")
		uc := NewShowOutline(repo, domain.NewIDGenerator())

		_, err := uc.Execute(context.Background(), ShowOutlineInput{TaskID: "9"})

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("not initialized", func(t *testing.T) {
		uc := NewShowOutline(&testutil.MockOutlineRepository{}, domain.NewIDGenerator())

		_, err := uc.Execute(context.Background(), ShowOutlineInput{})

		assert.ErrorIs(t, err, domain.ErrNotInitialized)
	})
}

func TestRenderOutline_Execute(t *testing.T) {
	repo := testutil.NewMockOutlineRepository("a id:1\n    notes are\n            deeper\n    b id:2\n")
	uc := NewRenderOutline(repo, domain.NewIDGenerator())

	t.Run("whole outline", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), RenderOutlineInput{})

		require.NoError(t, err)
		assert.Equal(t, "a id:1\n    notes are\n            deeper\n    b id:2", out.Text)
	})

	t.Run("subtree", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), RenderOutlineInput{TaskID: "2"})

		require.NoError(t, err)
		assert.Equal(t, "    b id:2", out.Text)
	})

	t.Run("never saves", func(t *testing.T) {
		assert.Zero(t, repo.SaveCount)
	})
}
