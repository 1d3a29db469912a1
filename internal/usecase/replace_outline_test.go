package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/testutil"
)

func TestReplaceOutline_Execute(t *testing.T) {
	// Setup
	repo := testutil.NewMockOutlineRepository("a id:1")
	notifier := &testutil.MockNotifier{}
	logger := &testutil.MockLogger{}
	uc := NewReplaceOutline(repo, notifier, &testutil.MockClock{}, logger)
	ctx := domain.WithSource(context.Background(), domain.SourceCLI)

	// Execute
	out, err := uc.Execute(ctx, ReplaceOutlineInput{Text: "a id:1\n    b\n  loose text k:'open\n"})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, "a id:1", out.Before)
	assert.Equal(t, "a id:1\n    b\n  loose text k:'open\n", repo.Text)
	assert.Equal(t, []string{domain.SourceCLI}, repo.Sources)
	require.Len(t, notifier.Events, 1)
	assert.Equal(t, domain.SourceCLI, notifier.Events[0].Source)
	assert.Equal(t, []string{"INFO global edit: outline replaced (34 bytes)"}, logger.Lines)
}

func TestReplaceOutline_Execute_Unchanged(t *testing.T) {
	repo := testutil.NewMockOutlineRepository("a id:1")
	notifier := &testutil.MockNotifier{}
	uc := NewReplaceOutline(repo, notifier, nil, nil)

	out, err := uc.Execute(context.Background(), ReplaceOutlineInput{Text: "a id:1\n"})

	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Zero(t, repo.SaveCount)
	assert.Zero(t, notifier.Count())
}

func TestReplaceOutline_Execute_NotInitialized(t *testing.T) {
	uc := NewReplaceOutline(&testutil.MockOutlineRepository{}, nil, nil, nil)

	_, err := uc.Execute(context.Background(), ReplaceOutlineInput{Text: "a"})

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
