package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/testutil"
)

func TestOutlineHistory_Execute(t *testing.T) {
	// Setup
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &testutil.MockHistoryRepository{MockOutlineRepository: testutil.NewMockOutlineRepository("a")}
	repo.Revisions = []domain.Revision{
		{Hash: "c3", Time: now, Message: "update outline", Source: domain.SourceWeb},
		{Hash: "b2", Time: now.Add(-time.Hour), Message: "update outline", Source: domain.SourceCLI},
		{Hash: "a1", Time: now.Add(-2 * time.Hour), Message: "initialize outline"},
	}
	uc := NewOutlineHistory(repo)

	// Execute
	out, err := uc.Execute(context.Background(), OutlineHistoryInput{Limit: 2})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Supported)
	require.Len(t, out.Revisions, 2)
	assert.Equal(t, "c3", out.Revisions[0].Hash)
	assert.Equal(t, "b2", out.Revisions[1].Hash)
}

func TestOutlineHistory_Execute_Unsupported(t *testing.T) {
	uc := NewOutlineHistory(testutil.NewMockOutlineRepository("a"))

	out, err := uc.Execute(context.Background(), OutlineHistoryInput{})

	require.NoError(t, err)
	assert.False(t, out.Supported)
	assert.Empty(t, out.Revisions)
}

func TestOutlineHistory_Execute_Error(t *testing.T) {
	repo := &testutil.MockHistoryRepository{MockOutlineRepository: testutil.NewMockOutlineRepository("a")}
	repo.HistoryErr = errors.New("broken ref")
	uc := NewOutlineHistory(repo)

	_, err := uc.Execute(context.Background(), OutlineHistoryInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read history")
}

func TestShowRevision_Execute(t *testing.T) {
	repo := &testutil.MockHistoryRepository{
		MockOutlineRepository: testutil.NewMockOutlineRepository("a id:1\nb id:2"),
		Texts:                 map[string]string{"a1": "a id:1"},
	}
	uc := NewShowRevision(repo)

	t.Run("known revision", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ShowRevisionInput{Hash: "a1"})

		require.NoError(t, err)
		assert.Equal(t, "a id:1", out.Text)
		assert.Equal(t, "a id:1\nb id:2", out.Current)
	})

	t.Run("unknown revision", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ShowRevisionInput{Hash: "zz"})

		assert.Error(t, err)
	})
}

func TestShowRevision_Execute_Unsupported(t *testing.T) {
	uc := NewShowRevision(testutil.NewMockOutlineRepository("a"))

	_, err := uc.Execute(context.Background(), ShowRevisionInput{Hash: "a1"})

	assert.ErrorIs(t, err, domain.ErrHistoryUnsupported)
}

func TestInitOutline_Execute(t *testing.T) {
	// Setup
	dataDir := filepath.Join(t.TempDir(), ".whiteboard")
	repo := &testutil.MockOutlineRepository{}
	uc := NewInitOutline(repo)

	// Execute
	first, err := uc.Execute(context.Background(), InitOutlineInput{DataDir: dataDir})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), InitOutlineInput{DataDir: dataDir})
	require.NoError(t, err)

	// Assert
	assert.False(t, first.AlreadyInitialized)
	assert.True(t, second.AlreadyInitialized)
	assert.DirExists(t, dataDir)
	assert.True(t, repo.Initialized)
}

func TestShowConfig_Execute(t *testing.T) {
	// Setup
	manager := &testutil.MockConfigManager{
		ProjectInfo: domain.ConfigInfo{Path: "/p/.whiteboard/config.toml", Exists: true, Content: "[server]\n"},
		GlobalInfo:  domain.ConfigInfo{Path: "/home/me/.config/whiteboard/config.toml"},
	}
	loader := testutil.NewMockConfigLoader()
	loader.Config.Server.Addr = "127.0.0.1:9000"
	uc := NewShowConfig(manager, loader)

	// Execute
	out, err := uc.Execute(context.Background(), ShowConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", out.EffectiveConfig.Server.Addr)
	assert.True(t, out.ProjectConfig.Exists)
	assert.False(t, out.GlobalConfig.Exists)
	assert.Equal(t, "/home/me/.config/whiteboard/config.toml", out.GlobalConfig.Path)
}

func TestShowConfig_Execute_LoadError(t *testing.T) {
	loader := &testutil.MockConfigLoader{LoadErr: domain.ErrUnknownStore}
	uc := NewShowConfig(&testutil.MockConfigManager{}, loader)

	_, err := uc.Execute(context.Background(), ShowConfigInput{})

	assert.ErrorIs(t, err, domain.ErrUnknownStore)
}

func TestInitConfig_Execute(t *testing.T) {
	tests := []struct {
		name        string
		global      bool
		wantPath    string
		wantProject bool
		wantGlobal  bool
	}{
		{name: "project", global: false, wantPath: "/p/config.toml", wantProject: true},
		{name: "global", global: true, wantPath: "/g/config.toml", wantGlobal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &testutil.MockConfigManager{
				ProjectInfo: domain.ConfigInfo{Path: "/p/config.toml"},
				GlobalInfo:  domain.ConfigInfo{Path: "/g/config.toml"},
			}
			uc := NewInitConfig(manager)

			out, err := uc.Execute(context.Background(), InitConfigInput{Global: tt.global})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, out.Path)
			assert.Equal(t, tt.wantProject, manager.InitProjectCalled)
			assert.Equal(t, tt.wantGlobal, manager.InitGlobalCalled)
		})
	}
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}
	uc := NewInitConfig(manager)

	_, err := uc.Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
