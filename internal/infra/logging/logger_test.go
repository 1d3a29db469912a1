package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("-3", "patch", "applied")
	logger.Info("", "serve", "listening")

	// Assert
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [task--3] [patch] applied")
	assert.Contains(t, string(content), "[INFO] [global] [serve] listening")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("1", "task", "debug message")
	logger.Info("1", "task", "info message")
	logger.Warn("1", "task", "warn message")
	logger.Error("1", "task", "error message")

	// Assert
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create anything
	logger.Info("1", "task", "test message")
	logger.Error("", "task", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("42", "usecase", `status set: "doing"`)

	// Assert
	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] \[task-42\] \[usecase\] status set: "doing"$`, lines[0])
}

func TestLogger_CreateLogsDir(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logsDir := filepath.Join(dataDir, "logs")
	_, err := os.Stat(logsDir)
	require.True(t, os.IsNotExist(err))

	// Execute
	logger := New(dataDir, slog.LevelInfo)
	logger.Info("", "init", "hello")
	require.NoError(t, logger.Close())

	// Assert
	stat, err := os.Stat(logsDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.FileExists(t, domain.GlobalLogPath(dataDir))
}

func TestLogger_CloseTwice(t *testing.T) {
	logger := New(t.TempDir(), slog.LevelInfo)
	logger.Info("", "x", "y")

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestNewConsole(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	logger := NewConsole(&buf, slog.LevelInfo)

	// Execute
	logger.Debug("hidden")
	logger.Info("server started", "addr", "127.0.0.1:5000")

	// Assert
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "server started")
	assert.Contains(t, out, "addr=127.0.0.1:5000")
}
