package domain

import (
	"path/filepath"
	"strings"
)

// ProjectDir returns the whiteboard data directory of a project.
func ProjectDir(root string) string {
	return filepath.Join(root, DirName)
}

// ProjectConfigPath returns the project config path.
func ProjectConfigPath(root string) string {
	return filepath.Join(ProjectDir(root), ConfigFileName)
}

// GlobalDir returns the global whiteboard directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// GlobalConfigPath returns the global config path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalDir(configHome), ConfigFileName)
}

// GlobalLogPath returns the path to the log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "whiteboard.log")
}

// LockPath returns the lock file guarding an outline file.
func LockPath(outlinePath string) string {
	return outlinePath + ".lock"
}

// OutlineRef returns the git reference holding the outline history.
// Format: refs/<namespace>/outline
func OutlineRef(namespace string) string {
	return "refs/" + strings.Trim(namespace, "/") + "/outline"
}

// LogScope returns the scope column of a log line for a task id.
// Format: task-<id>, or global for an empty id.
func LogScope(taskID string) string {
	if taskID == "" {
		return "global"
	}
	return "task-" + taskID
}
