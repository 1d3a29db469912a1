// Package git locates the project an outline belongs to.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Project describes where whiteboard keeps its data.
type Project struct {
	Root    string // Project directory (parent of .whiteboard)
	GitRoot string // Toplevel of the enclosing git worktree, empty outside git
}

// Locate finds the project for dir.
// The nearest ancestor holding a .whiteboard directory wins, then the git
// toplevel, then dir itself.
func Locate(dir string) (Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Project{}, fmt.Errorf("resolve %s: %w", dir, err)
	}

	p := Project{GitRoot: findGitRoot(abs)}
	switch root := findDataDir(abs); {
	case root != "":
		p.Root = root
	case p.GitRoot != "":
		p.Root = p.GitRoot
	default:
		p.Root = abs
	}
	return p, nil
}

// findDataDir walks up from dir and returns the first directory that
// contains a .whiteboard directory, or "".
func findDataDir(dir string) string {
	for {
		if info, err := os.Stat(domain.ProjectDir(dir)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// findGitRoot returns the worktree toplevel of dir, or "" when dir is not
// inside a git repository or git is not installed.
func findGitRoot(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return filepath.Clean(strings.TrimSpace(string(out)))
}
