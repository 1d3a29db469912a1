package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// openEditorFunc is a function variable for opening the editor, allowing it to be mocked in tests.
var openEditorFunc = openEditor

// getEditor returns the user's preferred editor command from environment
// variables, split into program and arguments (e.g. "code --wait").
// It checks EDITOR, then VISUAL, and defaults to vi if neither is set.
func getEditor() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// openEditor opens the specified file in the user's editor.
// It returns an error if the editor cannot be started or exits with a non-zero status.
func openEditor(filePath string) error {
	editor := getEditor()

	//nolint:gosec // editor comes from the user's own environment
	cmd := exec.Command(editor[0], append(editor[1:], filePath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor[0], err)
	}

	return nil
}
