// Package cli provides the command-line interface for whiteboard.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupOutline = "outline"
	groupTask    = "task"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for whiteboard.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var outlineFile string

	root := &cobra.Command{
		Use:   "whiteboard",
		Short: "Outline and task board for todo.txt files",
		Long: `whiteboard keeps a task outline in a todo.txt style file.

Lines indented by four spaces are children of the line above; deeper
indented lines without a task of their own are the task's body.
Tasks carry @contexts, +projects and key:value tags, and "x " marks
a task as done.

Running whiteboard without arguments opens the terminal UI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(domain.WithSource(cmd.Context(), domain.SourceCLI))

			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if outlineFile != "" {
				abs, err := filepath.Abs(outlineFile)
				if err != nil {
					return fmt.Errorf("resolve outline file: %w", err)
				}
				c.UseOutlineFile(abs)
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().StringVarP(&outlineFile, "file", "f", "", "Outline file to use instead of the configured store")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupOutline, Title: "Outline Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSetup

	// Outline commands
	showCmd := newShowCommand(c)
	showCmd.GroupID = groupOutline

	renderCmd := newRenderCommand(c)
	renderCmd.GroupID = groupOutline

	patchCmd := newPatchCommand(c)
	patchCmd.GroupID = groupOutline

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupOutline

	idsCmd := newIDsCommand(c)
	idsCmd.GroupID = groupOutline

	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupOutline

	// Task commands
	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupTask

	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	root.AddCommand(
		initCmd,
		configCmd,
		serveCmd,
		showCmd,
		renderCmd,
		patchCmd,
		editCmd,
		idsCmd,
		historyCmd,
		listCmd,
		boardCmd,
		addCmd,
		statusCmd,
		doneCmd,
		tuiCmd,
	)

	return root
}
