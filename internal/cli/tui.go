package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/tui"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// Running whiteboard without a subcommand does the same.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for browsing and editing the outline.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

func launchTUI(c *app.Container) error {
	return tui.Run(c)
}
