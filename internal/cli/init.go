package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize whiteboard in the current project",
		Long: `Initialize whiteboard in the current project.

This command creates the .whiteboard/ directory and an empty outline
in the configured store (todo.txt by default, or a private git ref when
[outline] store = "git").

Running init in an initialized project changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitOutlineUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitOutlineInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Already initialized in %s\n", c.Config.Root)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized whiteboard in %s\n", c.Config.Root)
			return nil
		},
	}
}
