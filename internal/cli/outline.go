package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/infra/textdiff"
	"github.com/runoshun/whiteboard/internal/usecase"
)

// Output formats of the show command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// diffContext is the number of unchanged lines around each diff hunk.
const diffContext = 3

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ID     string
		Format string
	}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the outline as JSON",
		Long: `Show the outline, or the subtree of one task, as a JSON document.

Every task gets an id tag so it can be addressed by a later patch.
Tasks that had none are given provisional ids (-1, -2, ...) which
are saved to the outline.

Examples:
  # Whole outline
  whiteboard show

  # One task and its children
  whiteboard show --id 12

  # YAML instead of JSON
  whiteboard show --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowOutlineUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowOutlineInput{TaskID: opts.ID})
			if err != nil {
				return err
			}
			return writeProjection(cmd.OutOrStdout(), out.JSON, opts.Format)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "Show only this task")
	cmd.Flags().StringVar(&opts.Format, "format", formatJSON, "Output format: json or yaml")

	return cmd
}

// writeProjection encodes a projection in the requested format.
func writeProjection(w io.Writer, projection *domain.TaskJSON, format string) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(projection)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(projection); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// newRenderCommand creates the render command.
func newRenderCommand(c *app.Container) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the outline text",
		Long: `Print the outline, or the subtree of one task, in its text form.

The stored outline is never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.RenderOutlineUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RenderOutlineInput{TaskID: id})
			if err != nil {
				return err
			}
			if out.Text == "" {
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Render only this task")

	return cmd
}

// newPatchCommand creates the patch command.
func newPatchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ID     string
		Color  string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "patch [file|-]",
		Short: "Apply a JSON patch to the outline",
		Long: `Apply a JSON patch document to the outline or to one task.

The document has the shape printed by 'whiteboard show': line, id,
body, status, tags and children, all optional. Children are matched
by position; missing children are created and extra ones removed.
Tags set to null are deleted.

The patch is read from the given file, or from stdin when the file
is "-" or omitted.

Examples:
  # Mark task 12 as in progress
  echo '{"status":"doing"}' | whiteboard patch --id 12

  # Preview a patch without saving it
  whiteboard patch --dry-run plan.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			uc := c.UpdateOutlineUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateOutlineInput{
				TaskID: opts.ID,
				Data:   data,
				DryRun: opts.DryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Changed {
				_, _ = fmt.Fprintln(w, "No changes")
				return nil
			}
			color, err := useColor(w, opts.Color)
			if err != nil {
				return err
			}
			if err := writeDiff(w, textdiff.Unified(outlineName(c), out.Before, out.After, diffContext), color); err != nil {
				return err
			}
			if opts.DryRun {
				_, _ = fmt.Fprintln(w, "Dry run: outline not saved")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "Patch this task instead of the whole outline")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show the resulting change without saving it")
	cmd.Flags().StringVar(&opts.Color, "color", colorAuto, "Colorize the diff: auto, always or never")

	return cmd
}

// readInput reads the file named by args[0], or stdin for "-" and no args.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read patch file: %w", err)
	}
	return data, nil
}

// outlineName is the file name shown in diff headers.
func outlineName(c *app.Container) string {
	if c.AppConfig.Outline.Store == domain.StoreGit {
		return domain.OutlineRef(c.AppConfig.Outline.Namespace)
	}
	return c.AppConfig.Outline.Path
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the outline in $EDITOR",
		Long: `Open the outline text in $EDITOR and save it when the editor exits.

This works with every store, including the git store where the
outline is not a file in the worktree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			render, err := c.RenderOutlineUseCase().Execute(cmd.Context(), usecase.RenderOutlineInput{})
			if err != nil {
				return err
			}

			tmp, err := os.CreateTemp("", "whiteboard-*.txt")
			if err != nil {
				return fmt.Errorf("create temp file: %w", err)
			}
			tmpPath := tmp.Name()
			defer func() { _ = os.Remove(tmpPath) }()

			text := render.Text
			if text != "" {
				text += "\n"
			}
			if _, err := tmp.WriteString(text); err != nil {
				_ = tmp.Close()
				return fmt.Errorf("write temp file: %w", err)
			}
			if err := tmp.Close(); err != nil {
				return fmt.Errorf("close temp file: %w", err)
			}

			if err := openEditorFunc(tmpPath); err != nil {
				return err
			}

			edited, err := os.ReadFile(tmpPath)
			if err != nil {
				return fmt.Errorf("read edited file: %w", err)
			}

			out, err := c.ReplaceOutlineUseCase().Execute(cmd.Context(), usecase.ReplaceOutlineInput{Text: string(edited)})
			if err != nil {
				return err
			}
			if !out.Changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Outline saved")
			return nil
		},
	}
}

// newIDsCommand creates the ids command.
func newIDsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "Give every task an id tag",
		Long: `Give every task that has no id tag a provisional one (-1, -2, ...)
and save the outline. Existing ids are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.AssignIDsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d ids\n", out.Minted)
			return nil
		},
	}
}
